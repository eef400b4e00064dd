package lightclient

import (
	"crypto/sha256"
	"hash"

	"github.com/kysee/zk-btc/types"
)

// Hasher computes the canonical double-SHA256 digest used for block hashes,
// txids and Merkle nodes. Input may be written in arbitrary chunks; the
// digest depends only on the logical byte string.
type Hasher struct {
	inner hash.Hash
}

func NewHasher() *Hasher {
	return &Hasher{inner: sha256.New()}
}

func (h *Hasher) Write(p []byte) {
	// sha256.Hash.Write never returns an error
	_, _ = h.inner.Write(p)
}

// Sum finalizes the double hash: SHA256(SHA256(data)).
func (h *Hasher) Sum() types.Hash {
	first := h.inner.Sum(nil)
	return types.Hash(sha256.Sum256(first))
}

// HashBytes is the one-shot form of Hasher.
func HashBytes(data []byte) types.Hash {
	first := sha256.Sum256(data)
	return types.Hash(sha256.Sum256(first[:]))
}

// HashPair combines two Merkle nodes: double-SHA256 of the 64-byte
// concatenation left || right.
func HashPair(left, right types.Hash) types.Hash {
	h := NewHasher()
	h.Write(left[:])
	h.Write(right[:])
	return h.Sum()
}

// HeaderHash computes a header's block hash from its canonical 80-byte
// serialization.
func HeaderHash(header *types.BlockHeader) types.Hash {
	raw := header.Serialize()
	return HashBytes(raw[:])
}
