package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HashSize is the byte width of every digest produced by the double-SHA256
// hash primitive.
const HashSize = 32

// Hash is a 256-bit digest in wire order, i.e. the byte order headers carry
// on the wire and the order the hash primitive emits. The conventional
// display form (block explorers, RPC) is the byte-reversed hex string;
// String and the JSON codec below use the display form.
type Hash [HashSize]byte

// NewHashFromHex parses a display-order (byte-reversed) hex string, with or
// without a 0x prefix, into a wire-order Hash.
func NewHashFromHex(s string) (Hash, error) {
	var h Hash
	bz, err := HexToBytes(s)
	if err != nil {
		return h, fmt.Errorf("invalid hash hex: %w", err)
	}
	if len(bz) != HashSize {
		return h, fmt.Errorf("invalid hash length: got %d, want %d", len(bz), HashSize)
	}
	for i := 0; i < HashSize; i++ {
		h[i] = bz[HashSize-1-i]
	}
	return h, nil
}

// Reversed returns the digest with its byte order flipped.
func (h Hash) Reversed() Hash {
	var r Hash
	for i := 0; i < HashSize; i++ {
		r[i] = h[HashSize-1-i]
	}
	return r
}

func (h Hash) String() string {
	r := h.Reversed()
	return hexutil.Encode(r[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := NewHashFromHex(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
