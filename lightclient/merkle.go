package lightclient

import (
	"fmt"

	"github.com/kysee/zk-btc/types"
)

// VerifyInclusion replays a Merkle authentication path from a leaf digest up
// to the expected root. At each step the running digest is concatenated with
// the sibling in the order given by the side flag and re-hashed with
// double-SHA256. A zero-length path is valid exactly when the leaf already
// equals the root (the single-transaction case, where the txid is the
// merkle root).
//
// This verifies membership only; it says nothing about the leaf's semantic
// validity. Paths longer than MaxMerkleDepth are rejected with
// ErrPathTooLong, a root mismatch with ErrInclusionProofFailed.
func VerifyInclusion(p *Params, leaf types.Hash, path types.MerklePath, root types.Hash) error {
	if len(path) > p.MaxMerkleDepth {
		return fmt.Errorf("path length %d exceeds max depth %d: %w",
			len(path), p.MaxMerkleDepth, ErrPathTooLong)
	}

	current := leaf
	for _, node := range path {
		if node.Right {
			current = HashPair(current, node.Sibling)
		} else {
			current = HashPair(node.Sibling, current)
		}
	}

	if current != root {
		return fmt.Errorf("path reduces to %s, expected root %s: %w",
			current, root, ErrInclusionProofFailed)
	}
	return nil
}

// LeafDigest resolves a request's leaf: a pre-hashed digest wins, otherwise
// the raw leaf bytes are hashed into a txid.
func LeafDigest(req *types.InclusionRequest) types.Hash {
	if req.LeafHash != nil {
		return *req.LeafHash
	}
	return HashBytes(req.Leaf)
}
