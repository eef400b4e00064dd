package lightclient

import (
	"fmt"

	"github.com/protolambda/ztyp/tree"

	"github.com/kysee/zk-btc/types"
)

// BlockTreeDepth fixes the depth of the block-hash accumulator, bounding one
// proof run to 2^32 accepted headers.
const BlockTreeDepth = 32

// IncrementalMerkleTree accumulates the hash of every accepted header into a
// fixed-depth, left-filled SHA-256 Merkle tree. Only the partial branch is
// kept, so adding a leaf and recomputing the root are both O(depth). Its
// root is part of the commitment, letting the host later prove any accepted
// block hash against the proven run.
type IncrementalMerkleTree struct {
	branch [BlockTreeDepth]tree.Root
	count  uint64
	hFn    tree.HashFn
}

func NewIncrementalMerkleTree() *IncrementalMerkleTree {
	return &IncrementalMerkleTree{hFn: tree.GetHashFn()}
}

// Add appends a leaf at the next free position.
func (t *IncrementalMerkleTree) Add(leaf types.Hash) error {
	if t.count >= 1<<BlockTreeDepth {
		return fmt.Errorf("block tree is full at %d leaves: %w", t.count, ErrArithmeticOverflow)
	}
	t.count++

	node := tree.Root(leaf)
	size := t.count
	for level := 0; level < BlockTreeDepth; level++ {
		if size%2 == 1 {
			t.branch[level] = node
			break
		}
		node = t.hFn(t.branch[level], node)
		size /= 2
	}
	return nil
}

// Count returns the number of leaves added so far.
func (t *IncrementalMerkleTree) Count() uint64 {
	return t.count
}

// Root folds the partial branch against the zero-subtree ladder to produce
// the current root.
func (t *IncrementalMerkleTree) Root() types.Hash {
	var node tree.Root
	size := t.count
	for level := 0; level < BlockTreeDepth; level++ {
		if size%2 == 1 {
			node = t.hFn(t.branch[level], node)
		} else {
			node = t.hFn(node, tree.ZeroHashes[level])
		}
		size /= 2
	}
	return types.Hash(node)
}
