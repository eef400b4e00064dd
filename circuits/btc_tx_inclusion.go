package circuit

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

// MerkleDepth is the circuit's fixed branch capacity. Depth 12 covers
// transaction trees of up to 4096 leaves; shorter paths deactivate the
// upper levels via PathLen.
const MerkleDepth = 12

// BtcTxInclusionCircuit proves that a txid is a member of the transaction
// Merkle tree with the given root.
//
// The branch is folded bottom-up: at each active level the running digest is
// paired with the sibling (side chosen by the corresponding bit of Index)
// and re-hashed with double SHA-256. Levels at or above PathLen pass the
// running digest through unchanged, so one compiled circuit serves every
// tree depth up to MerkleDepth. A zero PathLen degenerates to TxID == Root.
type BtcTxInclusionCircuit struct {
	// Sibling digests, leaf level first (private input)
	Siblings [MerkleDepth][32]uints.U8
	// Index is the leaf position; bit i gives the side at level i
	// (1 = running digest is the right child)
	Index frontend.Variable
	// PathLen is the number of active levels (the real tree depth)
	PathLen frontend.Variable

	// Public inputs
	TxID [32]uints.U8 `gnark:",public"`
	Root [32]uints.U8 `gnark:",public"`
}

// Define implements the circuit constraints
func (c *BtcTxInclusionCircuit) Define(api frontend.API) error {
	api.AssertIsLessOrEqual(c.PathLen, MerkleDepth)

	bits := api.ToBinary(c.Index, MerkleDepth)

	current := c.TxID
	for level := 0; level < MerkleDepth; level++ {
		// order the 64-byte preimage by the side bit
		var pair [64]uints.U8
		for j := 0; j < 32; j++ {
			pair[j] = uints.U8{Val: api.Select(bits[level], c.Siblings[level][j].Val, current[j].Val)}
			pair[32+j] = uints.U8{Val: api.Select(bits[level], current[j].Val, c.Siblings[level][j].Val)}
		}

		parent, err := hashDouble(api, pair[:])
		if err != nil {
			return fmt.Errorf("level %d hash: %w", level, err)
		}

		// levels beyond the real path length are pass-through
		active := api.IsZero(api.Add(api.Cmp(level, c.PathLen), 1))
		for j := 0; j < 32; j++ {
			current[j] = uints.U8{Val: api.Select(active, parent[j].Val, current[j].Val)}
		}
	}

	for j := 0; j < 32; j++ {
		api.AssertIsEqual(current[j].Val, c.Root[j].Val)
	}

	return nil
}
