package lightclient

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/kysee/zk-btc/types"
)

// Run is the guest program's whole computation: fold the header batch into
// the checkpoint state, verify every inclusion request against the header it
// names, and build the commitment.
//
//  1. Fold each header through Apply; every accepted block hash is also
//     added to the block-hash accumulator.
//  2. For each inclusion request, verify the Merkle path against the named
//     (already validated) header's merkle root. A root mismatch is recorded
//     as Verified=false in the commitment; structural failures (path too
//     long, header index out of range) abort the run.
//  3. Emit Commitment{final state, block-tree root, results in input order}.
//
// Any abort returns the originating classified error and no commitment;
// the run either fully succeeds or produces nothing.
func Run(p *Params, input *types.ProofInput) (*types.Commitment, error) {
	state := input.Checkpoint.Clone()
	if state.CumulativeWork == nil {
		state.CumulativeWork = uint256.NewInt(0)
	}

	imt := NewIncrementalMerkleTree()
	roots := make([]types.Hash, len(input.Headers))
	for i := range input.Headers {
		next, err := Apply(p, &state, &input.Headers[i])
		if err != nil {
			return nil, err
		}
		if err := imt.Add(next.TipHash); err != nil {
			return nil, err
		}
		roots[i] = input.Headers[i].MerkleRoot
		state = next
	}

	results := make([]types.InclusionResult, len(input.Requests))
	for i := range input.Requests {
		req := &input.Requests[i]
		// compare in uint64: int is 32 bits on the zkVM target, where a
		// high index would convert negative and slip past the bound
		if uint64(req.HeaderIndex) >= uint64(len(roots)) {
			return nil, fmt.Errorf("request %d: header index %d out of range (batch has %d headers): %w",
				i, req.HeaderIndex, len(roots), ErrInclusionProofFailed)
		}

		verified := true
		err := VerifyInclusion(p, LeafDigest(req), req.Path, roots[req.HeaderIndex])
		switch {
		case errors.Is(err, ErrInclusionProofFailed):
			verified = false
		case err != nil:
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		results[i] = types.InclusionResult{Request: uint32(i), Verified: verified}
	}

	return &types.Commitment{
		FinalState:    state,
		BlockTreeRoot: imt.Root(),
		Inclusions:    results,
	}, nil
}
