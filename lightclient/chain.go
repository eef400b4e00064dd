package lightclient

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/kysee/zk-btc/types"
)

// Apply folds one header into the chain state and returns the successor
// state; the input state is never mutated. Beyond ValidateHeader it enforces
// the retarget schedule: off-boundary headers must carry the interval's
// compact bits unchanged, and the header opening a new interval (height
// divisible by RetargetInterval) must carry exactly the target recomputed
// from the closing interval's observed timespan (ErrDifficultyMismatch
// otherwise).
//
// There is no rollback: any failure aborts the whole proof run.
func Apply(p *Params, state *types.ChainState, header *types.BlockHeader) (types.ChainState, error) {
	newHeight := state.Height + 1

	expectedBits := state.Bits
	if newHeight%p.RetargetInterval == 0 {
		actual := int64(state.TipTime) - int64(state.IntervalStart)
		bits, err := nextTargetBits(p, state.Bits, actual)
		if err != nil {
			return types.ChainState{}, fmt.Errorf("height %d: %w", newHeight, err)
		}
		expectedBits = bits
	}
	if header.Bits != expectedBits {
		return types.ChainState{}, fmt.Errorf("height %d: bits 0x%08x, expected 0x%08x: %w",
			newHeight, header.Bits, expectedBits, ErrDifficultyMismatch)
	}

	hash, target, err := ValidateHeader(p, header, state.TipHash, state.TipTime)
	if err != nil {
		return types.ChainState{}, fmt.Errorf("height %d: %w", newHeight, err)
	}

	work, err := WorkFromTarget(target)
	if err != nil {
		return types.ChainState{}, fmt.Errorf("height %d: %w", newHeight, err)
	}
	prevWork := state.CumulativeWork
	if prevWork == nil {
		prevWork = uint256.NewInt(0)
	}
	cumulative, overflow := new(uint256.Int).AddOverflow(prevWork, work)
	if overflow {
		return types.ChainState{}, fmt.Errorf("height %d: cumulative work: %w", newHeight, ErrArithmeticOverflow)
	}

	next := types.ChainState{
		TipHash:        hash,
		Height:         newHeight,
		TipTime:        header.Timestamp,
		IntervalStart:  state.IntervalStart,
		Bits:           expectedBits,
		CumulativeWork: cumulative,
	}
	if newHeight%p.RetargetInterval == 0 {
		next.IntervalStart = header.Timestamp
	}
	return next, nil
}
