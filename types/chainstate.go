package types

import (
	"github.com/holiman/uint256"
)

// ChainState is the running result of folding validated headers. One proof
// execution starts from a trusted checkpoint state and ends at the state
// carried in the Commitment. CumulativeWork is the expected-hash-count
// measure derived from each accepted header's target; it strictly increases
// with every accepted header.
type ChainState struct {
	// TipHash is the block hash of the most recently accepted header.
	TipHash Hash `json:"tipHash"`
	// Height is the block height of the tip.
	Height uint32 `json:"height"`
	// TipTime is the tip header's timestamp, used for the monotonicity
	// sanity bound on the next header.
	TipTime uint32 `json:"tipTime"`
	// IntervalStart is the timestamp of the first header of the current
	// difficulty interval. It anchors the retarget timespan computation.
	IntervalStart uint32 `json:"intervalStart"`
	// Bits is the compact target every header in the current interval must
	// carry.
	Bits uint32 `json:"bits"`
	// CumulativeWork accumulates work(target) for every accepted header
	// since the proof system's genesis checkpoint.
	CumulativeWork *uint256.Int `json:"cumulativeWork"`
}

// Clone returns a deep copy; Apply never mutates the state it was given.
func (s *ChainState) Clone() ChainState {
	c := *s
	if s.CumulativeWork != nil {
		c.CumulativeWork = new(uint256.Int).Set(s.CumulativeWork)
	}
	return c
}
