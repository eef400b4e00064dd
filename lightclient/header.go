package lightclient

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/kysee/zk-btc/types"
)

// ValidateHeader checks a single header's internal consistency and its
// linkage to the expected predecessor. The checks run in a fixed order and
// the first failure classifies the whole run:
//
//  1. linkage: header.PrevBlock must equal expectedPrev (ErrLinkageMismatch)
//  2. target decode: compact bits must be well formed and not exceed the
//     proof-of-work limit (ErrInvalidTarget)
//  3. proof of work: double-SHA256 of the 80-byte serialization, read as a
//     little-endian integer, must not exceed the target (ErrProofOfWorkNotMet)
//  4. timestamp sanity: the timestamp may regress at most
//     MaxTimestampDrift seconds behind the previous header's
//     (ErrTimestampOutOfRange)
//
// On success it returns the header's own hash (the next expected previous
// hash) and the decoded target (the work-accumulation input). Purely
// functional; no state is touched.
func ValidateHeader(p *Params, header *types.BlockHeader, expectedPrev types.Hash, prevTime uint32) (types.Hash, *uint256.Int, error) {
	if header.PrevBlock != expectedPrev {
		return types.Hash{}, nil, fmt.Errorf("prevBlock %s, expected %s: %w",
			header.PrevBlock, expectedPrev, ErrLinkageMismatch)
	}

	target, err := CompactToTarget(header.Bits)
	if err != nil {
		return types.Hash{}, nil, err
	}
	if target.Gt(p.PowLimit) {
		return types.Hash{}, nil, fmt.Errorf("target above proof-of-work limit: %w", ErrInvalidTarget)
	}

	hash := HeaderHash(header)
	if HashToNum(hash).Gt(target) {
		return types.Hash{}, nil, fmt.Errorf("header %s exceeds target 0x%08x: %w",
			hash, header.Bits, ErrProofOfWorkNotMet)
	}

	if int64(header.Timestamp)+p.MaxTimestampDrift < int64(prevTime) {
		return types.Hash{}, nil, fmt.Errorf("timestamp %d regresses more than %ds behind tip time %d: %w",
			header.Timestamp, p.MaxTimestampDrift, prevTime, ErrTimestampOutOfRange)
	}

	return hash, target, nil
}
