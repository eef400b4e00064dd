package lightclient

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/kysee/zk-btc/types"
)

// Params holds the consensus constants one proof run validates against.
// They are compile-time configuration, never fetched or inferred.
type Params struct {
	// PowLimit is the highest (easiest) permitted target.
	PowLimit *uint256.Int
	// PowLimitBits is PowLimit in compact form.
	PowLimitBits uint32
	// RetargetInterval is the number of headers between difficulty
	// adjustments.
	RetargetInterval uint32
	// TargetTimespan is the intended duration of one retarget interval,
	// in seconds.
	TargetTimespan int64
	// RetargetAdjustmentFactor bounds a single adjustment: the observed
	// timespan is clamped to [TargetTimespan/f, TargetTimespan*f].
	RetargetAdjustmentFactor int64
	// MaxTimestampDrift is the tolerance window, in seconds, by which a
	// header's timestamp may regress behind the tip's.
	MaxTimestampDrift int64
	// MaxMerkleDepth bounds inclusion-proof path length.
	MaxMerkleDepth int
}

// MainNetParams are the Bitcoin mainnet consensus constants.
var MainNetParams = Params{
	PowLimit:                 new(uint256.Int).Lsh(uint256.NewInt(0xffff), 208),
	PowLimitBits:             0x1d00ffff,
	RetargetInterval:         2016,
	TargetTimespan:           14 * 24 * 60 * 60,
	RetargetAdjustmentFactor: 4,
	MaxTimestampDrift:        2 * 60 * 60,
	MaxMerkleDepth:           32,
}

// CompactToTarget decodes the packed difficulty encoding
// (8-bit exponent, 23-bit mantissa, sign flag) into a 256-bit target.
// Encodings that set the sign flag, produce a zero target, or would
// overflow 256 bits are rejected with ErrInvalidTarget.
func CompactToTarget(bits uint32) (*uint256.Int, error) {
	mantissa := bits & 0x007fffff
	exponent := bits >> 24

	if bits&0x00800000 != 0 {
		return nil, fmt.Errorf("compact 0x%08x sets the sign flag: %w", bits, ErrInvalidTarget)
	}
	if mantissa == 0 {
		return nil, fmt.Errorf("compact 0x%08x encodes a zero target: %w", bits, ErrInvalidTarget)
	}

	if exponent <= 3 {
		m := mantissa >> (8 * (3 - exponent))
		if m == 0 {
			return nil, fmt.Errorf("compact 0x%08x encodes a zero target: %w", bits, ErrInvalidTarget)
		}
		return uint256.NewInt(uint64(m)), nil
	}

	// the mantissa occupies 3 bytes; anything shifted past byte 32 overflows
	if exponent > 34 || (exponent > 33 && mantissa > 0xff) || (exponent > 32 && mantissa > 0xffff) {
		return nil, fmt.Errorf("compact 0x%08x overflows 256 bits: %w", bits, ErrInvalidTarget)
	}
	return new(uint256.Int).Lsh(uint256.NewInt(uint64(mantissa)), uint(8*(exponent-3))), nil
}

// TargetToCompact is the canonical inverse of CompactToTarget. Round-tripping
// through it normalizes a target the same way every consensus implementation
// does, which is what makes retarget-boundary comparison exact.
func TargetToCompact(target *uint256.Int) uint32 {
	if target.IsZero() {
		return 0
	}

	size := uint32((target.BitLen() + 7) / 8)
	var mantissa uint32
	if size <= 3 {
		mantissa = uint32(target.Uint64() << (8 * (3 - size)))
	} else {
		shifted := new(uint256.Int).Rsh(target, uint(8*(size-3)))
		mantissa = uint32(shifted.Uint64())
	}

	// keep the sign bit clear by borrowing an exponent byte
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		size++
	}
	return size<<24 | mantissa
}

// WorkFromTarget computes work(target) = floor(2^256 / (target+1)), the
// expected number of hash attempts a header with this target represents.
// Computed entirely in 256 bits via the identity
// floor(2^256/(t+1)) = floor((2^256-1-t)/(t+1)) + 1.
func WorkFromTarget(target *uint256.Int) (*uint256.Int, error) {
	denom, carry := new(uint256.Int).AddOverflow(target, uint256.NewInt(1))
	if carry {
		// target == 2^256-1, so the quotient is exactly one
		return uint256.NewInt(1), nil
	}
	numer := new(uint256.Int).Not(target)
	work := numer.Div(numer, denom)
	work, carry = work.AddOverflow(work, uint256.NewInt(1))
	if carry {
		return nil, fmt.Errorf("work accumulation: %w", ErrArithmeticOverflow)
	}
	return work, nil
}

// HashToNum interprets a digest as an unsigned integer in the consensus
// byte order: least-significant byte first. Getting this order wrong flips
// essentially every proof-of-work comparison, so it lives in exactly one
// place.
func HashToNum(h types.Hash) *uint256.Int {
	be := h.Reversed()
	return new(uint256.Int).SetBytes(be[:])
}

// nextTargetBits computes the compact target required for the interval that
// begins after a retarget boundary. actualTimespan is the observed duration
// of the closing interval in seconds; it is clamped to the bounded
// adjustment window before scaling the old target.
func nextTargetBits(p *Params, oldBits uint32, actualTimespan int64) (uint32, error) {
	oldTarget, err := CompactToTarget(oldBits)
	if err != nil {
		return 0, err
	}

	minTimespan := p.TargetTimespan / p.RetargetAdjustmentFactor
	maxTimespan := p.TargetTimespan * p.RetargetAdjustmentFactor
	if actualTimespan < minTimespan {
		actualTimespan = minTimespan
	} else if actualTimespan > maxTimespan {
		actualTimespan = maxTimespan
	}

	newTarget, overflow := new(uint256.Int).MulOverflow(oldTarget, uint256.NewInt(uint64(actualTimespan)))
	if overflow {
		return 0, fmt.Errorf("retarget scaling: %w", ErrArithmeticOverflow)
	}
	newTarget.Div(newTarget, uint256.NewInt(uint64(p.TargetTimespan)))

	if newTarget.Gt(p.PowLimit) {
		newTarget.Set(p.PowLimit)
	}
	return TargetToCompact(newTarget), nil
}
