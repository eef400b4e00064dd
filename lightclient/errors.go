// Package lightclient is the deterministic validation core that runs inside
// the zkVM guest. It folds a batch of block headers into a chain state,
// verifies transaction inclusion proofs against validated headers, and
// builds the single public commitment the host reads back.
//
// Everything here is single-threaded and purely data-in/data-out: no I/O,
// no logging, no ambient state. Identical inputs produce identical outputs
// and an identical execution trace.
package lightclient

import "errors"

// Classified validation failures. Every one of them is fatal to the current
// proof run; the host must supply corrected input rather than retry.
var (
	// ErrLinkageMismatch: a header's prevBlock does not equal the expected
	// tip hash.
	ErrLinkageMismatch = errors.New("header linkage mismatch")
	// ErrInvalidTarget: the compact difficulty bits are malformed (negative
	// flag, zero target, 256-bit overflow, or above the proof-of-work limit).
	ErrInvalidTarget = errors.New("invalid compact target")
	// ErrProofOfWorkNotMet: the header hash, read as a little-endian
	// integer, exceeds the decoded target.
	ErrProofOfWorkNotMet = errors.New("proof of work not met")
	// ErrTimestampOutOfRange: the header timestamp regresses past the
	// allowed drift window behind the tip timestamp.
	ErrTimestampOutOfRange = errors.New("timestamp out of range")
	// ErrDifficultyMismatch: the header's compact bits differ from the
	// retarget schedule's expected value.
	ErrDifficultyMismatch = errors.New("difficulty bits mismatch")

	// ErrInclusionProofFailed: replaying a Merkle path did not reduce to the
	// header's merkle root.
	ErrInclusionProofFailed = errors.New("inclusion proof failed")
	// ErrPathTooLong: a Merkle path exceeds the configured maximum depth.
	ErrPathTooLong = errors.New("merkle path too long")

	// ErrArithmeticOverflow: a 256-bit arithmetic operation would wrap.
	// Signalled instead of wrapping so cumulative-work invariants cannot be
	// silently corrupted.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
