package circuit

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/sha2"
	"github.com/consensys/gnark/std/math/uints"
)

// HeaderBatchSize is the number of consecutive headers one circuit instance
// folds. The constraint count grows linearly with it (two SHA-256
// compressions per header hash), so the batch is kept small and the host
// chains proofs window by window.
const HeaderBatchSize = 2

// HeaderBytes is the serialized header size the circuit consumes.
const HeaderBytes = 80

// BtcHeaderChainCircuit proves that a fixed-size window of raw block headers
// forms a valid proof-of-work chain from StartHash to EndHash.
//
// For every header the circuit:
// 1. Asserts the prevBlock field (bytes 4..36) equals the running tip hash
// 2. Computes the block hash = SHA256(SHA256(header)) in-circuit
// 3. Expands the compact difficulty bits (bytes 72..76, little-endian)
//    into a 256-bit target
// 4. Asserts the block hash, read as a little-endian integer, does not
//    exceed the target
// 5. Advances the running tip hash
//
// NOTE: the retarget schedule (whether the bits themselves are the ones
// consensus requires at each height) is enforced by the guest program, which
// carries the interval state; the circuit certifies linkage and work only.
type BtcHeaderChainCircuit struct {
	// Raw 80-byte headers, oldest first (private input)
	Headers [HeaderBatchSize][HeaderBytes]uints.U8

	// Public inputs: the trusted tip the window extends, and the tip it ends at
	StartHash [32]uints.U8 `gnark:",public"`
	EndHash   [32]uints.U8 `gnark:",public"`
}

// Define implements the circuit constraints
func (c *BtcHeaderChainCircuit) Define(api frontend.API) error {
	prev := c.StartHash

	for i := 0; i < HeaderBatchSize; i++ {
		header := c.Headers[i][:]

		// Step 1: chain linkage against the running tip hash
		for j := 0; j < 32; j++ {
			api.AssertIsEqual(header[4+j].Val, prev[j].Val)
		}

		// Step 2: block hash = double SHA-256 of the full 80 bytes
		blockHash, err := hashDouble(api, header)
		if err != nil {
			return fmt.Errorf("header %d hash: %w", i, err)
		}

		// Step 3: expand compact bits into big-endian target bytes
		target := expandCompactTarget(api, header[72:76])

		// Step 4: proof-of-work comparison, little-endian numeric order
		assertHashMeetsTarget(api, blockHash, target)

		prev = blockHash
	}

	// Step 5: the window must end at the public tip
	for j := 0; j < 32; j++ {
		api.AssertIsEqual(prev[j].Val, c.EndHash[j].Val)
	}

	return nil
}

// hashDouble computes SHA256(SHA256(data)) in-circuit.
func hashDouble(api frontend.API, data []uints.U8) ([32]uints.U8, error) {
	h1, err := sha2.New(api)
	if err != nil {
		return [32]uints.U8{}, fmt.Errorf("sha2.New(inner): %w", err)
	}
	h1.Write(data)
	inner := h1.Sum()

	h2, err := sha2.New(api)
	if err != nil {
		return [32]uints.U8{}, fmt.Errorf("sha2.New(outer): %w", err)
	}
	h2.Write(inner)
	outer := h2.Sum()

	return [32]uints.U8(outer), nil
}

// expandCompactTarget turns the 4 little-endian compact-bits bytes
// (mantissa m0 m1 m2, exponent e) into the 32 big-endian bytes of the
// target 0x00..m2 m1 m0 00.. where m2 sits at byte index 32-e.
//
// Each output byte is built by exponent-indexed selection: byte j receives
// mantissa byte mk exactly when j + e == 32 + k. The exponent is constrained
// to 3..32 and the mantissa sign bit to zero, which covers every encoding a
// mainnet header may legally carry; anything else is unsatisfiable.
func expandCompactTarget(api frontend.API, bits []uints.U8) [32]frontend.Variable {
	m0 := bits[0].Val
	m1 := bits[1].Val
	m2 := bits[2].Val
	e := bits[3].Val

	api.AssertIsLessOrEqual(3, e)
	api.AssertIsLessOrEqual(e, 32)
	// sign flag (mantissa bit 23) must be clear
	api.AssertIsLessOrEqual(m2, 0x7f)

	var target [32]frontend.Variable
	for j := 0; j < 32; j++ {
		sel2 := api.IsZero(api.Sub(api.Add(e, j), 32))
		sel1 := api.IsZero(api.Sub(api.Add(e, j), 33))
		sel0 := api.IsZero(api.Sub(api.Add(e, j), 34))
		target[j] = api.Add(api.Mul(sel2, m2), api.Mul(sel1, m1), api.Mul(sel0, m0))
	}
	return target
}

// assertHashMeetsTarget asserts hash <= target where the hash digest is
// interpreted as a little-endian integer (the consensus byte order) and the
// target bytes are big-endian. The comparison is lexicographic over the
// big-endian byte strings with a running strictly-less / still-equal pair.
func assertHashMeetsTarget(api frontend.API, hash [32]uints.U8, target [32]frontend.Variable) {
	less := frontend.Variable(0)
	equal := frontend.Variable(1)

	for j := 0; j < 32; j++ {
		// big-endian byte j of the hash number is wire byte 31-j
		hb := hash[31-j].Val
		cmp := api.Cmp(hb, target[j])
		isLt := api.IsZero(api.Add(cmp, 1))
		isEq := api.IsZero(cmp)

		less = api.Or(less, api.And(equal, isLt))
		equal = api.And(equal, isEq)
	}

	api.AssertIsEqual(api.Or(less, equal), 1)
}
