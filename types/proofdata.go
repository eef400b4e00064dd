package types

import (
	bn254_fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ProofData is the on-chain submission format for a groth16 proof produced
// by the header-chain circuit: the eight proof words followed by the
// commitment and its proof of knowledge, split out of MarshalSolidity's
// packed byte layout.
type ProofData struct {
	Proof         []HexBytes `json:"proof"`
	Commitments   []HexBytes `json:"commitments"`
	CommitmentPok []HexBytes `json:"commitmentPok"`
}

// CreateProofData slices a MarshalSolidity-encoded proof into ProofData.
func CreateProofData(proofSolidity []byte) *ProofData {
	// A, B, C
	proof := make([]HexBytes, 8)
	for i := 0; i < len(proof); i++ {
		proof[i] = proofSolidity[i*bn254_fr.Bytes : (i+1)*bn254_fr.Bytes]
	}

	startIdx0 := 8*bn254_fr.Bytes + 4
	commitments := make([]HexBytes, 4)
	for i := 0; i < len(commitments); i++ {
		startIdx := startIdx0 + (i * bn254_fr.Bytes)
		commitments[i] = proofSolidity[startIdx : startIdx+bn254_fr.Bytes]
	}

	return &ProofData{
		Proof:         proof,
		Commitments:   commitments[0:2],
		CommitmentPok: commitments[2:4],
	}
}
