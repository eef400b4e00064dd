package circuit

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/std/math/uints"
	gnark_test "github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/kysee/zk-btc/types"
)

// Mainnet headers at heights 1 and 2, extending the genesis block.
var windowHeaderHex = [HeaderBatchSize]string{
	"010000006fe28c0ab6f1b372c1a6a246ae63f74f931e8365e15a089c68d6190000000000982051fd1e4ba744bbbe680e1fee14677ba1a3c3540bf7b1cdb606e857233e0e61bc6649ffff001d01e36299",
	"010000004860eb18bf1b1620e37e9490fc8a427514416fd75159ab86688e9a8300000000d5fdcc541e25de1c7a5addedf24858b8bb665c9f36ef744ee42c316022c90f9bb0bc6649ffff001d08d2bd61",
}

const (
	windowStartHashHex = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"
	windowEndHashHex   = "000000006a625f06636b8bb6ac7b960a8d03705d1ace08b1a19da3fdcc99ddbd"
)

func headerChainWitness(t *testing.T) *BtcHeaderChainCircuit {
	t.Helper()

	witness := &BtcHeaderChainCircuit{}
	for i := 0; i < HeaderBatchSize; i++ {
		header, err := types.DecodeHeaderHex(windowHeaderHex[i])
		require.NoError(t, err)
		raw := header.Serialize()
		for j := 0; j < HeaderBytes; j++ {
			witness.Headers[i][j] = uints.NewU8(raw[j])
		}
	}

	start, err := types.NewHashFromHex(windowStartHashHex)
	require.NoError(t, err)
	end, err := types.NewHashFromHex(windowEndHashHex)
	require.NoError(t, err)
	for j := 0; j < 32; j++ {
		witness.StartHash[j] = uints.NewU8(start[j])
		witness.EndHash[j] = uints.NewU8(end[j])
	}
	return witness
}

func TestBtcHeaderChainCircuit_IsSolved(t *testing.T) {
	witness := headerChainWitness(t)

	assert := gnark_test.NewAssert(t)
	err := gnark_test.IsSolved(&BtcHeaderChainCircuit{}, witness, ecc.BN254.ScalarField())
	assert.NoError(err)
}

func TestBtcHeaderChainCircuit_WrongEndHash(t *testing.T) {
	witness := headerChainWitness(t)
	witness.EndHash[0] = uints.NewU8(0xff)

	err := gnark_test.IsSolved(&BtcHeaderChainCircuit{}, witness, ecc.BN254.ScalarField())
	require.Error(t, err, "a window ending at the wrong tip must be unsatisfiable")
}

func TestBtcHeaderChainCircuit_BrokenLinkage(t *testing.T) {
	witness := headerChainWitness(t)
	// corrupt the second header's prevBlock field (bytes 4..36)
	witness.Headers[1][10] = uints.NewU8(0x42)

	err := gnark_test.IsSolved(&BtcHeaderChainCircuit{}, witness, ecc.BN254.ScalarField())
	require.Error(t, err)
}

func TestBtcHeaderChainCircuit_InsufficientWork(t *testing.T) {
	witness := headerChainWitness(t)

	// rebuild with a flipped nonce in the first header; the hash no longer
	// meets the target, and the second header's linkage breaks too
	header, err := types.DecodeHeaderHex(windowHeaderHex[0])
	require.NoError(t, err)
	header.Nonce ^= 0x01
	raw := header.Serialize()
	for j := 0; j < HeaderBytes; j++ {
		witness.Headers[0][j] = uints.NewU8(raw[j])
	}

	err = gnark_test.IsSolved(&BtcHeaderChainCircuit{}, witness, ecc.BN254.ScalarField())
	require.Error(t, err)
}
