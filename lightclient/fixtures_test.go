package lightclient

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/kysee/zk-btc/types"
)

// The first four mainnet headers, 80-byte wire hex. Height 0 serves as the
// trusted checkpoint, heights 1..3 as the proof batch.
var mainnetHeaderHex = []string{
	"0100000000000000000000000000000000000000000000000000000000000000000000003ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a29ab5f49ffff001d1dac2b7c",
	"010000006fe28c0ab6f1b372c1a6a246ae63f74f931e8365e15a089c68d6190000000000982051fd1e4ba744bbbe680e1fee14677ba1a3c3540bf7b1cdb606e857233e0e61bc6649ffff001d01e36299",
	"010000004860eb18bf1b1620e37e9490fc8a427514416fd75159ab86688e9a8300000000d5fdcc541e25de1c7a5addedf24858b8bb665c9f36ef744ee42c316022c90f9bb0bc6649ffff001d08d2bd61",
	"01000000bddd99ccfda39da1b108ce1a5d70038d0a967bacb68b6b63065f626a0000000044f672226090d85db9a9f2fbfe5f0f9609b387af7be5b7fbb7a1767c831c9e995dbe6649ffff001d05e0ed6d",
}

// Display-order block hashes of the headers above.
var mainnetHashHex = []string{
	"000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f",
	"00000000839a8e6886ab5951d76f411475428afc90947ee320161bbf18eb6048",
	"000000006a625f06636b8bb6ac7b960a8d03705d1ace08b1a19da3fdcc99ddbd",
	"0000000082b5015589a3fdf2d4baff403e6f0be035a5d9742c1cae6295464449",
}

func mainnetHeaders(t *testing.T) []types.BlockHeader {
	t.Helper()
	headers := make([]types.BlockHeader, len(mainnetHeaderHex))
	for i, hx := range mainnetHeaderHex {
		h, err := types.DecodeHeaderHex(hx)
		require.NoError(t, err, "failed to decode fixture header %d", i)
		headers[i] = h
	}
	return headers
}

func mainnetHash(t *testing.T, i int) types.Hash {
	t.Helper()
	h, err := types.NewHashFromHex(mainnetHashHex[i])
	require.NoError(t, err)
	return h
}

// genesisCheckpoint is the trusted state after the genesis block, with its
// own work already accumulated.
func genesisCheckpoint(t *testing.T) types.ChainState {
	t.Helper()
	headers := mainnetHeaders(t)
	genesis := headers[0]

	target, err := CompactToTarget(genesis.Bits)
	require.NoError(t, err)
	work, err := WorkFromTarget(target)
	require.NoError(t, err)

	return types.ChainState{
		TipHash:        mainnetHash(t, 0),
		Height:         0,
		TipTime:        genesis.Timestamp,
		IntervalStart:  genesis.Timestamp,
		Bits:           genesis.Bits,
		CumulativeWork: work,
	}
}

func requireWorkEquals(t *testing.T, expected uint64, actual *uint256.Int) {
	t.Helper()
	require.Equal(t, 0, actual.Cmp(uint256.NewInt(expected)),
		"work mismatch: got %s, want %d", actual.String(), expected)
}
