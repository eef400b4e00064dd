package relayer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	cfgtypes "github.com/kysee/zk-btc/provers/types"
	"github.com/kysee/zk-btc/types"
)

const (
	archiveBlock1Hash = "00000000839a8e6886ab5951d76f411475428afc90947ee320161bbf18eb6048"
	// block 1 holds a single transaction, so its txid is the merkle root
	archiveBlock1TxID = "0e3e2357e806b6cdb1f70b54c3a3a17b6714ee1f0e68bebb44a74b1efd512098"
)

// newArchiveFetcher writes a four-header mainnet archive to a temp file and
// returns a FileFetcher over it.
func newArchiveFetcher(t *testing.T) *FileFetcher {
	t.Helper()

	archive := headerArchive{
		StartHeight: 0,
		Headers: []string{
			"0100000000000000000000000000000000000000000000000000000000000000000000003ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a29ab5f49ffff001d1dac2b7c",
			"010000006fe28c0ab6f1b372c1a6a246ae63f74f931e8365e15a089c68d6190000000000982051fd1e4ba744bbbe680e1fee14677ba1a3c3540bf7b1cdb606e857233e0e61bc6649ffff001d01e36299",
			"010000004860eb18bf1b1620e37e9490fc8a427514416fd75159ab86688e9a8300000000d5fdcc541e25de1c7a5addedf24858b8bb665c9f36ef744ee42c316022c90f9bb0bc6649ffff001d08d2bd61",
			"01000000bddd99ccfda39da1b108ce1a5d70038d0a967bacb68b6b63065f626a0000000044f672226090d85db9a9f2fbfe5f0f9609b387af7be5b7fbb7a1767c831c9e995dbe6649ffff001d05e0ed6d",
		},
		TxIDs: map[string][]string{
			"0x" + archiveBlock1Hash: {archiveBlock1TxID},
		},
	}

	blob, err := json.Marshal(archive)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "headers.json")
	require.NoError(t, os.WriteFile(path, blob, 0644))
	return NewFileFetcher(path)
}

func TestFileFetcherTipHeight(t *testing.T) {
	fetcher := newArchiveFetcher(t)

	tip, err := fetcher.TipHeight()
	require.NoError(t, err)
	require.Equal(t, uint64(3), tip)
}

func TestFileFetcherHeader(t *testing.T) {
	fetcher := newArchiveFetcher(t)

	header, err := fetcher.Header(1)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1d00ffff), header.Bits)

	root, err := types.NewHashFromHex(archiveBlock1TxID)
	require.NoError(t, err)
	require.Equal(t, root, header.MerkleRoot)

	_, err = fetcher.Header(4)
	require.Error(t, err, "heights past the archive must be rejected")
}

func TestFileFetcherBlockTxIDs(t *testing.T) {
	fetcher := newArchiveFetcher(t)

	blockHash, err := types.NewHashFromHex(archiveBlock1Hash)
	require.NoError(t, err)

	txids, err := fetcher.BlockTxIDs(blockHash)
	require.NoError(t, err)
	require.Len(t, txids, 1)

	expected, err := types.NewHashFromHex(archiveBlock1TxID)
	require.NoError(t, err)
	require.Equal(t, expected, txids[0])

	var unknown types.Hash
	unknown[0] = 0x42
	_, err = fetcher.BlockTxIDs(unknown)
	require.Error(t, err)
}

func TestFileFetcherMissingFile(t *testing.T) {
	fetcher := NewFileFetcher(filepath.Join(t.TempDir(), "nope.json"))
	_, err := fetcher.TipHeight()
	require.Error(t, err)
}

func TestConfigFlags(t *testing.T) {
	config := cfgtypes.NewConfig("prog", "--checkpoint", "840000", "--batch", "4", "--rpc", "http://localhost:3000")

	require.Equal(t, uint64(840000), config.CheckpointHeight)
	require.Equal(t, 4, config.BatchSize)
	require.Equal(t, "http://localhost:3000", config.RPCEndpoint)
}

func TestConfigListenerFlags(t *testing.T) {
	config := cfgtypes.NewConfig("prog", "--block", archiveBlock1Hash, "--tx-index", "0")

	require.Equal(t, archiveBlock1Hash, config.BlockHash)
	require.Equal(t, 0, config.TxIndex)
}
