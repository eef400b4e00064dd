package relayer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/zk-btc/lightclient"
	cfgtypes "github.com/kysee/zk-btc/provers/types"
	"github.com/kysee/zk-btc/types"
)

func syntheticTxIDs(t *testing.T, n int) []types.Hash {
	t.Helper()
	txids := make([]types.Hash, n)
	for i := range txids {
		txids[i] = lightclient.HashBytes([]byte(fmt.Sprintf("tx-%d", i)))
	}
	return txids
}

func TestBuildTxMerklePathAllLeaves(t *testing.T) {
	// odd counts exercise the duplicate-last-node rule at every level
	for _, n := range []int{1, 2, 3, 5, 7, 8} {
		txids := syntheticTxIDs(t, n)

		var root types.Hash
		for index := 0; index < n; index++ {
			path, r := BuildTxMerklePath(txids, index)
			if index == 0 {
				root = r
			} else {
				require.Equal(t, root, r, "root must not depend on the proven leaf (n=%d)", n)
			}
			require.NoError(t,
				lightclient.VerifyInclusion(&lightclient.MainNetParams, txids[index], path, root),
				"path for leaf %d of %d must verify", index, n)
		}
	}
}

func TestBuildTxMerklePathSingleTx(t *testing.T) {
	txids := syntheticTxIDs(t, 1)

	path, root := BuildTxMerklePath(txids, 0)
	require.Empty(t, path)
	require.Equal(t, txids[0], root)
}

func TestBuildTxMerklePathDuplicatedLast(t *testing.T) {
	// with three leaves the last one is its own sibling at the first level
	txids := syntheticTxIDs(t, 3)

	path, _ := BuildTxMerklePath(txids, 2)
	require.Len(t, path, 2)
	require.Equal(t, txids[2], path[0].Sibling)
	require.True(t, path[0].Right)
}

func TestListenerInclusionRequest(t *testing.T) {
	fetcher := newArchiveFetcher(t)
	listener := NewListener(cfgtypes.NewConfig(), fetcher)

	blockHash, err := types.NewHashFromHex(archiveBlock1Hash)
	require.NoError(t, err)

	request, err := listener.InclusionRequest(blockHash, 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(0), request.HeaderIndex)
	require.NotNil(t, request.LeafHash)

	// the request must verify against the block's merkle root
	header, err := fetcher.Header(1)
	require.NoError(t, err)
	require.NoError(t, lightclient.VerifyInclusion(
		&lightclient.MainNetParams, *request.LeafHash, request.Path, header.MerkleRoot))
}

func TestListenerInclusionRequestBadIndex(t *testing.T) {
	fetcher := newArchiveFetcher(t)
	listener := NewListener(cfgtypes.NewConfig(), fetcher)

	blockHash, err := types.NewHashFromHex(archiveBlock1Hash)
	require.NoError(t, err)

	_, err = listener.InclusionRequest(blockHash, 5, 0)
	require.Error(t, err)
	_, err = listener.InclusionRequest(blockHash, -1, 0)
	require.Error(t, err)
}
