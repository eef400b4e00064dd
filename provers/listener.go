package relayer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/kysee/zk-btc/lightclient"
	cfgtypes "github.com/kysee/zk-btc/provers/types"
	"github.com/kysee/zk-btc/types"
)

func ListenerMain(config *cfgtypes.Config) {
	listener := NewListener(config, NewAPIFetcher(config.RPCEndpoint))

	blockHash, err := types.NewHashFromHex(config.BlockHash)
	if err != nil {
		listener.log.Fatal().Err(err).Msg("invalid --block hash")
	}

	request, err := listener.InclusionRequest(blockHash, config.TxIndex, 0)
	if err != nil {
		listener.log.Fatal().Err(err).Msg("failed to build inclusion request")
	}

	blob, _ := json.MarshalIndent(request, "", "  ")
	fmt.Println(string(blob))
}

// Listener builds inclusion requests for transactions: it fetches a block's
// txids, derives the Merkle authentication path for one of them, and
// cross-checks the path before handing the request to the relayer.
type Listener struct {
	config  *cfgtypes.Config
	fetcher cfgtypes.Fetcher
	log     zerolog.Logger
}

// NewListener creates a new Listener with the given fetcher
func NewListener(config *cfgtypes.Config, fetcher cfgtypes.Fetcher) *Listener {
	return &Listener{
		config:  config,
		fetcher: fetcher,
		log:     zerolog.New(os.Stdout).With().Timestamp().Str("component", "listener").Logger(),
	}
}

// InclusionRequest builds the request proving that the transaction at txIdx
// in the given block is a member of that block's transaction tree.
// headerIndex is the block's position in the proof batch the request will
// ride along with.
func (l *Listener) InclusionRequest(blockHash types.Hash, txIdx int, headerIndex uint32) (*types.InclusionRequest, error) {
	txids, err := l.fetcher.BlockTxIDs(blockHash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch txids for block %s: %w", blockHash, err)
	}
	if txIdx < 0 || txIdx >= len(txids) {
		return nil, fmt.Errorf("transaction index %d out of range (block has %d transactions)", txIdx, len(txids))
	}

	path, root := BuildTxMerklePath(txids, txIdx)
	l.log.Info().
		Stringer("block", blockHash).
		Int("txIdx", txIdx).
		Int("pathLen", len(path)).
		Stringer("merkleRoot", root).
		Msg("built transaction merkle path")

	// replay the path through the core verifier before shipping it
	txid := txids[txIdx]
	if err := lightclient.VerifyInclusion(&lightclient.MainNetParams, txid, path, root); err != nil {
		return nil, fmt.Errorf("self-check of generated path failed - this should never happen: %w", err)
	}

	leafHash := txid
	return &types.InclusionRequest{
		HeaderIndex: headerIndex,
		LeafHash:    &leafHash,
		Path:        path,
	}, nil
}

// BuildTxMerklePath derives the authentication path for the leaf at index
// and returns it together with the tree root. The tree follows the
// transaction-tree rule: nodes are combined with double SHA-256 and a level
// with an odd node count duplicates its last node.
func BuildTxMerklePath(txids []types.Hash, index int) (types.MerklePath, types.Hash) {
	level := make([]types.Hash, len(txids))
	copy(level, txids)

	var path types.MerklePath
	idx := index
	for len(level) > 1 {
		sibIdx := idx ^ 1
		if sibIdx >= len(level) {
			// odd level: the last node is its own sibling
			sibIdx = idx
		}
		path = append(path, types.PathNode{
			Sibling: level[sibIdx],
			Right:   idx%2 == 0,
		})

		next := make([]types.Hash, (len(level)+1)/2)
		for i := range next {
			left := level[2*i]
			right := left
			if 2*i+1 < len(level) {
				right = level[2*i+1]
			}
			next[i] = lightclient.HashPair(left, right)
		}
		level = next
		idx /= 2
	}

	return path, level[0]
}
