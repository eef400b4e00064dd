package types

import (
	"github.com/kysee/zk-btc/types"
)

// Fetcher defines the interface for fetching chain data the relayer and
// listener need to assemble proof inputs
type Fetcher interface {
	// TipHeight returns the current best chain height
	TipHeight() (uint64, error)
	// Header retrieves the block header at the given height
	Header(height uint64) (types.BlockHeader, error)
	// BlockTxIDs retrieves the ordered txids of the block with the given hash
	BlockTxIDs(blockHash types.Hash) ([]types.Hash, error)
}
