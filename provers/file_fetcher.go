package relayer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kysee/zk-btc/types"
)

// headerArchive is the JSON fixture layout FileFetcher reads: consecutive
// raw headers starting at StartHeight, plus optional per-block txid lists
// keyed by display-order block hash.
type headerArchive struct {
	StartHeight uint64              `json:"startHeight"`
	Headers     []string            `json:"headers"`
	TxIDs       map[string][]string `json:"txids,omitempty"`
}

// FileFetcher implements Fetcher by reading from a local JSON archive,
// for offline proof generation and tests
type FileFetcher struct {
	FilePath string

	archive *headerArchive
}

// NewFileFetcher creates a new FileFetcher with the given file path
func NewFileFetcher(filePath string) *FileFetcher {
	return &FileFetcher{
		FilePath: filePath,
	}
}

func (f *FileFetcher) load() error {
	if f.archive != nil {
		return nil
	}

	data, err := os.ReadFile(f.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", f.FilePath, err)
	}

	var archive headerArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	f.archive = &archive
	return nil
}

// TipHeight returns the highest height the archive covers
func (f *FileFetcher) TipHeight() (uint64, error) {
	if err := f.load(); err != nil {
		return 0, err
	}
	if len(f.archive.Headers) == 0 {
		return 0, fmt.Errorf("archive %s contains no headers", f.FilePath)
	}
	return f.archive.StartHeight + uint64(len(f.archive.Headers)) - 1, nil
}

// Header returns the archived header at the given height
func (f *FileFetcher) Header(height uint64) (types.BlockHeader, error) {
	if err := f.load(); err != nil {
		return types.BlockHeader{}, err
	}
	if height < f.archive.StartHeight || height >= f.archive.StartHeight+uint64(len(f.archive.Headers)) {
		return types.BlockHeader{}, fmt.Errorf("height %d outside archive range [%d, %d)",
			height, f.archive.StartHeight, f.archive.StartHeight+uint64(len(f.archive.Headers)))
	}
	return types.DecodeHeaderHex(f.archive.Headers[height-f.archive.StartHeight])
}

// BlockTxIDs returns the archived txid list for a block hash
func (f *FileFetcher) BlockTxIDs(blockHash types.Hash) ([]types.Hash, error) {
	if err := f.load(); err != nil {
		return nil, err
	}

	key := blockHash.String()
	txidHex, ok := f.archive.TxIDs[key]
	if !ok {
		return nil, fmt.Errorf("no txids archived for block %s", key)
	}

	txids := make([]types.Hash, len(txidHex))
	for i, s := range txidHex {
		txid, err := types.NewHashFromHex(s)
		if err != nil {
			return nil, fmt.Errorf("txid %d: %w", i, err)
		}
		txids[i] = txid
	}
	return txids, nil
}
