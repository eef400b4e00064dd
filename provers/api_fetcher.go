package relayer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kysee/zk-btc/types"
)

// APIFetcher implements Fetcher against an Esplora-style REST endpoint
type APIFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewAPIFetcher creates a new APIFetcher with the given base URL
func NewAPIFetcher(baseURL string) *APIFetcher {
	return &APIFetcher{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{},
	}
}

// TipHeight retrieves the best chain height
// GET /blocks/tip/height
func (a *APIFetcher) TipHeight() (uint64, error) {
	body, err := a.get("/blocks/tip/height")
	if err != nil {
		return 0, err
	}
	height, err := strconv.ParseUint(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse tip height: %w", err)
	}
	return height, nil
}

// Header retrieves the raw header at a height, resolving the block hash first
// GET /block-height/{height}, then GET /block/{hash}/header
func (a *APIFetcher) Header(height uint64) (types.BlockHeader, error) {
	hashHex, err := a.get(fmt.Sprintf("/block-height/%d", height))
	if err != nil {
		return types.BlockHeader{}, err
	}

	headerHex, err := a.get(fmt.Sprintf("/block/%s/header", strings.TrimSpace(string(hashHex))))
	if err != nil {
		return types.BlockHeader{}, err
	}

	header, err := types.DecodeHeaderHex(strings.TrimSpace(string(headerHex)))
	if err != nil {
		return types.BlockHeader{}, fmt.Errorf("height %d: %w", height, err)
	}
	return header, nil
}

// BlockTxIDs retrieves the ordered txids of a block
// GET /block/{hash}/txids
func (a *APIFetcher) BlockTxIDs(blockHash types.Hash) ([]types.Hash, error) {
	body, err := a.get(fmt.Sprintf("/block/%s/txids", strings.TrimPrefix(blockHash.String(), "0x")))
	if err != nil {
		return nil, err
	}

	var txidHex []string
	if err := json.Unmarshal(body, &txidHex); err != nil {
		return nil, fmt.Errorf("failed to parse txids: %w", err)
	}

	txids := make([]types.Hash, len(txidHex))
	for i, s := range txidHex {
		txids[i], err = types.NewHashFromHex(s)
		if err != nil {
			return nil, fmt.Errorf("txid %d: %w", i, err)
		}
	}
	return txids, nil
}

func (a *APIFetcher) get(path string) ([]byte, error) {
	endpoint, err := url.Parse(a.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	resp, err := a.Client.Get(endpoint.String())
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
