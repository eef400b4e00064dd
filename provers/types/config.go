package types

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the relayer configuration
type Config struct {
	RootDir string

	// RPCEndpoint is an Esplora-style REST API base URL
	RPCEndpoint string
	// CheckpointHeight is the trusted height proofs start from
	CheckpointHeight uint64
	// BatchSize is the number of headers folded per proof input
	BatchSize int

	// BlockHash/TxIndex select the transaction the listener builds an
	// inclusion request for
	BlockHash string
	TxIndex   int
}

func NewConfig(args ...string) *Config {
	// Parse configuration from environment variables or command line args
	config := Config{
		RootDir:          getEnv("ROOT", "."),
		RPCEndpoint:      getEnv("RPC_ENDPOINT", "https://blockstream.info/api"),
		CheckpointHeight: 0,
		BatchSize:        2016,
		TxIndex:          0,
	}

	for i := 0; i < len(args); i++ {
		if len(args) <= i+1 {
			panic(fmt.Errorf("missing argument for %s", args[i-1]))
		}

		switch args[i] {
		case "--root":
			config.RootDir = args[i+1]
			i++
		case "--rpc":
			config.RPCEndpoint = args[i+1]
			i++
		case "--checkpoint":
			config.CheckpointHeight, _ = strconv.ParseUint(args[i+1], 10, 64)
			i++
		case "--batch":
			config.BatchSize, _ = strconv.Atoi(args[i+1])
			i++
		case "--block":
			config.BlockHash = args[i+1]
			i++
		case "--tx-index":
			config.TxIndex, _ = strconv.Atoi(args[i+1])
			i++
		}
	}

	return &config
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
