package main

import (
	"os"

	relayer "github.com/kysee/zk-btc/provers"
	"github.com/kysee/zk-btc/provers/types"
)

func main() {
	config := types.NewConfig(os.Args...)

	// --block selects listener mode (build one inclusion request)
	if config.BlockHash != "" {
		relayer.ListenerMain(config)
		return
	}

	relayer.RelayerMain(config)
}
