//go:build mipsle

// The guest program executed inside the zkVM. It reads one proof input
// batch from the host, runs the deterministic validation core, and commits
// the resulting public output. Any classified validation error panics, which
// leaves the run unprovable: a proof either attests the full batch or does
// not exist.
package main

import (
	"github.com/ProjectZKM/Ziren/crates/go-runtime/zkvm_runtime"

	"github.com/kysee/zk-btc/lightclient"
	"github.com/kysee/zk-btc/types"
)

func main() {
	input := zkvm_runtime.Read[types.ProofInput]()

	commitment, err := lightclient.Run(&lightclient.MainNetParams, &input)
	if err != nil {
		panic(err)
	}

	zkvm_runtime.Commit(*commitment)
}
