package relayer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	circuit "github.com/kysee/zk-btc/circuits"
	"github.com/kysee/zk-btc/lightclient"
	cfgtypes "github.com/kysee/zk-btc/provers/types"
	"github.com/kysee/zk-btc/types"
)

// Main entry point for the relayer
func RelayerMain(config *cfgtypes.Config) {
	relayer, err := NewRelayer(config, NewAPIFetcher(config.RPCEndpoint))
	if err != nil {
		panic(fmt.Errorf("failed to create relayer: %w", err))
	}

	if err := relayer.setupCircuit(); err != nil {
		relayer.log.Fatal().Err(err).Msg("failed to setup circuit")
	}

	if err := relayer.Run(); err != nil {
		relayer.log.Fatal().Err(err).Msg("relayer stopped")
	}
}

// Relayer walks the header chain from a trusted checkpoint, folds each
// window through the validation core as a preflight, and generates one
// groth16 header-chain proof per window.
type Relayer struct {
	config  *cfgtypes.Config
	fetcher cfgtypes.Fetcher
	ccs     constraint.ConstraintSystem
	pk      groth16.ProvingKey
	log     zerolog.Logger
}

// NewRelayer creates a new Relayer with the given configuration
func NewRelayer(config *cfgtypes.Config, fetcher cfgtypes.Fetcher) (*Relayer, error) {
	// each batch is proven in fixed-size circuit windows, so it must split
	// evenly
	if config.BatchSize <= 0 || config.BatchSize%circuit.HeaderBatchSize != 0 {
		return nil, fmt.Errorf("batch size %d is not a positive multiple of the %d-header proof window",
			config.BatchSize, circuit.HeaderBatchSize)
	}

	_ = os.MkdirAll(filepath.Join(config.RootDir, "output"), 0755)

	return &Relayer{
		fetcher: fetcher,
		config:  config,
		log:     zerolog.New(os.Stdout).With().Timestamp().Str("component", "relayer").Logger(),
	}, nil
}

// Run executes the relayer main loop
func (r *Relayer) Run() error {
	state, err := r.checkpointState(r.config.CheckpointHeight)
	if err != nil {
		return fmt.Errorf("failed to build checkpoint state: %w", err)
	}
	r.log.Info().
		Uint32("height", state.Height).
		Stringer("tip", state.TipHash).
		Msg("starting from checkpoint")

	for {
		tip, err := r.fetcher.TipHeight()
		if err != nil {
			r.log.Warn().Err(err).Msg("failed to fetch tip height")
			time.Sleep(1000 * time.Millisecond)
			continue
		}
		if uint64(state.Height)+uint64(r.config.BatchSize) > tip {
			r.log.Info().Uint64("tip", tip).Msg("caught up with chain tip")
			return nil
		}

		// Fetch the next batch
		headers := make([]types.BlockHeader, r.config.BatchSize)
		for i := range headers {
			headers[i], err = r.fetcher.Header(uint64(state.Height) + uint64(i) + 1)
			if err != nil {
				return fmt.Errorf("failed to fetch header at height %d: %w", uint64(state.Height)+uint64(i)+1, err)
			}
		}

		// One proof per circuit window within the batch
		for w := 0; w < len(headers); w += circuit.HeaderBatchSize {
			window := headers[w : w+circuit.HeaderBatchSize]

			// Preflight: the exact validation the guest performs. A window
			// the core rejects is never worth proving.
			startHash := state.TipHash
			next := state
			for i := range window {
				next, err = lightclient.Apply(&lightclient.MainNetParams, &next, &window[i])
				if err != nil {
					return fmt.Errorf("window preflight rejected header: %w", err)
				}
			}

			r.log.Info().
				Uint32("fromHeight", state.Height+1).
				Uint32("toHeight", next.Height).
				Msg("generating window proof")

			proofSolidity, err := r.generateProof(startHash, window, next.TipHash)
			if err != nil {
				return fmt.Errorf("failed to generate proof: %w", err)
			}

			outputPath := filepath.Join(r.config.RootDir, fmt.Sprintf("output/proof-height-%d.json", next.Height))
			proofData := types.CreateProofData(proofSolidity)
			jsonBlob, err := json.MarshalIndent(proofData, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal proof data: %w", err)
			}
			if err := os.WriteFile(outputPath, jsonBlob, 0644); err != nil {
				return fmt.Errorf("failed to write proof file: %w", err)
			}
			r.log.Info().Str("path", outputPath).Msg("proof saved")

			state = next
		}

		time.Sleep(1000 * time.Millisecond)
	}
}

// checkpointState assembles the trusted starting state for the configured
// checkpoint height. Cumulative work starts at zero: commitments report work
// accumulated since the checkpoint, and the host adds the checkpoint's own
// trusted total when comparing chains.
func (r *Relayer) checkpointState(height uint64) (types.ChainState, error) {
	header, err := r.fetcher.Header(height)
	if err != nil {
		return types.ChainState{}, err
	}

	intervalStart := header.Timestamp
	intervalHeight := height - height%uint64(lightclient.MainNetParams.RetargetInterval)
	if intervalHeight != height {
		first, err := r.fetcher.Header(intervalHeight)
		if err != nil {
			return types.ChainState{}, err
		}
		intervalStart = first.Timestamp
	}

	return types.ChainState{
		TipHash:        lightclient.HeaderHash(&header),
		Height:         uint32(height),
		TipTime:        header.Timestamp,
		IntervalStart:  intervalStart,
		Bits:           header.Bits,
		CumulativeWork: uint256.NewInt(0),
	}, nil
}

// setupCircuit loads the compiled circuit and proving key from the build directory
func (r *Relayer) setupCircuit() error {
	if r.ccs != nil {
		r.log.Info().Msg("circuit already loaded")
		return nil
	}

	ccsPath := filepath.Join(r.config.RootDir, ".build/BtcHeaderChainCircuit.ccs")
	pkPath := filepath.Join(r.config.RootDir, ".build/BtcHeaderChainCircuit.pk")

	r.log.Info().Str("path", ccsPath).Msg("loading BtcHeaderChainCircuit")
	fCcs, err := os.Open(ccsPath)
	if err != nil {
		return fmt.Errorf("failed to open CCS file: %w", err)
	}

	r.ccs = groth16.NewCS(ecc.BN254)
	_, err = r.ccs.ReadFrom(fCcs)
	_ = fCcs.Close()
	if err != nil {
		return fmt.Errorf("failed to read CCS: %w", err)
	}
	r.log.Info().Int("constraints", r.ccs.GetNbConstraints()).Msg("circuit loaded")

	r.log.Info().Str("path", pkPath).Msg("loading proving key")
	fpk, err := os.Open(pkPath)
	if err != nil {
		return fmt.Errorf("failed to open PK file: %w", err)
	}

	r.pk = groth16.NewProvingKey(ecc.BN254)
	_, err = r.pk.ReadFrom(fpk)
	_ = fpk.Close()
	if err != nil {
		return fmt.Errorf("failed to read PK: %w", err)
	}

	r.log.Info().Msg("proving key loaded")
	return nil
}

// generateProof proves one header window from startHash to endHash
func (r *Relayer) generateProof(startHash types.Hash, headers []types.BlockHeader, endHash types.Hash) ([]byte, error) {
	witness, err := NewHeaderChainWitness(startHash, headers, endHash)
	if err != nil {
		return nil, err
	}

	fullWitness, err := frontend.NewWitness(witness, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("failed to create witness: %w", err)
	}

	proof, err := groth16.Prove(r.ccs, r.pk, fullWitness,
		backend.WithProverHashToFieldFunction(sha256.New()))
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}

	_proof, ok := proof.(interface{ MarshalSolidity() []byte })
	if !ok {
		return nil, fmt.Errorf("proof does not implement MarshalSolidity()")
	}

	proofSolidity := _proof.MarshalSolidity()
	r.log.Info().Int("bytes", len(proofSolidity)).Msg("proof generated")

	return proofSolidity, nil
}

// NewHeaderChainWitness assigns a header window to the circuit's byte inputs
func NewHeaderChainWitness(startHash types.Hash, headers []types.BlockHeader, endHash types.Hash) (*circuit.BtcHeaderChainCircuit, error) {
	if len(headers) != circuit.HeaderBatchSize {
		return nil, fmt.Errorf("window has %d headers, circuit folds %d", len(headers), circuit.HeaderBatchSize)
	}

	witness := &circuit.BtcHeaderChainCircuit{}
	for i := range headers {
		raw := headers[i].Serialize()
		for j := 0; j < circuit.HeaderBytes; j++ {
			witness.Headers[i][j] = uints.NewU8(raw[j])
		}
	}
	for j := 0; j < 32; j++ {
		witness.StartHash[j] = uints.NewU8(startHash[j])
		witness.EndHash[j] = uints.NewU8(endHash[j])
	}
	return witness, nil
}
