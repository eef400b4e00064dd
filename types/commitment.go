package types

// PathNode is one step of a Merkle authentication path. Right reports the
// sibling's position relative to the running digest: true places the sibling
// on the right of the concatenation before re-hashing.
type PathNode struct {
	Sibling Hash `json:"sibling"`
	Right   bool `json:"right"`
}

// MerklePath is an authentication path ordered from the leaf's level up to
// the level just below the root.
type MerklePath []PathNode

// InclusionRequest asks the core to verify that a leaf is a member of the
// transaction tree committed by the header at HeaderIndex (an index into the
// proof batch, not a chain height). The leaf is supplied either as raw bytes
// (hashed with double-SHA256 into a txid) or pre-hashed via LeafHash.
type InclusionRequest struct {
	HeaderIndex uint32     `json:"headerIndex"`
	Leaf        HexBytes   `json:"leaf,omitempty"`
	LeafHash    *Hash      `json:"leafHash,omitempty"`
	Path        MerklePath `json:"path"`
}

// InclusionResult reports one verified-membership outcome. Request is the
// request's position in the input batch, preserved so the host can correlate
// results without re-deriving ordering.
type InclusionResult struct {
	Request  uint32 `json:"request"`
	Verified bool   `json:"verified"`
}

// Commitment is the single public output of one proof execution. It is the
// only value the host may trust as proven; nothing else escapes the
// deterministic execution boundary.
type Commitment struct {
	FinalState    ChainState        `json:"finalState"`
	BlockTreeRoot Hash              `json:"blockTreeRoot"`
	Inclusions    []InclusionResult `json:"inclusions"`
}

// ProofInput is the decoded in-memory shape of one proof execution's input
// batch: a trusted starting state, an ordered header sequence, and zero or
// more inclusion requests against headers of that sequence.
type ProofInput struct {
	Checkpoint ChainState         `json:"checkpoint"`
	Headers    []BlockHeader      `json:"headers"`
	Requests   []InclusionRequest `json:"requests,omitempty"`
}
