package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// NeuronID identifies a soma. Identity is stable for the soma's lifetime;
// synapses and connectivity records reference identities, never pointers.
type NeuronID uint64

// State is the lifecycle state of a soma. The surrounding biological model
// moves somas between states; this core only reads them.
type State int

const (
	StateProgenitor State = iota
	StateAlive
	StateDead
)

// CellType is an opaque classification tag carried through to export.
type CellType int

// Synapse is a directed edge from a source soma to a target soma.
// Distance is the tip separation at formation time; Strength starts at a
// configured value and only ever increases.
type Synapse struct {
	Source   NeuronID `json:"source"`
	Target   NeuronID `json:"target"`
	Distance float64  `json:"distance"`
	Strength int      `json:"strength"`
	Tick     int64    `json:"tick"`
}

// ConnectivityRecord is one aggregated row of the exported graph. Isolated
// somas appear as a zero-count self-loop row (Source == Target, Count == 0)
// so every live soma shows up at least once.
type ConnectivityRecord struct {
	Source   NeuronID `json:"source"`
	Target   NeuronID `json:"target"`
	CellType CellType `json:"cell_type"`
	Count    int      `json:"count"`
}

type RunConfig struct {
	VersionedRecord
	RunID             string  `json:"run_id"`
	Ticks             int64   `json:"ticks"`
	Workers           int     `json:"workers"`
	Seed              int64   `json:"seed"`
	Neurons           int     `json:"neurons"`
	NeuritesPerNeuron int     `json:"neurites_per_neuron"`
	MaxTreeDepth      int     `json:"max_tree_depth"`
	Bounds            float64 `json:"bounds"`
	Elongation        float64 `json:"elongation"`
	SearchRadius      float64 `json:"search_radius"`
	FormationCutoff   float64 `json:"formation_cutoff"`
	FormationWindow   int64   `json:"formation_window"`
}

type RunSummary struct {
	VersionedRecord
	RunID       string `json:"run_id"`
	Ticks       int64  `json:"ticks"`
	Neurons     int    `json:"neurons"`
	Neurites    int    `json:"neurites"`
	Connections int    `json:"connections"`
}
