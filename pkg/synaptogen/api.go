// Package synaptogen is the public entry point: it hosts a run of the
// reference engine with the synapse-formation behavior attached, persists
// the outcome, and exports connectivity summaries.
package synaptogen

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"synaptogen/internal/engine"
	"synaptogen/internal/export"
	"synaptogen/internal/model"
	"synaptogen/internal/storage"
	"synaptogen/internal/synapse"
)

const (
	defaultDBPath = "synaptogen.db"
	defaultTicks  = 500
)

type Options struct {
	StoreKind string
	DBPath    string
	Logger    *zap.Logger
}

type Client struct {
	store  storage.Store
	logger *zap.Logger
}

type RunRequest struct {
	RunID             string
	Ticks             int64
	Workers           int
	Seed              int64
	Neurons           int
	NeuritesPerNeuron int
	MaxTreeDepth      int
	Bounds            float64
	Elongation        float64
	SearchRadius      float64
	FormationCutoff   float64
	FormationWindow   int64
}

func New(ctx context.Context, opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return &Client{store: store, logger: logger}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Run grows a population of neurons, lets tips attempt their one-shot
// connection decision in the trailing window, and persists the resulting
// connectivity. Export only reads synapse lists after the tick loop has
// returned, so it never observes a list mid-append.
func (c *Client) Run(ctx context.Context, req RunRequest) (model.RunSummary, error) {
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}
	if req.Ticks <= 0 {
		req.Ticks = defaultTicks
	}

	index := engine.NewIndex()
	growth, err := engine.NewGrowth(engine.GrowthConfig{
		Neurons:           req.Neurons,
		NeuritesPerNeuron: req.NeuritesPerNeuron,
		MaxTreeDepth:      req.MaxTreeDepth,
		Bounds:            req.Bounds,
		Elongation:        req.Elongation,
		Seed:              req.Seed,
	}, index)
	if err != nil {
		return model.RunSummary{}, err
	}
	growth.Seed()

	classifier, err := synapse.NewClassifier(index, req.SearchRadius, req.FormationCutoff, c.logger)
	if err != nil {
		return model.RunSummary{}, err
	}
	registry := synapse.NewRegistry()

	behaviors := engine.NewBehaviorRegistry()
	sim, err := engine.New(engine.Config{
		Index:      index,
		Behaviors:  behaviors,
		Ops:        []engine.Op{growth},
		TotalTicks: req.Ticks,
		Workers:    req.Workers,
		Logger:     c.logger,
	})
	if err != nil {
		return model.RunSummary{}, err
	}

	policy, err := synapse.NewFormationPolicy(synapse.PolicyConfig{
		Classifier: classifier,
		Registry:   registry,
		Clock:      sim.Clock(),
		Window:     req.FormationWindow,
		Logger:     c.logger,
	})
	if err != nil {
		return model.RunSummary{}, err
	}
	if err := behaviors.Register(policy); err != nil {
		return model.RunSummary{}, err
	}

	if err := sim.Run(ctx); err != nil {
		return model.RunSummary{}, fmt.Errorf("run %s: %w", req.RunID, err)
	}

	somas := index.LiveSomas()
	records := export.BuildRecords(somas)

	cfg := model.RunConfig{
		VersionedRecord:   versionedRecord(),
		RunID:             req.RunID,
		Ticks:             req.Ticks,
		Workers:           req.Workers,
		Seed:              req.Seed,
		Neurons:           req.Neurons,
		NeuritesPerNeuron: req.NeuritesPerNeuron,
		MaxTreeDepth:      req.MaxTreeDepth,
		Bounds:            req.Bounds,
		Elongation:        req.Elongation,
		SearchRadius:      req.SearchRadius,
		FormationCutoff:   req.FormationCutoff,
		FormationWindow:   req.FormationWindow,
	}
	summary := model.RunSummary{
		VersionedRecord: versionedRecord(),
		RunID:           req.RunID,
		Ticks:           req.Ticks,
		Neurons:         len(growth.Somas()),
		Neurites:        growth.NeuriteCount(),
		Connections:     registry.Count(),
	}

	if err := c.store.SaveRunConfig(ctx, cfg); err != nil {
		return model.RunSummary{}, fmt.Errorf("save run config: %w", err)
	}
	if err := c.store.SaveRunSummary(ctx, summary); err != nil {
		return model.RunSummary{}, fmt.Errorf("save run summary: %w", err)
	}
	if err := c.store.SaveConnectivity(ctx, req.RunID, records); err != nil {
		return model.RunSummary{}, fmt.Errorf("save connectivity: %w", err)
	}

	c.logger.Info("run complete",
		zap.String("run_id", req.RunID),
		zap.Int("neurons", summary.Neurons),
		zap.Int("neurites", summary.Neurites),
		zap.Int("connections", summary.Connections))
	return summary, nil
}

// Runs lists the persisted run IDs.
func (c *Client) Runs(ctx context.Context) ([]string, error) {
	return c.store.ListRunIDs(ctx)
}

// Summary returns the persisted summary for a run.
func (c *Client) Summary(ctx context.Context, runID string) (model.RunSummary, error) {
	summary, ok, err := c.store.GetRunSummary(ctx, runID)
	if err != nil {
		return model.RunSummary{}, err
	}
	if !ok {
		return model.RunSummary{}, fmt.Errorf("run not found: %s", runID)
	}
	return summary, nil
}

// Connectivity returns the persisted records for a run.
func (c *Client) Connectivity(ctx context.Context, runID string) ([]model.ConnectivityRecord, error) {
	records, ok, err := c.store.GetConnectivity(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	return records, nil
}

// ExportCSV writes a run's persisted connectivity to a CSV file.
func (c *Client) ExportCSV(ctx context.Context, runID, path string) error {
	if path == "" {
		return errors.New("export path is required")
	}
	records, err := c.Connectivity(ctx, runID)
	if err != nil {
		return err
	}
	return export.WriteRecordsFile(path, records, c.logger)
}

func versionedRecord() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}
