package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"synaptogen/internal/logging"
	"synaptogen/internal/storage"
	synapi "synaptogen/pkg/synaptogen"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "connectivity":
		return runConnectivity(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func newClient(ctx context.Context, storeKind, dbPath string, debug bool) (*synapi.Client, *zap.Logger, error) {
	logger, err := logging.New(debug)
	if err != nil {
		return nil, nil, err
	}
	client, err := synapi.New(ctx, synapi.Options{
		StoreKind: storeKind,
		DBPath:    dbPath,
		Logger:    logger,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return client, logger, nil
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "synaptogen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "synaptogen.db", "sqlite database path")
	configPath := fs.String("config", "", "run config file (.json or .yaml)")
	runID := fs.String("run-id", "", "run identifier (generated when empty)")
	ticks := fs.Int64("ticks", 0, "total simulation ticks")
	workers := fs.Int("workers", 0, "parallel behavior workers")
	seed := fs.Int64("seed", 0, "growth random seed")
	neurons := fs.Int("neurons", 0, "number of somas to seed")
	neurites := fs.Int("neurites", 0, "initial neurites per soma")
	maxDepth := fs.Int("max-depth", 0, "maximum growth tree depth")
	bounds := fs.Float64("bounds", 0, "edge length of the seeding cube")
	elongation := fs.Float64("elongation", 0, "segment length per growth step")
	radius := fs.Float64("radius", 0, "neighbor search radius (linear)")
	cutoff := fs.Float64("cutoff", 0, "strict formation distance cutoff")
	window := fs.Int64("window", 0, "trailing formation window in ticks")
	exportPath := fs.String("export", "", "write connectivity CSV here after the run")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := synapi.RunRequest{}
	if *configPath != "" {
		loaded, err := loadRunRequest(*configPath)
		if err != nil {
			return err
		}
		req = loaded
	}
	// Flags override the config file.
	if *runID != "" {
		req.RunID = *runID
	}
	if *ticks > 0 {
		req.Ticks = *ticks
	}
	if *workers > 0 {
		req.Workers = *workers
	}
	if *seed != 0 {
		req.Seed = *seed
	}
	if *neurons > 0 {
		req.Neurons = *neurons
	}
	if *neurites > 0 {
		req.NeuritesPerNeuron = *neurites
	}
	if *maxDepth > 0 {
		req.MaxTreeDepth = *maxDepth
	}
	if *bounds > 0 {
		req.Bounds = *bounds
	}
	if *elongation > 0 {
		req.Elongation = *elongation
	}
	if *radius > 0 {
		req.SearchRadius = *radius
	}
	if *cutoff > 0 {
		req.FormationCutoff = *cutoff
	}
	if *window > 0 {
		req.FormationWindow = *window
	}

	client, logger, err := newClient(ctx, *storeKind, *dbPath, *debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
		_ = logger.Sync()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d neurons, %d neurites, %d connections over %d ticks\n",
		summary.RunID, summary.Neurons, summary.Neurites, summary.Connections, summary.Ticks)

	if *exportPath != "" {
		if err := client.ExportCSV(ctx, summary.RunID, *exportPath); err != nil {
			return err
		}
		fmt.Printf("connectivity written to %s\n", *exportPath)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "synaptogen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, logger, err := newClient(ctx, *storeKind, *dbPath, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
		_ = logger.Sync()
	}()

	ids, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		summary, err := client.Summary(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%s\tneurons=%d\tconnections=%d\tticks=%d\n",
			id, summary.Neurons, summary.Connections, summary.Ticks)
	}
	return nil
}

func runConnectivity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("connectivity", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "synaptogen.db", "sqlite database path")
	runID := fs.String("run-id", "", "run identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("connectivity requires --run-id")
	}

	client, logger, err := newClient(ctx, *storeKind, *dbPath, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
		_ = logger.Sync()
	}()

	records, err := client.Connectivity(ctx, *runID)
	if err != nil {
		return err
	}
	for _, r := range records {
		fmt.Printf("%d\t%d\t%d\t%d\n", r.Source, r.Target, r.CellType, r.Count)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "synaptogen.db", "sqlite database path")
	runID := fs.String("run-id", "", "run identifier")
	outPath := fs.String("out", "connectivity.csv", "output CSV path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("export requires --run-id")
	}

	client, logger, err := newClient(ctx, *storeKind, *dbPath, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
		_ = logger.Sync()
	}()

	if err := client.ExportCSV(ctx, *runID, *outPath); err != nil {
		return err
	}
	fmt.Printf("connectivity written to %s\n", *outPath)
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: synaptogenctl <init|run|runs|connectivity|export> [flags]", msg)
}
