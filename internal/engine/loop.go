package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Index      *Index
	Behaviors  *BehaviorRegistry
	Ops        []Op
	TotalTicks int64
	Workers    int
	Logger     *zap.Logger
}

// Simulation drives the tick loop: per tick, the whole-simulation ops run in
// order, then every behavior runs once per agent on a bounded worker pool.
// g.Wait is the per-tick barrier; nothing of tick N+1 starts before every
// behavior call of tick N has returned, and nothing may read connection
// lists for export until Run has returned.
type Simulation struct {
	index     *Index
	behaviors *BehaviorRegistry
	ops       []Op
	clock     *TickClock
	workers   int
	logger    *zap.Logger
}

func New(cfg Config) (*Simulation, error) {
	if cfg.Index == nil {
		return nil, errors.New("index is required")
	}
	if cfg.TotalTicks <= 0 {
		return nil, errors.New("total ticks must be positive")
	}
	if cfg.Behaviors == nil {
		cfg.Behaviors = NewBehaviorRegistry()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Simulation{
		index:     cfg.Index,
		behaviors: cfg.Behaviors,
		ops:       cfg.Ops,
		clock:     NewTickClock(cfg.TotalTicks),
		workers:   cfg.Workers,
		logger:    cfg.Logger,
	}, nil
}

func (s *Simulation) Clock() Clock { return s.clock }

func (s *Simulation) Index() *Index { return s.index }

func (s *Simulation) Run(ctx context.Context) error {
	behaviors := s.behaviors.Behaviors()

	for s.clock.CurrentTick() < s.clock.TotalTicks() {
		if err := ctx.Err(); err != nil {
			return err
		}
		tick := s.clock.Advance()

		for _, op := range s.ops {
			if err := op.Run(ctx, tick); err != nil {
				return fmt.Errorf("op %s at tick %d: %w", op.Name(), tick, err)
			}
		}

		if len(behaviors) == 0 {
			continue
		}

		agents := s.index.Snapshot()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)
		for _, agent := range agents {
			agent := agent
			g.Go(func() error {
				for _, b := range behaviors {
					if err := b.RunAgent(gctx, tick, agent); err != nil {
						return fmt.Errorf("behavior %s at tick %d: %w", b.Name(), tick, err)
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		s.logger.Debug("tick complete",
			zap.Int64("tick", tick),
			zap.Int("agents", len(agents)))
	}
	return nil
}
