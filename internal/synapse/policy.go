package synapse

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"synaptogen/internal/engine"
	"synaptogen/internal/neuron"
)

const (
	// DefaultFormationWindow is the trailing tick window in which tips
	// attempt to connect: the last 3 ticks of a run.
	DefaultFormationWindow = 3
	// DefaultInitialStrength is the strength of a freshly formed synapse.
	DefaultInitialStrength = 1
)

type PolicyConfig struct {
	Classifier      *Classifier
	Registry        *Registry
	Clock           engine.Clock
	Window          int64
	InitialStrength int
	Logger          *zap.Logger
}

// FormationPolicy is the per-tip decision behavior. A tip gets exactly one
// attempt, taken during the trailing window; the attempt settles the tip
// whether or not a synapse came out of it. Because the window is a pure
// function of the tick counter, the policy carries no timing state.
//
// The recorded distance is the classifier's computed separation, not the
// literal zero the original call site passed.
type FormationPolicy struct {
	classifier *Classifier
	registry   *Registry
	clock      engine.Clock
	window     int64
	strength   int
	logger     *zap.Logger
}

func NewFormationPolicy(cfg PolicyConfig) (*FormationPolicy, error) {
	if cfg.Classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock is required")
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultFormationWindow
	}
	if cfg.InitialStrength <= 0 {
		cfg.InitialStrength = DefaultInitialStrength
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &FormationPolicy{
		classifier: cfg.Classifier,
		registry:   cfg.Registry,
		clock:      cfg.Clock,
		window:     cfg.Window,
		strength:   cfg.InitialStrength,
		logger:     cfg.Logger,
	}, nil
}

func (p *FormationPolicy) Name() string { return "synapse-formation" }

// RunAgent runs the one-shot decision for a growing tip. Non-neurite agents
// and already-settled tips are ignored.
func (p *FormationPolicy) RunAgent(_ context.Context, tick int64, agent engine.Agent) error {
	tip, ok := agent.(*neuron.Neurite)
	if !ok || tip.Resolved() {
		return nil
	}
	if tick <= p.clock.TotalTicks()-p.window {
		return nil
	}

	// One attempt total, regardless of outcome.
	tip.MarkResolved()

	match, found := p.classifier.FindNearest(tip)
	if !found {
		return nil
	}

	created := p.registry.TryConnect(match.Source, match.Target, match.Distance, p.strength, tick)
	p.logger.Debug("formation attempt",
		zap.Uint64("source", uint64(match.Source.ID())),
		zap.Uint64("target", uint64(match.Target.ID())),
		zap.Float64("distance", match.Distance),
		zap.Int64("tick", tick),
		zap.Bool("created", created))
	return nil
}
