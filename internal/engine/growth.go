package engine

import (
	"context"
	"errors"
	"math/rand"

	"synaptogen/internal/model"
	"synaptogen/internal/neuron"
)

// GrowthConfig shapes the reference growth stub. The real biophysical model
// (branching, retraction, mechanics) lives in the surrounding engine; this
// stub only has to produce plausible trees for the formation core to act on.
type GrowthConfig struct {
	Neurons           int
	NeuritesPerNeuron int
	MaxTreeDepth      int
	Bounds            float64
	Elongation        float64
	CellTypes         int
	Seed              int64
}

func (c *GrowthConfig) applyDefaults() {
	if c.Neurons <= 0 {
		c.Neurons = 10
	}
	if c.NeuritesPerNeuron <= 0 {
		c.NeuritesPerNeuron = 2
	}
	if c.MaxTreeDepth <= 0 {
		c.MaxTreeDepth = 8
	}
	if c.Bounds <= 0 {
		c.Bounds = 20
	}
	if c.Elongation <= 0 {
		c.Elongation = 0.5
	}
	if c.CellTypes <= 0 {
		c.CellTypes = 3
	}
}

type growthTip struct {
	tip   *neuron.Neurite
	depth int
}

// Growth seeds somas and extends each tree's tips one segment per tick,
// deterministically under a fixed seed. It runs as a sequential Op, so the
// rand source needs no locking.
type Growth struct {
	cfg      GrowthConfig
	rng      *rand.Rand
	index    *Index
	somas    []*neuron.Soma
	tips     []growthTip
	neurites int
}

func NewGrowth(cfg GrowthConfig, index *Index) (*Growth, error) {
	if index == nil {
		return nil, errors.New("index is required")
	}
	cfg.applyDefaults()
	return &Growth{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		index: index,
	}, nil
}

// Seed places the somas and their initial tips into the index.
func (g *Growth) Seed() {
	for i := 0; i < g.cfg.Neurons; i++ {
		pos := model.Vec3{
			g.rng.Float64() * g.cfg.Bounds,
			g.rng.Float64() * g.cfg.Bounds,
			g.rng.Float64() * g.cfg.Bounds,
		}
		soma := neuron.NewSoma(model.NeuronID(i+1), model.CellType(g.rng.Intn(g.cfg.CellTypes)), pos)
		g.somas = append(g.somas, soma)
		g.index.Add(soma)

		for j := 0; j < g.cfg.NeuritesPerNeuron; j++ {
			tip := neuron.NewNeurite(soma, pos.Add(g.randStep()))
			g.tips = append(g.tips, growthTip{tip: tip, depth: 1})
			g.index.Add(tip)
			g.neurites++
		}
	}
}

func (g *Growth) Name() string { return "growth" }

// Run extends every tip still below the depth limit by one segment. The new
// segment becomes the tree's growing tip.
func (g *Growth) Run(_ context.Context, _ int64) error {
	for i, t := range g.tips {
		if t.depth >= g.cfg.MaxTreeDepth {
			continue
		}
		child := neuron.NewNeurite(t.tip, t.tip.Position().Add(g.randStep()))
		g.index.Add(child)
		g.neurites++
		g.tips[i] = growthTip{tip: child, depth: t.depth + 1}
	}
	return nil
}

func (g *Growth) Somas() []*neuron.Soma {
	return append([]*neuron.Soma(nil), g.somas...)
}

func (g *Growth) NeuriteCount() int { return g.neurites }

// randStep draws a uniformly oriented segment of elongation length.
func (g *Growth) randStep() model.Vec3 {
	for {
		v := model.Vec3{g.rng.NormFloat64(), g.rng.NormFloat64(), g.rng.NormFloat64()}
		if n := v.Norm(); n > 1e-9 {
			return v.Scale(g.cfg.Elongation / n)
		}
	}
}
