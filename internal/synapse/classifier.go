// Package synapse implements the connection-formation core: the nearest
// cross-owner neighbor search, the duplicate-safe synapse registry, and the
// one-shot formation policy driven by the engine tick loop.
package synapse

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"synaptogen/internal/engine"
	"synaptogen/internal/model"
	"synaptogen/internal/neuron"
)

const (
	// DefaultSearchRadius is the linear pre-filter radius handed to the
	// neighbor enumeration (squared internally).
	DefaultSearchRadius = 5.0
	// DefaultFormationCutoff is the strict distance below which a synapse
	// may actually form. The broad radius is only an efficiency pre-filter.
	DefaultFormationCutoff = 1.0
)

// Match is a classifier hit: the closest qualifying tip, both owners, the
// separation at which they met, and the direction vector accumulated over
// every cross-owner candidate seen during the search.
type Match struct {
	Neurite   *neuron.Neurite
	Source    *neuron.Soma
	Target    *neuron.Soma
	Distance  float64
	Direction model.Vec3
}

type Classifier struct {
	neighborhood engine.Neighborhood
	radiusSq     float64
	cutoff       float64
	logger       *zap.Logger
}

func NewClassifier(neighborhood engine.Neighborhood, radius, cutoff float64, logger *zap.Logger) (*Classifier, error) {
	if neighborhood == nil {
		return nil, errors.New("neighborhood is required")
	}
	if radius <= 0 {
		radius = DefaultSearchRadius
	}
	if cutoff <= 0 {
		cutoff = DefaultFormationCutoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		neighborhood: neighborhood,
		radiusSq:     radius * radius,
		cutoff:       cutoff,
		logger:       logger,
	}, nil
}

// FindNearest scans the neighborhood of tip for the closest neurite owned by
// a different soma, strictly closer than the formation cutoff. Candidates
// whose owner cannot be resolved are skipped. On exact distance ties the
// first candidate in enumeration order wins; enumeration order is
// engine-defined, so ties are not deterministic across engines.
func (c *Classifier) FindNearest(tip *neuron.Neurite) (Match, bool) {
	owner, err := neuron.ResolveOwner(tip)
	if err != nil {
		c.logger.Warn("tip owner resolution failed", zap.Error(err))
		return Match{}, false
	}

	var (
		best      *neuron.Neurite
		bestOwner *neuron.Soma
		bestDist  = math.MaxFloat64
		direction model.Vec3
	)

	c.neighborhood.ForEachNeighbor(tip.Position(), c.radiusSq, func(agent engine.Agent, squaredDistance float64) {
		candidate, ok := agent.(*neuron.Neurite)
		if !ok || candidate == nil {
			return
		}
		candidateOwner, err := neuron.ResolveOwner(candidate)
		if err != nil {
			c.logger.Debug("candidate owner resolution failed", zap.Error(err))
			return
		}
		if candidateOwner.ID() == owner.ID() {
			return
		}

		direction = direction.Add(candidate.Position().Sub(tip.Position()))

		distance := math.Sqrt(squaredDistance)
		if distance < bestDist && distance < c.cutoff {
			best = candidate
			bestOwner = candidateOwner
			bestDist = distance
		}
	})

	if best == nil {
		return Match{}, false
	}
	return Match{
		Neurite:   best,
		Source:    owner,
		Target:    bestOwner,
		Distance:  bestDist,
		Direction: direction,
	}, true
}
