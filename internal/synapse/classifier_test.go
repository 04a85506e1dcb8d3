package synapse

import (
	"math"
	"testing"

	"go.uber.org/goleak"

	"synaptogen/internal/engine"
	"synaptogen/internal/model"
	"synaptogen/internal/neuron"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type scriptedNeighbor struct {
	agent engine.Agent
	sq    float64
}

// scriptedNeighborhood replays a fixed candidate order, standing in for the
// engine's spatial index.
type scriptedNeighborhood struct {
	entries []scriptedNeighbor
}

func (s scriptedNeighborhood) ForEachNeighbor(_ model.Vec3, radiusSq float64, fn func(engine.Agent, float64)) {
	for _, e := range s.entries {
		if e.sq <= radiusSq {
			fn(e.agent, e.sq)
		}
	}
}

// tipAt builds a soma with a single neurite tip at the given position.
func tipAt(id model.NeuronID, pos model.Vec3) (*neuron.Soma, *neuron.Neurite) {
	soma := neuron.NewSoma(id, 0, pos)
	return soma, neuron.NewNeurite(soma, pos)
}

func newTestClassifier(t *testing.T, n engine.Neighborhood) *Classifier {
	t.Helper()
	c, err := NewClassifier(n, 0, 0, nil)
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}
	return c
}

func TestFindNearestPicksClosestUnderCutoff(t *testing.T) {
	_, tip := tipAt(1, model.Vec3{})

	distances := []float64{0.3, 0.9, 1.2, 0.5}
	entries := make([]scriptedNeighbor, 0, len(distances))
	for i, d := range distances {
		_, candidate := tipAt(model.NeuronID(i+2), model.Vec3{d, 0, 0})
		entries = append(entries, scriptedNeighbor{agent: candidate, sq: d * d})
	}

	c := newTestClassifier(t, scriptedNeighborhood{entries: entries})
	match, found := c.FindNearest(tip)
	if !found {
		t.Fatal("expected a match")
	}
	if match.Target.ID() != 2 {
		t.Fatalf("got target %d, want 2 (the 0.3 candidate)", match.Target.ID())
	}
	if math.Abs(match.Distance-0.3) > 1e-9 {
		t.Fatalf("got distance %v, want 0.3", match.Distance)
	}
	if match.Source.ID() != 1 {
		t.Fatalf("got source %d, want 1", match.Source.ID())
	}
}

func TestFindNearestNoneWhenAllBeyondCutoff(t *testing.T) {
	_, tip := tipAt(1, model.Vec3{})

	var entries []scriptedNeighbor
	for i, d := range []float64{1.0, 2.5, 4.0} {
		_, candidate := tipAt(model.NeuronID(i+2), model.Vec3{d, 0, 0})
		entries = append(entries, scriptedNeighbor{agent: candidate, sq: d * d})
	}

	c := newTestClassifier(t, scriptedNeighborhood{entries: entries})
	if _, found := c.FindNearest(tip); found {
		t.Fatal("cutoff is strict: 1.0 must not qualify")
	}
}

func TestFindNearestExcludesSameOwner(t *testing.T) {
	soma, tip := tipAt(1, model.Vec3{})

	sibling := neuron.NewNeurite(soma, model.Vec3{0.1, 0, 0})
	_, other := tipAt(2, model.Vec3{0.8, 0, 0})

	c := newTestClassifier(t, scriptedNeighborhood{entries: []scriptedNeighbor{
		{agent: sibling, sq: 0.01},
		{agent: other, sq: 0.64},
	}})

	match, found := c.FindNearest(tip)
	if !found {
		t.Fatal("expected the cross-owner candidate to match")
	}
	if match.Target.ID() != 2 {
		t.Fatalf("got target %d, want 2: same-owner tips must never match", match.Target.ID())
	}
}

func TestFindNearestSkipsNonNeuritesAndOrphans(t *testing.T) {
	_, tip := tipAt(1, model.Vec3{})

	stranger := neuron.NewSoma(9, 0, model.Vec3{0.2, 0, 0})
	orphan := neuron.NewNeurite(nil, model.Vec3{0.3, 0, 0})
	_, valid := tipAt(2, model.Vec3{0.7, 0, 0})

	c := newTestClassifier(t, scriptedNeighborhood{entries: []scriptedNeighbor{
		{agent: stranger, sq: 0.04},
		{agent: orphan, sq: 0.09},
		{agent: nil, sq: 0.01},
		{agent: valid, sq: 0.49},
	}})

	match, found := c.FindNearest(tip)
	if !found {
		t.Fatal("expected the valid candidate to match")
	}
	if match.Target.ID() != 2 {
		t.Fatalf("got target %d, want 2", match.Target.ID())
	}
}

func TestFindNearestTieFirstInEnumerationOrder(t *testing.T) {
	_, tip := tipAt(1, model.Vec3{})

	_, first := tipAt(2, model.Vec3{0.5, 0, 0})
	_, second := tipAt(3, model.Vec3{0, 0.5, 0})

	c := newTestClassifier(t, scriptedNeighborhood{entries: []scriptedNeighbor{
		{agent: first, sq: 0.25},
		{agent: second, sq: 0.25},
	}})

	match, found := c.FindNearest(tip)
	if !found {
		t.Fatal("expected a match")
	}
	if match.Target.ID() != 2 {
		t.Fatalf("got target %d, want 2 (first encountered wins ties)", match.Target.ID())
	}
}

func TestFindNearestAccumulatesDirectionOverAllCrossOwnerCandidates(t *testing.T) {
	_, tip := tipAt(1, model.Vec3{})

	// One inside the cutoff, one outside: both contribute direction.
	_, near := tipAt(2, model.Vec3{0.5, 0, 0})
	_, far := tipAt(3, model.Vec3{0, 3, 0})

	c := newTestClassifier(t, scriptedNeighborhood{entries: []scriptedNeighbor{
		{agent: near, sq: 0.25},
		{agent: far, sq: 9},
	}})

	match, found := c.FindNearest(tip)
	if !found {
		t.Fatal("expected a match")
	}
	want := model.Vec3{0.5, 3, 0}
	if match.Direction != want {
		t.Fatalf("got direction %v, want %v", match.Direction, want)
	}
}

func TestFindNearestTipWithoutOwner(t *testing.T) {
	orphanTip := neuron.NewNeurite(nil, model.Vec3{})
	_, candidate := tipAt(2, model.Vec3{0.1, 0, 0})

	c := newTestClassifier(t, scriptedNeighborhood{entries: []scriptedNeighbor{
		{agent: candidate, sq: 0.01},
	}})

	if _, found := c.FindNearest(orphanTip); found {
		t.Fatal("a tip with no owner cannot match")
	}
}
