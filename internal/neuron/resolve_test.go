package neuron

import (
	"errors"
	"testing"

	"synaptogen/internal/model"
)

func TestResolveOwnerWalksChain(t *testing.T) {
	soma := NewSoma(1, 0, model.Vec3{})
	chain := make([]*Neurite, 0, 5)
	var parent Node = soma
	for i := 0; i < 5; i++ {
		n := NewNeurite(parent, model.Vec3{float64(i), 0, 0})
		chain = append(chain, n)
		parent = n
	}

	for i, n := range chain {
		owner, err := ResolveOwner(n)
		if err != nil {
			t.Fatalf("resolve depth %d: %v", i, err)
		}
		if owner.ID() != soma.ID() {
			t.Fatalf("resolve depth %d: got owner %d, want %d", i, owner.ID(), soma.ID())
		}
	}
}

func TestResolveOwnerOnSomaReturnsItself(t *testing.T) {
	soma := NewSoma(7, 0, model.Vec3{})
	owner, err := ResolveOwner(soma)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if owner != soma {
		t.Fatalf("got %v, want the soma itself", owner)
	}
}

func TestResolveOwnerNoRoot(t *testing.T) {
	orphan := NewNeurite(nil, model.Vec3{})
	child := NewNeurite(orphan, model.Vec3{})

	if _, err := ResolveOwner(child); !errors.Is(err, ErrNoOwner) {
		t.Fatalf("got %v, want ErrNoOwner", err)
	}
	if _, err := ResolveOwner(nil); !errors.Is(err, ErrNoOwner) {
		t.Fatalf("nil node: got %v, want ErrNoOwner", err)
	}
}

func TestResolveOwnerBoundsCyclicChain(t *testing.T) {
	a := NewNeurite(nil, model.Vec3{})
	b := NewNeurite(a, model.Vec3{})
	a.parent = b

	if _, err := ResolveOwner(a); !errors.Is(err, ErrTreeCycle) {
		t.Fatalf("got %v, want ErrTreeCycle", err)
	}
}

func TestSomaSynapseListAppendOnly(t *testing.T) {
	soma := NewSoma(1, 2, model.Vec3{})
	soma.AddSynapse(&model.Synapse{Source: 1, Target: 2, Strength: 1})
	soma.AddSynapse(&model.Synapse{Source: 1, Target: 3, Strength: 1})

	snapshot := soma.Synapses()
	if len(snapshot) != 2 {
		t.Fatalf("got %d synapses, want 2", len(snapshot))
	}
	if snapshot[0].Target != 2 || snapshot[1].Target != 3 {
		t.Fatalf("unexpected order: %+v", snapshot)
	}

	// Snapshot is detached from later appends.
	soma.AddSynapse(&model.Synapse{Source: 1, Target: 4, Strength: 1})
	if len(snapshot) != 2 {
		t.Fatalf("snapshot grew to %d", len(snapshot))
	}
}
