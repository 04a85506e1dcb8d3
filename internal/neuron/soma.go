// Package neuron models the agents of the connectivity core: somas (root
// agents owning a growth tree and an outgoing synapse list) and neurites
// (tree elements growing outward from a soma).
package neuron

import (
	"sync"

	"synaptogen/internal/model"
)

// Node is one vertex in a neuron's growth tree. The two kinds are *Soma
// (tree root, Parent returns nil) and *Neurite. The closed set of kinds is
// what ResolveOwner switches over.
type Node interface {
	Parent() Node
}

// Soma is a neuron's root agent. Its synapse list is append-only during a
// run; all mutation goes through a synapse.Registry, which serializes the
// duplicate check and the append.
type Soma struct {
	id       model.NeuronID
	cellType model.CellType
	position model.Vec3

	mu       sync.RWMutex
	state    model.State
	synapses []*model.Synapse
}

func NewSoma(id model.NeuronID, cellType model.CellType, position model.Vec3) *Soma {
	return &Soma{id: id, cellType: cellType, position: position, state: model.StateAlive}
}

func (s *Soma) ID() model.NeuronID       { return s.id }
func (s *Soma) CellType() model.CellType { return s.cellType }
func (s *Soma) Position() model.Vec3     { return s.position }

// Parent returns nil: a soma is the root of its tree.
func (s *Soma) Parent() Node { return nil }

func (s *Soma) State() model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Soma) SetState(state model.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Alive reports whether the soma counts as live for export.
func (s *Soma) Alive() bool {
	return s.State() != model.StateDead
}

// AddSynapse appends to the outgoing list. Callers must serialize through a
// synapse.Registry; the soma itself does not check for duplicates.
func (s *Soma) AddSynapse(syn *model.Synapse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synapses = append(s.synapses, syn)
}

// Synapses returns a snapshot of the outgoing list.
func (s *Soma) Synapses() []*model.Synapse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.Synapse(nil), s.synapses...)
}
