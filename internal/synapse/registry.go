package synapse

import (
	"sync"

	"synaptogen/internal/model"
	"synaptogen/internal/neuron"
)

// Registry serializes every mutation of the somas' connection lists. The
// formation behavior runs concurrently across tips, so the duplicate check
// and the append in TryConnect must happen under one lock; otherwise two
// tips racing on the same pair of somas could both pass the check.
type Registry struct {
	mu      sync.Mutex
	created int
}

func NewRegistry() *Registry {
	return &Registry{}
}

// TryConnect records a synapse from source to target unless one already
// links the two somas in either direction. It reports whether a synapse was
// created. A fixed pair produces at most one synapse per run no matter how
// many tips attempt it.
func (r *Registry) TryConnect(source, target *neuron.Soma, distance float64, strength int, tick int64) bool {
	if source == nil || target == nil || source.ID() == target.ID() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if hasSynapse(source, target) {
		return false
	}
	source.AddSynapse(&model.Synapse{
		Source:   source.ID(),
		Target:   target.ID(),
		Distance: distance,
		Strength: strength,
		Tick:     tick,
	})
	r.created++
	return true
}

// Reinforce bumps a synapse's strength. Strength is monotone; non-positive
// amounts are ignored.
func (r *Registry) Reinforce(syn *model.Synapse, amount int) {
	if syn == nil || amount <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	syn.Strength += amount
}

// Count returns how many synapses this registry has created.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

// hasSynapse checks both somas' outgoing lists for a link between the pair,
// in either direction. Caller holds the registry lock.
func hasSynapse(a, b *neuron.Soma) bool {
	for _, syn := range a.Synapses() {
		if syn.Target == b.ID() {
			return true
		}
	}
	for _, syn := range b.Synapses() {
		if syn.Target == a.ID() {
			return true
		}
	}
	return false
}
