package engine

import (
	"sync"

	"synaptogen/internal/model"
	"synaptogen/internal/neuron"
)

// Index is the reference agent store and Neighborhood. Enumeration is a
// linear scan; fine at reference-engine scale, and it keeps the neighbor
// contract honest (unordered, query agent included).
type Index struct {
	mu     sync.RWMutex
	agents []Agent
}

func NewIndex() *Index {
	return &Index{}
}

func (i *Index) Add(agents ...Agent) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.agents = append(i.agents, agents...)
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.agents)
}

// Snapshot returns a stable copy for per-tick dispatch.
func (i *Index) Snapshot() []Agent {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]Agent(nil), i.agents...)
}

func (i *Index) ForEachAgent(fn func(Agent)) {
	for _, agent := range i.Snapshot() {
		if agent != nil {
			fn(agent)
		}
	}
}

// ForEachNeighbor implements Neighborhood over the whole store.
func (i *Index) ForEachNeighbor(pos model.Vec3, radiusSq float64, fn func(Agent, float64)) {
	for _, agent := range i.Snapshot() {
		if agent == nil {
			continue
		}
		sq := model.SquaredDistance(pos, agent.Position())
		if sq <= radiusSq {
			fn(agent, sq)
		}
	}
}

// LiveSomas returns the somas not in the dead state, for export and summary.
func (i *Index) LiveSomas() []*neuron.Soma {
	var somas []*neuron.Soma
	i.ForEachAgent(func(a Agent) {
		if soma, ok := a.(*neuron.Soma); ok && soma.Alive() {
			somas = append(somas, soma)
		}
	})
	return somas
}
