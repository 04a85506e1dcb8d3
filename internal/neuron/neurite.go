package neuron

import "synaptogen/internal/model"

// Neurite is a growing tree element. It belongs to exactly one soma
// transitively through its parent chain. The resolved flag records whether
// the tip has already made its one-time connection decision; only the
// goroutine dispatching the tip's behaviors touches it, so it needs no lock.
type Neurite struct {
	parent   Node
	position model.Vec3
	resolved bool
}

func NewNeurite(parent Node, position model.Vec3) *Neurite {
	return &Neurite{parent: parent, position: position}
}

func (n *Neurite) Parent() Node { return n.parent }

func (n *Neurite) Position() model.Vec3 { return n.position }

func (n *Neurite) SetPosition(position model.Vec3) { n.position = position }

func (n *Neurite) Resolved() bool { return n.resolved }

// MarkResolved is terminal: a tip is never reconsidered once marked.
func (n *Neurite) MarkResolved() { n.resolved = true }
