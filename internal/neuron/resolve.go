package neuron

import "errors"

// maxOwnerDepth bounds the parent walk. The growth model guarantees acyclic
// trees far shallower than this; the bound turns a malformed tree into an
// error instead of a hang.
const maxOwnerDepth = 1 << 16

var (
	ErrNoOwner   = errors.New("no owning soma in parent chain")
	ErrTreeCycle = errors.New("parent chain exceeds maximum depth")
)

// ResolveOwner walks parent links upward from node until it reaches the
// owning soma. It has no side effects.
func ResolveOwner(node Node) (*Soma, error) {
	for depth := 0; node != nil; depth++ {
		if depth > maxOwnerDepth {
			return nil, ErrTreeCycle
		}
		if soma, ok := node.(*Soma); ok {
			return soma, nil
		}
		node = node.Parent()
	}
	return nil, ErrNoOwner
}
