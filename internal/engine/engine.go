// Package engine holds the interfaces the connectivity core consumes from a
// surrounding simulation engine, plus a reference in-memory engine good
// enough to host runs and tests: a brute-force spatial index, a tick clock,
// and a parallel per-agent dispatch loop.
package engine

import (
	"context"
	"sync/atomic"

	"synaptogen/internal/model"
)

// Agent is anything the engine tracks in space.
type Agent interface {
	Position() model.Vec3
}

// Neighborhood enumerates agents near a query position. fn is invoked once
// per candidate together with its squared distance from pos. Ordering and
// inclusion of the query agent itself are implementation-defined; callers
// must not depend on either.
type Neighborhood interface {
	ForEachNeighbor(pos model.Vec3, radiusSq float64, fn func(agent Agent, squaredDistance float64))
}

// Clock exposes the engine step counter. Ticks are monotonic and advance
// once per engine step.
type Clock interface {
	CurrentTick() int64
	TotalTicks() int64
}

// Behavior runs once per live agent per tick. RunAgent may be invoked
// concurrently for different agents; implementations must guard any state
// shared across agents.
type Behavior interface {
	Name() string
	RunAgent(ctx context.Context, tick int64, agent Agent) error
}

// Op runs once per tick, before the per-agent behavior dispatch.
type Op interface {
	Name() string
	Run(ctx context.Context, tick int64) error
}

// TickClock is the reference Clock.
type TickClock struct {
	current atomic.Int64
	total   int64
}

func NewTickClock(total int64) *TickClock {
	return &TickClock{total: total}
}

func (c *TickClock) CurrentTick() int64 { return c.current.Load() }

func (c *TickClock) TotalTicks() int64 { return c.total }

// Advance moves the clock one step and returns the new tick.
func (c *TickClock) Advance() int64 { return c.current.Add(1) }
