// sim/generator.go
package sim

import (
	"github.com/sirupsen/logrus"
)

// Flow is one unidirectional sender→receiver traffic relationship with
// its own budget and cadence.
type Flow struct {
	ID         int
	Source     Address
	Dest       Address
	Remaining  int         // packet budget left
	Interval   VirtualTime // inter-packet interval
	PacketSize int
}

// TrafficGenerator drives one flow: while budget remains and the
// horizon-minus-guard cutoff has not been reached, it emits a
// timestamped packet and reschedules itself after the flow interval.
type TrafficGenerator struct {
	engine  *Engine
	agg     *Aggregates
	sock    Socket
	flow    Flow
	horizon VirtualTime

	pending *EventHandle
}

// NewTrafficGenerator wires a generator to its socket and the shared
// aggregates. horizon is the simulation end time; sends stop
// GuardInterval before it.
func NewTrafficGenerator(engine *Engine, agg *Aggregates, sock Socket, flow Flow, horizon VirtualTime) *TrafficGenerator {
	return &TrafficGenerator{
		engine:  engine,
		agg:     agg,
		sock:    sock,
		flow:    flow,
		horizon: horizon,
	}
}

// StartAfter schedules the first send delay seconds from now.
func (g *TrafficGenerator) StartAfter(delay VirtualTime) {
	g.pending = g.engine.Schedule(delay, g.sendNext)
}

// Stop cancels the pending send, if any. Safe to call at any point.
func (g *TrafficGenerator) Stop() {
	g.pending.Cancel()
	g.pending = nil
}

// Done reports whether the flow has terminated (budget exhausted or
// cutoff reached) or was stopped.
func (g *TrafficGenerator) Done() bool {
	return g.pending == nil
}

// Remaining returns the unconsumed packet budget.
func (g *TrafficGenerator) Remaining() int {
	return g.flow.Remaining
}

// sendNext is one activation of the flow state machine. A failed send
// counts as a drop but still consumes budget and still reschedules, so
// the offered load stays fixed regardless of delivery success.
func (g *TrafficGenerator) sendNext() {
	now := g.engine.Now()
	if g.flow.Remaining <= 0 || now >= g.horizon-GuardInterval {
		g.pending = nil
		return
	}

	p := NewPacket(g.flow.PacketSize)
	p.Stamp(now)

	if n, err := g.sock.Send(p); err != nil || n <= 0 {
		g.agg.PacketsDropped++
		logrus.Debugf("flow %d: send failed at t=%.4f: %v", g.flow.ID, float64(now), err)
	} else {
		g.agg.PacketsSent++
	}

	g.flow.Remaining--
	g.pending = g.engine.Schedule(g.flow.Interval, g.sendNext)
}
