// sim/engine.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// VirtualTime is simulated time in seconds. It is advanced only by the
// Engine and is independent of wall-clock time.
type VirtualTime float64

// EventHandle identifies a scheduled action. It stays valid after the
// action fires or the event is cancelled; Cancel on a consumed handle is
// a no-op.
type EventHandle struct {
	fireTime  VirtualTime
	seq       uint64
	action    func()
	cancelled bool
	fired     bool
}

// Cancel prevents the action from ever running. Idempotent, and safe to
// call on a handle whose action already fired.
func (h *EventHandle) Cancel() {
	if h == nil || h.fired {
		return
	}
	h.cancelled = true
}

// Pending reports whether the action is still waiting to fire.
func (h *EventHandle) Pending() bool {
	return h != nil && !h.fired && !h.cancelled
}

// eventQueue implements heap.Interface and orders events by fire time.
// Ties are broken by insertion sequence, so two events scheduled for the
// same instant fire in the order they were enqueued. This is what makes
// runs replayable for a fixed seed.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventQueue []*EventHandle

func (eq eventQueue) Len() int { return len(eq) }

func (eq eventQueue) Less(i, j int) bool {
	if eq[i].fireTime != eq[j].fireTime {
		return eq[i].fireTime < eq[j].fireTime
	}
	return eq[i].seq < eq[j].seq
}

func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(*EventHandle))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Engine is the virtual clock and event scheduler. The whole simulation
// runs on one goroutine: actions fire in (fireTime, insertion) order and
// may re-enter Schedule to set up their own continuation, which is how
// periodic behaviors are expressed without recursion.
type Engine struct {
	now   VirtualTime
	queue eventQueue
	seq   uint64
}

// NewEngine creates an Engine with the clock at zero and no events.
func NewEngine() *Engine {
	e := &Engine{queue: make(eventQueue, 0, 64)}
	heap.Init(&e.queue)
	return e
}

// Now returns the current virtual time.
func (e *Engine) Now() VirtualTime {
	return e.now
}

// Schedule enqueues action to fire delay seconds from now and returns a
// cancellable handle. A negative delay is a programming error and panics.
func (e *Engine) Schedule(delay VirtualTime, action func()) *EventHandle {
	if delay < 0 {
		panic(fmt.Sprintf("sim: Schedule called with negative delay %v at t=%v", delay, e.now))
	}
	if action == nil {
		panic("sim: Schedule called with nil action")
	}
	h := &EventHandle{
		fireTime: e.now + delay,
		seq:      e.seq,
		action:   action,
	}
	e.seq++
	heap.Push(&e.queue, h)
	return h
}

// Cancel cancels a scheduled event. Equivalent to h.Cancel.
func (e *Engine) Cancel(h *EventHandle) {
	h.Cancel()
}

// EventCount returns the number of events still in the queue, cancelled
// ones included until they are lazily discarded.
func (e *Engine) EventCount() int {
	return len(e.queue)
}

// RunUntil drains events in fire-time order until none remain with
// fireTime <= horizon. The clock is advanced to each popped event's fire
// time before its action runs. A panicking action propagates to the
// caller; the remaining queue stays intact because the event is popped
// before invocation.
func (e *Engine) RunUntil(horizon VirtualTime) {
	for len(e.queue) > 0 && e.queue[0].fireTime <= horizon {
		h := heap.Pop(&e.queue).(*EventHandle)
		if h.cancelled {
			continue
		}
		e.now = h.fireTime
		h.fired = true
		logrus.Tracef("[t=%.4f] firing event #%d", float64(e.now), h.seq)
		h.action()
	}
}

// Reset force-removes all pending events and sets the clock back to zero.
func (e *Engine) Reset() {
	e.queue = make(eventQueue, 0, 64)
	heap.Init(&e.queue)
	e.now = 0
}
