// Package sim provides the discrete-event core of the MANET routing
// comparison harness.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - engine.go: the virtual clock and the scheduled, cancellable,
//     time-ordered event queue everything else runs on
//   - generator.go: the per-flow send/reschedule state machine
//   - experiment.go: orchestration, shared aggregates and teardown
//
// # Architecture
//
// The sim package defines interfaces and the core components;
// implementations of the outer boundaries live in sub-packages:
//   - sim/netmodel/: in-memory ad-hoc network model behind the
//     transport boundary, including per-protocol control traffic
//   - sim/results/: result-log records and CSV writing
//
// Everything executes cooperatively on one goroutine driven by the
// Engine, so the shared Aggregates never need locking: an action runs
// to completion, returns to the dispatch loop, and is reactivated at a
// later virtual time by rescheduling itself.
package sim
