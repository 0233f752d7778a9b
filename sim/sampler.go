// sim/sampler.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/manet-sim/manet-sim/sim/results"
)

// SamplingQuantum is the fixed interval between statistics samples.
const SamplingQuantum VirtualTime = 1.0

// PeriodicSampler snapshots the aggregates every SamplingQuantum and
// appends one record to the result log. It reschedules itself until the
// next firing would land inside the guard interval; the chain then ends
// naturally, no cancellation needed.
type PeriodicSampler struct {
	engine  *Engine
	agg     *Aggregates
	writer  results.Writer
	horizon VirtualTime

	sinks    int
	protocol string
	txPower  float64
}

// NewPeriodicSampler creates a sampler. sinks, protocol and txPower are
// echoed into every record so downstream CSV consumers can tell runs
// apart without filename conventions.
func NewPeriodicSampler(engine *Engine, agg *Aggregates, writer results.Writer, horizon VirtualTime, sinks int, protocol string, txPower float64) *PeriodicSampler {
	return &PeriodicSampler{
		engine:   engine,
		agg:      agg,
		writer:   writer,
		horizon:  horizon,
		sinks:    sinks,
		protocol: protocol,
		txPower:  txPower,
	}
}

// Start schedules the first firing one quantum from now.
func (s *PeriodicSampler) Start() {
	s.engine.Schedule(SamplingQuantum, s.sample)
}

func (s *PeriodicSampler) sample() {
	now := s.engine.Now()

	rec := results.SampleRecord{
		Time:           float64(now),
		ThroughputKbps: s.agg.TakeThroughputKbps(),
		// cumulative since start; deliberately never reset per sample
		PacketsReceived: s.agg.PacketsReceived,
		Sinks:           s.sinks,
		Protocol:        s.protocol,
		TxPower:         s.txPower,
		PDR:             s.agg.PDR(),
		AvgDelay:        s.agg.AvgDelay(),
		RoutingOverhead: s.agg.RoutingPackets,
	}
	if err := s.writer.Append(rec); err != nil {
		logrus.Errorf("sampler: appending record at t=%.4f: %v", float64(now), err)
	}

	if next := now + SamplingQuantum; next < s.horizon-GuardInterval {
		s.engine.Schedule(SamplingQuantum, s.sample)
	}
}
