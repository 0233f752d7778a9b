package sim

import (
	"testing"

	"github.com/manet-sim/manet-sim/sim/results"
)

func TestPeriodicSampler_RowCountAtHorizon(t *testing.T) {
	// GIVEN a sampler started with horizon=10 and guard=1
	e := NewEngine()
	agg := NewAggregates()
	mem := &results.MemoryWriter{}
	sampler := NewPeriodicSampler(e, agg, mem, 10, 5, "AODV", 25.0)
	sampler.Start()

	// WHEN the run completes
	e.RunUntil(10)

	// THEN exactly 8 rows exist, at times 1..8; the t=9 firing is never
	// scheduled because 9 < 10-1 is false
	if len(mem.Records) != 8 {
		t.Fatalf("got %d rows, want 8", len(mem.Records))
	}
	for i, rec := range mem.Records {
		if rec.Time != float64(i+1) {
			t.Errorf("row %d at t=%v, want %v", i, rec.Time, float64(i+1))
		}
	}
}

func TestPeriodicSampler_ThroughputResetsBetweenSamples(t *testing.T) {
	// GIVEN 125 bytes arriving before the first sample and nothing after
	e := NewEngine()
	agg := NewAggregates()
	mem := &results.MemoryWriter{}
	e.Schedule(0.5, func() { agg.BytesSinceSample += 125 })
	NewPeriodicSampler(e, agg, mem, 10, 5, "AODV", 25.0).Start()

	e.RunUntil(10)

	// THEN only the first row shows throughput; the byte counter was reset
	if mem.Records[0].ThroughputKbps != 1.0 {
		t.Errorf("row 0 throughput: got %v kbps, want 1", mem.Records[0].ThroughputKbps)
	}
	for i, rec := range mem.Records[1:] {
		if rec.ThroughputKbps != 0 {
			t.Errorf("row %d throughput: got %v, want 0", i+1, rec.ThroughputKbps)
		}
	}
}

func TestPeriodicSampler_PacketsReceivedIsCumulative(t *testing.T) {
	// GIVEN receptions at t=0.5 and t=4.5
	e := NewEngine()
	agg := NewAggregates()
	mem := &results.MemoryWriter{}
	e.Schedule(0.5, func() { agg.PacketsReceived += 5 })
	e.Schedule(4.5, func() { agg.PacketsReceived += 5 })
	NewPeriodicSampler(e, agg, mem, 10, 5, "AODV", 25.0).Start()

	e.RunUntil(10)

	// THEN the column reports cumulative-since-start, never reset
	wantAfter := []int{5, 5, 5, 5, 10, 10, 10, 10}
	for i, rec := range mem.Records {
		if rec.PacketsReceived != wantAfter[i] {
			t.Errorf("row %d PacketsReceived: got %d, want %d", i, rec.PacketsReceived, wantAfter[i])
		}
	}
}

func TestPeriodicSampler_SafeRatiosWithoutTraffic(t *testing.T) {
	// GIVEN no traffic at all
	e := NewEngine()
	agg := NewAggregates()
	mem := &results.MemoryWriter{}
	NewPeriodicSampler(e, agg, mem, 5, 5, "DSR", 25.0).Start()

	e.RunUntil(5)

	// THEN PDR and mean delay report exactly 0, with no division by zero
	for i, rec := range mem.Records {
		if rec.PDR != 0 {
			t.Errorf("row %d PDR: got %v, want 0", i, rec.PDR)
		}
		if rec.AvgDelay != 0 {
			t.Errorf("row %d AvgDelay: got %v, want 0", i, rec.AvgDelay)
		}
	}
}

func TestPeriodicSampler_RecordCarriesRunIdentity(t *testing.T) {
	e := NewEngine()
	agg := NewAggregates()
	agg.RoutingPackets = 17
	mem := &results.MemoryWriter{}
	NewPeriodicSampler(e, agg, mem, 3, 5, "OLSR", 20.0).Start()

	e.RunUntil(3)

	rec := mem.Records[0]
	if rec.Sinks != 5 || rec.Protocol != "OLSR" || rec.TxPower != 20.0 || rec.RoutingOverhead != 17 {
		t.Errorf("record identity fields wrong: %+v", rec)
	}
}
