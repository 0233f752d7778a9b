package sim

import (
	"math"
	"testing"
)

func TestAggregates_PDRZeroWhenNothingSent(t *testing.T) {
	a := NewAggregates()
	if pdr := a.PDR(); pdr != 0 {
		t.Errorf("PDR with no sends: got %v, want 0", pdr)
	}
}

func TestAggregates_PDRInUnitInterval(t *testing.T) {
	a := NewAggregates()
	a.PacketsSent = 10
	a.PacketsReceived = 7
	if pdr := a.PDR(); pdr < 0 || pdr > 1 {
		t.Errorf("PDR out of [0,1]: %v", pdr)
	}
	if pdr := a.PDR(); pdr != 0.7 {
		t.Errorf("PDR: got %v, want 0.7", pdr)
	}
}

func TestAggregates_AvgDelayZeroWithoutSamples(t *testing.T) {
	a := NewAggregates()
	if avg := a.AvgDelay(); avg != 0 {
		t.Errorf("AvgDelay with no samples: got %v, want 0", avg)
	}
}

func TestAggregates_ObserveDelayTightensBounds(t *testing.T) {
	// GIVEN a fresh aggregate context
	a := NewAggregates()
	if !math.IsInf(a.MinDelay, 1) {
		t.Fatalf("initial MinDelay: got %v, want +Inf", a.MinDelay)
	}

	// WHEN delays are observed in arbitrary order
	samples := []float64{0.5, 0.2, 0.9, 0.3}
	prevMin, prevMax := a.MinDelay, a.MaxDelay
	for _, d := range samples {
		a.ObserveDelay(d)
		// THEN min is non-increasing and max non-decreasing
		if a.MinDelay > prevMin {
			t.Errorf("MinDelay increased: %v -> %v", prevMin, a.MinDelay)
		}
		if a.MaxDelay < prevMax {
			t.Errorf("MaxDelay decreased: %v -> %v", prevMax, a.MaxDelay)
		}
		if a.MinDelay > d || a.MaxDelay < d {
			t.Errorf("bounds [%v,%v] exclude sample %v", a.MinDelay, a.MaxDelay, d)
		}
		prevMin, prevMax = a.MinDelay, a.MaxDelay
	}

	if a.MinDelay != 0.2 || a.MaxDelay != 0.9 {
		t.Errorf("bounds: got [%v,%v], want [0.2,0.9]", a.MinDelay, a.MaxDelay)
	}
	if a.DelaySamples != 4 {
		t.Errorf("DelaySamples: got %d, want 4", a.DelaySamples)
	}
	wantTotal := 0.5 + 0.2 + 0.9 + 0.3
	if math.Abs(a.TotalDelay-wantTotal) > 1e-12 {
		t.Errorf("TotalDelay: got %v, want %v", a.TotalDelay, wantTotal)
	}
}

func TestAggregates_TakeThroughputResetsBytes(t *testing.T) {
	// GIVEN 1000 bytes received since the last sample
	a := NewAggregates()
	a.BytesSinceSample = 1000

	// WHEN the sampler takes a throughput reading
	kbps := a.TakeThroughputKbps()

	// THEN the reading is bytes*8/1000 and the counter is reset
	if kbps != 8.0 {
		t.Errorf("throughput: got %v kbps, want 8", kbps)
	}
	if a.BytesSinceSample != 0 {
		t.Errorf("BytesSinceSample after take: got %d, want 0", a.BytesSinceSample)
	}
	if again := a.TakeThroughputKbps(); again != 0 {
		t.Errorf("second take: got %v, want 0", again)
	}
}
