// sim/stats.go
//
// Aggregate counters for a run. One Aggregates instance is owned by the
// Experiment and shared by reference with the sinks, generators and the
// control-packet observer; cooperative single-threading makes the bare
// fields safe.
package sim

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Aggregates holds the run-wide statistics. All counters except
// BytesSinceSample are monotonic for the lifetime of the run;
// BytesSinceSample is reset by the periodic sampler after each
// throughput reading.
type Aggregates struct {
	BytesSinceSample int
	PacketsSent      int
	PacketsReceived  int
	PacketsDropped   int

	TotalDelay   float64
	DelaySamples int
	MinDelay     float64
	MaxDelay     float64

	RoutingPackets int

	// raw per-packet delays, kept for the end-of-run distribution summary
	delays []float64
}

// NewAggregates creates a zeroed Aggregates with the delay bounds at
// their identities (min at +Inf, max at 0).
func NewAggregates() *Aggregates {
	return &Aggregates{
		MinDelay: math.Inf(1),
		MaxDelay: 0,
	}
}

// ObserveDelay folds one delay sample into the running aggregates and
// tightens the min/max bounds.
func (a *Aggregates) ObserveDelay(d float64) {
	a.TotalDelay += d
	a.DelaySamples++
	if d < a.MinDelay {
		a.MinDelay = d
	}
	if d > a.MaxDelay {
		a.MaxDelay = d
	}
	a.delays = append(a.delays, d)
}

// PDR returns the packet delivery ratio, 0 when nothing has been sent.
func (a *Aggregates) PDR() float64 {
	if a.PacketsSent == 0 {
		return 0
	}
	return float64(a.PacketsReceived) / float64(a.PacketsSent)
}

// AvgDelay returns the mean observed delay, 0 when no samples exist.
func (a *Aggregates) AvgDelay() float64 {
	if a.DelaySamples == 0 {
		return 0
	}
	return a.TotalDelay / float64(a.DelaySamples)
}

// TakeThroughputKbps converts the bytes received since the last sample
// into kbps over one sampling quantum and resets that counter.
func (a *Aggregates) TakeThroughputKbps() float64 {
	kbps := float64(a.BytesSinceSample) * 8.0 / 1000.0
	a.BytesSinceSample = 0
	return kbps
}

// PrintSummary displays the end-of-run totals on the console.
func (a *Aggregates) PrintSummary(protocol string) {
	fmt.Println("========================================")
	fmt.Printf("FINAL STATISTICS - %s\n", protocol)
	fmt.Println("========================================")
	fmt.Printf("Total packets sent     : %d\n", a.PacketsSent)
	fmt.Printf("Total packets received : %d\n", a.PacketsReceived)
	fmt.Printf("Packets dropped        : %d\n", a.PacketsDropped)
	fmt.Printf("Overall PDR            : %.4f%%\n", a.PDR()*100.0)
	if a.DelaySamples > 0 {
		sorted := append([]float64(nil), a.delays...)
		sort.Float64s(sorted)
		fmt.Printf("Average delay          : %.4f s\n", a.AvgDelay())
		fmt.Printf("Min delay              : %.4f s\n", a.MinDelay)
		fmt.Printf("Max delay              : %.4f s\n", a.MaxDelay)
		fmt.Printf("Delay stddev           : %.4f s\n", stat.StdDev(sorted, nil))
		fmt.Printf("Delay median           : %.4f s\n", stat.Quantile(0.5, stat.Empirical, sorted, nil))
	}
	fmt.Printf("Total routing packets  : %d\n", a.RoutingPackets)
	fmt.Println("========================================")
}
