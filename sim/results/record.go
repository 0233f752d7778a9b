// Package results provides the result-log record type and writers for
// the periodic statistics samples. It stores pure data types and has no
// dependencies on sim/.
package results

// Header is the column order of the result log.
var Header = []string{
	"Time",
	"ThroughputKbps",
	"PacketsReceived",
	"Sinks",
	"Protocol",
	"TxPower",
	"PDR",
	"AvgDelay",
	"RoutingOverhead",
}

// SampleRecord is one periodic sampler firing.
type SampleRecord struct {
	Time            float64
	ThroughputKbps  float64
	PacketsReceived int // cumulative since start of run
	Sinks           int
	Protocol        string
	TxPower         float64
	PDR             float64
	AvgDelay        float64
	RoutingOverhead int
}
