// sim/config.go
package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// GuardInterval is the safety margin before the simulation horizon
// during which no new sends or samples are initiated.
const GuardInterval VirtualTime = 1.0

// ControlFrameSizeThreshold separates routing control frames from data
// frames at the transmit hook: anything under it counts as overhead.
const ControlFrameSizeThreshold = 200

// Protocol is the closed set of routing protocols under comparison.
// The harness never runs their algorithms; it only labels the run and
// selects the control-traffic silhouette the network model emits.
type Protocol int

const (
	ProtocolAODV Protocol = iota
	ProtocolOLSR
	ProtocolDSR
	ProtocolDSDV
)

var protocolNames = map[Protocol]string{
	ProtocolAODV: "AODV",
	ProtocolOLSR: "OLSR",
	ProtocolDSR:  "DSR",
	ProtocolDSDV: "DSDV",
}

func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// ParseProtocol resolves a protocol label. Unknown labels are a
// configuration-time error, never a runtime dispatch miss.
func ParseProtocol(s string) (Protocol, error) {
	for p, name := range protocolNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown protocol %q (want AODV, OLSR, DSR or DSDV)", s)
}

// Config is the full experiment configuration. Defaults mirror the
// habitual MANET comparison setup: 25 nodes, 5 flows, 200 simulated
// seconds of 64-byte packets at 2048 bps per flow.
type Config struct {
	Protocol   Protocol
	Sinks      int     // number of sink/flow pairs
	Nodes      int     // total node count
	TotalTime  float64 // simulation horizon in seconds
	TxPower    float64 // transmit power in dBm (reported, and feeds the loss model)
	Rate       string  // per-flow offered rate, e.g. "2048bps"
	NodeSpeed  float64 // max node speed in m/s (feeds the loss model)
	PauseTime  float64 // waypoint pause in seconds (feeds the loss model)
	Warmup     float64 // seconds before traffic starts
	PacketSize int     // payload bytes per data packet
	Seed       int64
	OutputCSV  string // empty selects "<PROTOCOL>-OUTPUT.csv"
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Protocol:   ProtocolAODV,
		Sinks:      5,
		Nodes:      25,
		TotalTime:  200.0,
		TxPower:    25.0,
		Rate:       "2048bps",
		NodeSpeed:  2.0,
		PauseTime:  5.0,
		Warmup:     30.0,
		PacketSize: 64,
		Seed:       42,
	}
}

// CSVFileName returns the result log path for this run.
func (c Config) CSVFileName() string {
	if c.OutputCSV != "" {
		return c.OutputCSV
	}
	return c.Protocol.String() + "-OUTPUT.csv"
}

// PacketsPerSecond derives the per-flow packet cadence from the data
// rate string and the payload size.
func (c Config) PacketsPerSecond() (float64, error) {
	bitRate, err := ParseDataRate(c.Rate)
	if err != nil {
		return 0, err
	}
	return bitRate / (float64(c.PacketSize) * 8.0), nil
}

// Validate checks the configuration once at startup. A failure here is
// fatal to the run and must happen before any simulation resources are
// allocated.
func (c Config) Validate() error {
	if _, ok := protocolNames[c.Protocol]; !ok {
		return fmt.Errorf("unknown protocol value %d", int(c.Protocol))
	}
	if c.Sinks <= 0 {
		return fmt.Errorf("sinks must be positive, got %d", c.Sinks)
	}
	if c.Nodes <= 0 {
		return fmt.Errorf("nodes must be positive, got %d", c.Nodes)
	}
	if c.Sinks*2 > c.Nodes {
		return fmt.Errorf("sinks * 2 must be <= nodes, got %d sinks and %d nodes", c.Sinks, c.Nodes)
	}
	if c.TotalTime <= 0 {
		return fmt.Errorf("total time must be positive, got %v", c.TotalTime)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must not be negative, got %v", c.Warmup)
	}
	if c.Warmup+float64(GuardInterval) >= c.TotalTime {
		return fmt.Errorf("total time %v leaves no room for traffic after warmup %v", c.TotalTime, c.Warmup)
	}
	if c.PacketSize <= 0 {
		return fmt.Errorf("packet size must be positive, got %d", c.PacketSize)
	}
	if c.NodeSpeed < 0 {
		return fmt.Errorf("node speed must not be negative, got %v", c.NodeSpeed)
	}
	if c.PauseTime < 0 {
		return fmt.Errorf("pause time must not be negative, got %v", c.PauseTime)
	}
	if _, err := ParseDataRate(c.Rate); err != nil {
		return err
	}
	return nil
}

// rateSuffixes in match order: longer units first so "kbps" is not
// consumed by the "bps" rule.
var rateSuffixes = []struct {
	suffix     string
	multiplier float64
}{
	{"Gbps", 1e9},
	{"Mbps", 1e6},
	{"kbps", 1e3},
	{"bps", 1},
}

// ParseDataRate parses a data rate string like "2048bps", "16kbps" or
// "1Mbps" into bits per second.
func ParseDataRate(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	for _, r := range rateSuffixes {
		if strings.HasSuffix(trimmed, r.suffix) {
			num := strings.TrimSpace(strings.TrimSuffix(trimmed, r.suffix))
			value, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid data rate %q: %w", s, err)
			}
			if value <= 0 {
				return 0, fmt.Errorf("data rate must be positive, got %q", s)
			}
			return value * r.multiplier, nil
		}
	}
	return 0, fmt.Errorf("invalid data rate %q (want e.g. \"2048bps\", \"16kbps\", \"1Mbps\")", s)
}
