package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/manet-sim/manet-sim/sim"
)

// Scenario is the YAML representation of a run configuration. Absent
// fields keep their defaults, so a scenario file only needs to name
// what it changes.
type Scenario struct {
	Protocol   string   `yaml:"protocol,omitempty"`
	Sinks      *int     `yaml:"sinks,omitempty"`
	Nodes      *int     `yaml:"nodes,omitempty"`
	TotalTime  *float64 `yaml:"total_time,omitempty"`
	TxPower    *float64 `yaml:"tx_power,omitempty"`
	Rate       string   `yaml:"rate,omitempty"`
	NodeSpeed  *float64 `yaml:"node_speed,omitempty"`
	PauseTime  *float64 `yaml:"pause_time,omitempty"`
	Warmup     *float64 `yaml:"warmup,omitempty"`
	PacketSize *int     `yaml:"packet_size,omitempty"`
	Seed       *int64   `yaml:"seed,omitempty"`
	OutputCSV  string   `yaml:"output_csv,omitempty"`
}

// LoadScenario reads a YAML scenario file and applies it on top of the
// default configuration.
func LoadScenario(path string) (sim.Config, error) {
	cfg := sim.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading scenario file: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return cfg, fmt.Errorf("unmarshalling scenario YAML: %w", err)
	}

	if sc.Protocol != "" {
		p, err := sim.ParseProtocol(sc.Protocol)
		if err != nil {
			return cfg, err
		}
		cfg.Protocol = p
	}
	if sc.Sinks != nil {
		cfg.Sinks = *sc.Sinks
	}
	if sc.Nodes != nil {
		cfg.Nodes = *sc.Nodes
	}
	if sc.TotalTime != nil {
		cfg.TotalTime = *sc.TotalTime
	}
	if sc.TxPower != nil {
		cfg.TxPower = *sc.TxPower
	}
	if sc.Rate != "" {
		cfg.Rate = sc.Rate
	}
	if sc.NodeSpeed != nil {
		cfg.NodeSpeed = *sc.NodeSpeed
	}
	if sc.PauseTime != nil {
		cfg.PauseTime = *sc.PauseTime
	}
	if sc.Warmup != nil {
		cfg.Warmup = *sc.Warmup
	}
	if sc.PacketSize != nil {
		cfg.PacketSize = *sc.PacketSize
	}
	if sc.Seed != nil {
		cfg.Seed = *sc.Seed
	}
	if sc.OutputCSV != "" {
		cfg.OutputCSV = sc.OutputCSV
	}
	return cfg, nil
}
