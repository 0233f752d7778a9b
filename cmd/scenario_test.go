package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manet-sim/manet-sim/sim"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_OverridesOnTopOfDefaults(t *testing.T) {
	path := writeScenario(t, `
protocol: OLSR
sinks: 8
nodes: 30
total_time: 100
rate: 4096bps
seed: 7
`)

	cfg, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, sim.ProtocolOLSR, cfg.Protocol)
	assert.Equal(t, 8, cfg.Sinks)
	assert.Equal(t, 30, cfg.Nodes)
	assert.Equal(t, 100.0, cfg.TotalTime)
	assert.Equal(t, "4096bps", cfg.Rate)
	assert.Equal(t, int64(7), cfg.Seed)

	// untouched fields keep their defaults
	defaults := sim.DefaultConfig()
	assert.Equal(t, defaults.TxPower, cfg.TxPower)
	assert.Equal(t, defaults.PacketSize, cfg.PacketSize)
	assert.Equal(t, defaults.Warmup, cfg.Warmup)
}

func TestLoadScenario_ZeroValuesAreExplicit(t *testing.T) {
	// a scenario can set a field to zero and have it honored
	path := writeScenario(t, "pause_time: 0\n")

	cfg, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.PauseTime)
}

func TestLoadScenario_UnknownProtocolFails(t *testing.T) {
	path := writeScenario(t, "protocol: ZRP\n")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_MissingFileFails(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_MalformedYAMLFails(t *testing.T) {
	path := writeScenario(t, "sinks: [not a number\n")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}
