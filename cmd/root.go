package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/manet-sim/manet-sim/sim"
	"github.com/manet-sim/manet-sim/sim/netmodel"
	"github.com/manet-sim/manet-sim/sim/results"
)

var (
	// CLI flags for the experiment configuration
	protocol     string  // Routing protocol label (AODV, OLSR, DSR, DSDV)
	sinks        int     // Number of sink/flow pairs
	nodes        int     // Total node count
	totalTime    float64 // Total simulated duration (seconds)
	txPower      float64 // Transmission power (dBm)
	rate         string  // Per-flow data rate (e.g. 2048bps)
	nodeSpeed    float64 // Maximum node speed (m/s)
	pauseTime    float64 // Pause time at waypoints (s)
	warmup       float64 // Seconds before traffic starts
	packetSize   int     // Payload bytes per data packet
	seed         int64   // Seed for deterministic runs
	csvFile      string  // Output CSV filename override
	scenarioFile string  // YAML scenario file
	logLevel     string  // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "manet-sim",
	Short: "Discrete-event simulator for comparing MANET routing protocols under mobility",
}

// runCmd executes one experiment using parameters from CLI flags and an
// optional YAML scenario file. Flags the user set explicitly override
// scenario values.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one routing-comparison experiment",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.DefaultConfig()
		if scenarioFile != "" {
			cfg, err = LoadScenario(scenarioFile)
			if err != nil {
				logrus.Fatalf("Loading scenario: %v", err)
			}
		}
		applyFlagOverrides(cmd, &cfg)

		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting %s simulation: %d nodes, %d flows, horizon=%.0fs, txp=%.1fdBm, rate=%s, seed=%d",
			cfg.Protocol, cfg.Nodes, cfg.Sinks, cfg.TotalTime, cfg.TxPower, cfg.Rate, cfg.Seed)

		engine := sim.NewEngine()
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
		net := netmodel.New(engine, netmodel.DeriveParams(cfg),
			rng.ForSubsystem(sim.SubsystemChannel), rng.ForSubsystem(sim.SubsystemControl))

		writer, err := results.NewCSVWriter(cfg.CSVFileName())
		if err != nil {
			logrus.Fatalf("Opening result log: %v", err)
		}

		exp, err := sim.NewExperiment(cfg, engine, net, writer, rng)
		if err != nil {
			writer.Close() //nolint:errcheck // exiting anyway
			logrus.Fatalf("%v", err)
		}
		if err := exp.Run(); err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}

		logrus.Infof("Results saved to %s", cfg.CSVFileName())
	},
}

// applyFlagOverrides copies every flag the user changed onto the config,
// on top of defaults or a loaded scenario.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.Config) {
	if cmd.Flags().Changed("protocol") {
		p, err := sim.ParseProtocol(protocol)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg.Protocol = p
	}
	if cmd.Flags().Changed("sinks") {
		cfg.Sinks = sinks
	}
	if cmd.Flags().Changed("nodes") {
		cfg.Nodes = nodes
	}
	if cmd.Flags().Changed("total-time") {
		cfg.TotalTime = totalTime
	}
	if cmd.Flags().Changed("txp") {
		cfg.TxPower = txPower
	}
	if cmd.Flags().Changed("rate") {
		cfg.Rate = rate
	}
	if cmd.Flags().Changed("node-speed") {
		cfg.NodeSpeed = nodeSpeed
	}
	if cmd.Flags().Changed("pause-time") {
		cfg.PauseTime = pauseTime
	}
	if cmd.Flags().Changed("warmup") {
		cfg.Warmup = warmup
	}
	if cmd.Flags().Changed("packet-size") {
		cfg.PacketSize = packetSize
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("csv") {
		cfg.OutputCSV = csvFile
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().StringVar(&protocol, "protocol", defaults.Protocol.String(), "Routing protocol (AODV, OLSR, DSR, DSDV)")
	runCmd.Flags().IntVar(&sinks, "sinks", defaults.Sinks, "Number of sink/flow pairs")
	runCmd.Flags().IntVar(&nodes, "nodes", defaults.Nodes, "Total number of nodes")
	runCmd.Flags().Float64Var(&totalTime, "total-time", defaults.TotalTime, "Total simulation time (seconds)")
	runCmd.Flags().Float64Var(&txPower, "txp", defaults.TxPower, "Transmission power (dBm)")
	runCmd.Flags().StringVar(&rate, "rate", defaults.Rate, "Per-flow data rate (e.g. 2048bps)")
	runCmd.Flags().Float64Var(&nodeSpeed, "node-speed", defaults.NodeSpeed, "Maximum node speed (m/s)")
	runCmd.Flags().Float64Var(&pauseTime, "pause-time", defaults.PauseTime, "Pause time at waypoints (s)")
	runCmd.Flags().Float64Var(&warmup, "warmup", defaults.Warmup, "Seconds before traffic starts")
	runCmd.Flags().IntVar(&packetSize, "packet-size", defaults.PacketSize, "Payload bytes per data packet")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for deterministic runs")
	runCmd.Flags().StringVar(&csvFile, "csv", "", "Output CSV filename (default <PROTOCOL>-OUTPUT.csv)")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "YAML scenario file")
	runCmd.Flags().StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
}
