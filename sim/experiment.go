// sim/experiment.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/manet-sim/manet-sim/sim/results"
)

// sinkPort is the well-known port every sink binds.
const sinkPort = 9

// Experiment owns the aggregate counters, wires flows to sinks over the
// transport boundary, drives the engine to the configured horizon and
// emits final statistics. Teardown cancels outstanding flow events and
// closes all sockets no matter how the run ended.
type Experiment struct {
	cfg    Config
	engine *Engine
	net    Network
	writer results.Writer
	rng    *PartitionedRNG
	agg    *Aggregates

	generators []*TrafficGenerator
	sockets    []Socket
}

// NewExperiment validates the configuration and builds the orchestrator.
// Validation failures surface before any socket or flow exists.
func NewExperiment(cfg Config, engine *Engine, net Network, writer results.Writer, rng *PartitionedRNG) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Experiment{
		cfg:    cfg,
		engine: engine,
		net:    net,
		writer: writer,
		rng:    rng,
		agg:    NewAggregates(),
	}, nil
}

// Aggregates exposes the run counters, mainly for the final summary and
// for tests.
func (e *Experiment) Aggregates() *Aggregates {
	return e.agg
}

// Run executes the experiment to the configured horizon and prints the
// final statistics.
func (e *Experiment) Run() error {
	defer e.teardown()

	// Any frame under the size threshold is classified as routing
	// overhead, whatever the protocol actually put in it.
	e.net.SetTransmitHook(func(frameSize int) {
		if frameSize < ControlFrameSizeThreshold {
			e.agg.RoutingPackets++
		}
	})

	if err := e.setupTraffic(); err != nil {
		return err
	}

	sampler := NewPeriodicSampler(e.engine, e.agg, e.writer,
		VirtualTime(e.cfg.TotalTime), e.cfg.Sinks, e.cfg.Protocol.String(), e.cfg.TxPower)
	sampler.Start()

	logrus.Infof("starting %s run: %d nodes, %d flows, %.0f s horizon, seed %d",
		e.cfg.Protocol, e.cfg.Nodes, e.cfg.Sinks, e.cfg.TotalTime, e.cfg.Seed)

	e.engine.RunUntil(VirtualTime(e.cfg.TotalTime))

	e.agg.PrintSummary(e.cfg.Protocol.String())
	return nil
}

// setupTraffic binds one sink per flow on nodes [0, sinks) and connects
// one source per flow on nodes [sinks, 2*sinks), with each flow's start
// jittered over a one-second window after warmup.
func (e *Experiment) setupTraffic() error {
	pps, err := e.cfg.PacketsPerSecond()
	if err != nil {
		return err
	}
	interval := VirtualTime(1.0 / pps)
	budget := int((e.cfg.TotalTime - e.cfg.Warmup) * pps)
	trafficRNG := e.rng.ForSubsystem(SubsystemTraffic)

	logrus.Infof("setting up %d traffic flows: %d-byte packets at %s (%.2f pkt/s, budget %d)",
		e.cfg.Sinks, e.cfg.PacketSize, e.cfg.Rate, pps, budget)

	sink := NewPacketSink(e.engine, e.agg)

	for i := 0; i < e.cfg.Sinks; i++ {
		local := Address{Node: i, Port: sinkPort}

		recvSock, err := e.net.NewSocket(i)
		if err != nil {
			return fmt.Errorf("flow %d: creating sink socket: %w", i, err)
		}
		e.sockets = append(e.sockets, recvSock)
		if err := recvSock.Bind(local); err != nil {
			return fmt.Errorf("flow %d: binding sink: %w", i, err)
		}
		sink.Attach(recvSock)

		srcNode := i + e.cfg.Sinks
		srcSock, err := e.net.NewSocket(srcNode)
		if err != nil {
			return fmt.Errorf("flow %d: creating source socket: %w", i, err)
		}
		e.sockets = append(e.sockets, srcSock)
		if err := srcSock.Connect(local); err != nil {
			return fmt.Errorf("flow %d: connecting source: %w", i, err)
		}

		flow := Flow{
			ID:         i,
			Source:     Address{Node: srcNode},
			Dest:       local,
			Remaining:  budget,
			Interval:   interval,
			PacketSize: e.cfg.PacketSize,
		}
		gen := NewTrafficGenerator(e.engine, e.agg, srcSock, flow, VirtualTime(e.cfg.TotalTime))
		e.generators = append(e.generators, gen)

		start := VirtualTime(e.cfg.Warmup + trafficRNG.Float64())
		gen.StartAfter(start - e.engine.Now())
		logrus.Debugf("flow %d: node %d -> node %d, start t=%.4f", i, srcNode, i, float64(start))
	}
	return nil
}

// teardown cancels pending flow events, closes every socket and the
// result log, and clears the engine queue.
func (e *Experiment) teardown() {
	for _, gen := range e.generators {
		gen.Stop()
	}
	for _, sock := range e.sockets {
		if err := sock.Close(); err != nil {
			logrus.Warnf("closing socket: %v", err)
		}
	}
	if err := e.writer.Close(); err != nil {
		logrus.Warnf("closing result log: %v", err)
	}
	e.engine.Reset()
}
