// sim/sink.go
package sim

// PacketSink consumes delivered packets at a bound endpoint and folds
// the observed delays into the shared aggregates.
type PacketSink struct {
	engine *Engine
	agg    *Aggregates
}

// NewPacketSink creates a sink writing into the shared aggregates.
func NewPacketSink(engine *Engine, agg *Aggregates) *PacketSink {
	return &PacketSink{engine: engine, agg: agg}
}

// Attach registers the sink as the socket's receive callback.
func (s *PacketSink) Attach(sock Socket) {
	sock.SetRecvCallback(s.OnReceive)
}

// OnReceive drains all packets currently queued on the socket.
// Zero-length packets are ignored. A packet without a timestamp tag is
// tolerated: it counts towards throughput but not towards delay.
func (s *PacketSink) OnReceive(sock Socket) {
	for {
		p, ok := sock.RecvFrom()
		if !ok {
			return
		}
		if p.Size == 0 {
			continue
		}
		s.agg.BytesSinceSample += p.Size
		s.agg.PacketsReceived++

		if p.Tag != nil {
			delay := float64(s.engine.Now() - p.Tag.Time())
			s.agg.ObserveDelay(delay)
		}
	}
}
