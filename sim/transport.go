// sim/transport.go
//
// The transport boundary. The core treats the network below it as an
// opaque capability: "attempt to move bytes between two endpoints, tell
// me how many succeeded". Implementations live in sub-packages
// (sim/netmodel for the in-memory ad-hoc model).
package sim

// Address names a transport endpoint: a node plus a port on it.
type Address struct {
	Node int
	Port int
}

// RecvCallback is invoked when packets become available on a bound
// socket. The callback is expected to drain RecvFrom in a loop.
type RecvCallback func(Socket)

// Socket is one endpoint of the transport boundary, shaped after the
// classic bind/connect/send/recv-callback datagram socket.
type Socket interface {
	Bind(local Address) error
	Connect(remote Address) error
	// Send attempts to transmit the packet towards the connected remote.
	// It returns the number of bytes accepted; 0 with a non-nil error
	// means the attempt failed (e.g. interface congestion) and the
	// packet is gone.
	Send(p *Packet) (int, error)
	SetRecvCallback(cb RecvCallback)
	// RecvFrom pops the next delivered packet, or reports false when the
	// receive queue is empty.
	RecvFrom() (*Packet, bool)
	Close() error
}

// TransmitHook observes every frame the network transmits, data and
// control alike. frameSize is the on-the-wire size in bytes.
type TransmitHook func(frameSize int)

// Network creates sockets and exposes the MAC-layer transmit hook the
// orchestrator uses to count routing overhead.
type Network interface {
	NewSocket(node int) (Socket, error)
	SetTransmitHook(hook TransmitHook)
}
