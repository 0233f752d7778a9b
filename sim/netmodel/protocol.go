// sim/netmodel/protocol.go
package netmodel

import "github.com/manet-sim/manet-sim/sim"

// ControlProfile is the control-traffic silhouette of a routing
// protocol: how much sub-threshold chatter it puts on the air, not what
// the chatter decides. Proactive protocols pay a steady per-node hello
// cost; reactive ones pay a flood when a flow first needs a route.
type ControlProfile struct {
	// HelloInterval is the period of the hello/update round in seconds.
	// 0 disables periodic control traffic.
	HelloInterval float64
	// HelloSize is the frame size of one hello/update, in bytes.
	HelloSize int
	// HellosActiveOnly restricts hello emission to nodes with open
	// sockets (route-maintenance style) instead of every node.
	HellosActiveOnly bool

	// RouteRequestFlood emits one route-request frame per node the
	// first time a socket sends (on-demand route discovery).
	RouteRequestFlood bool
	// RouteRequestSize is the frame size of one route request, in bytes.
	RouteRequestSize int
}

// ProfileFor returns the control-traffic profile of a protocol. All
// frame sizes sit below the routing-overhead classification threshold.
func ProfileFor(p sim.Protocol) ControlProfile {
	switch p {
	case sim.ProtocolOLSR:
		return ControlProfile{HelloInterval: 2.0, HelloSize: 116}
	case sim.ProtocolDSDV:
		return ControlProfile{HelloInterval: 15.0, HelloSize: 132}
	case sim.ProtocolAODV:
		return ControlProfile{
			HelloInterval:     1.0,
			HelloSize:         44,
			HellosActiveOnly:  true,
			RouteRequestFlood: true,
			RouteRequestSize:  48,
		}
	case sim.ProtocolDSR:
		return ControlProfile{RouteRequestFlood: true, RouteRequestSize: 64}
	default:
		return ControlProfile{}
	}
}
