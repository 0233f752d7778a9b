// Package netmodel is an in-memory ad-hoc network behind the sim
// transport boundary. It delivers unicast packets with randomized
// per-packet latency and a loss probability derived from the mobility
// and radio parameters, and emits per-protocol control traffic that the
// core observes through the transmit hook. It does not model radio
// propagation or run a routing algorithm.
package netmodel

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/manet-sim/manet-sim/sim"
)

// frameOverhead approximates the MAC+IP+UDP header bytes added to a
// data payload on the wire.
const frameOverhead = 64

// ErrTxQueueFull reports a send attempt against a saturated interface.
// The packet is gone; the caller decides whether to count it as a drop.
var ErrTxQueueFull = errors.New("netmodel: tx queue full")

// Params configures the network model.
type Params struct {
	Nodes      int
	BaseDelay  float64 // fixed propagation+forwarding delay, seconds
	JitterMean float64 // mean of the exponential queueing jitter, seconds
	LossRate   float64 // per-packet loss probability in [0,1)
	TxQueueCap int     // in-flight frames per socket before Send fails
	Profile    ControlProfile
}

// DeriveParams maps the experiment configuration onto channel
// parameters. Faster nodes break routes more often and higher transmit
// power reaches further, so loss grows with speed and shrinks with
// power and pause time. The numbers are a calibrated stand-in, not a
// propagation model.
func DeriveParams(cfg sim.Config) Params {
	loss := 0.02 + 0.015*cfg.NodeSpeed - 0.004*(cfg.TxPower-20.0) - 0.001*cfg.PauseTime
	if loss < 0 {
		loss = 0
	}
	if loss > 0.95 {
		loss = 0.95
	}
	return Params{
		Nodes:      cfg.Nodes,
		BaseDelay:  0.012,
		JitterMean: 0.055,
		LossRate:   loss,
		TxQueueCap: 64,
		Profile:    ProfileFor(cfg.Protocol),
	}
}

// Network implements sim.Network. All state changes happen inside
// engine-dispatched actions, so no locking is needed.
type Network struct {
	engine  *sim.Engine
	chanRNG *rand.Rand
	ctrlRNG *rand.Rand
	params  Params

	bound   map[sim.Address]*socket
	sockets []*socket
	hook    sim.TransmitHook
}

// New creates a network of params.Nodes nodes driven by the given
// engine. chanRNG feeds delay/loss draws, ctrlRNG the control-traffic
// timing. Periodic control rounds, if the profile has any, start at a
// jittered offset within the first interval.
func New(engine *sim.Engine, params Params, chanRNG, ctrlRNG *rand.Rand) *Network {
	n := &Network{
		engine:  engine,
		chanRNG: chanRNG,
		ctrlRNG: ctrlRNG,
		params:  params,
		bound:   make(map[sim.Address]*socket),
	}
	if params.Profile.HelloInterval > 0 {
		offset := sim.VirtualTime(params.Profile.HelloInterval * ctrlRNG.Float64())
		engine.Schedule(offset, n.helloRound)
	}
	return n
}

// SetTransmitHook registers the MAC-layer transmit observer.
func (n *Network) SetTransmitHook(hook sim.TransmitHook) {
	n.hook = hook
}

// NewSocket creates an unbound socket on the given node.
func (n *Network) NewSocket(node int) (sim.Socket, error) {
	if node < 0 || node >= n.params.Nodes {
		return nil, fmt.Errorf("netmodel: node %d out of range [0,%d)", node, n.params.Nodes)
	}
	s := &socket{n: n, node: node}
	n.sockets = append(n.sockets, s)
	return s, nil
}

func (n *Network) transmitFrame(size int) {
	if n.hook != nil {
		n.hook(size)
	}
}

// helloRound emits one hello per participating node and reschedules
// itself. The chain runs past the horizon but never fires there; the
// engine simply stops popping.
func (n *Network) helloRound() {
	if n.params.Profile.HellosActiveOnly {
		for _, s := range n.sockets {
			if !s.closed {
				n.transmitFrame(n.params.Profile.HelloSize)
			}
		}
	} else {
		for i := 0; i < n.params.Nodes; i++ {
			n.transmitFrame(n.params.Profile.HelloSize)
		}
	}
	n.engine.Schedule(sim.VirtualTime(n.params.Profile.HelloInterval), n.helloRound)
}

// transitDelay draws one end-to-end latency.
func (n *Network) transitDelay() sim.VirtualTime {
	return sim.VirtualTime(n.params.BaseDelay + n.chanRNG.ExpFloat64()*n.params.JitterMean)
}

// socket implements sim.Socket.
type socket struct {
	n      *Network
	node   int
	local  *sim.Address
	remote *sim.Address

	recvQ    []*sim.Packet
	cb       sim.RecvCallback
	inFlight int
	closed   bool

	routeDiscovered bool
}

func (s *socket) Bind(local sim.Address) error {
	if s.closed {
		return errors.New("netmodel: bind on closed socket")
	}
	if s.local != nil {
		return fmt.Errorf("netmodel: socket already bound to %v", *s.local)
	}
	if local.Node != s.node {
		return fmt.Errorf("netmodel: cannot bind node-%d socket to %v", s.node, local)
	}
	if _, taken := s.n.bound[local]; taken {
		return fmt.Errorf("netmodel: address %v already in use", local)
	}
	s.local = &local
	s.n.bound[local] = s
	return nil
}

func (s *socket) Connect(remote sim.Address) error {
	if s.closed {
		return errors.New("netmodel: connect on closed socket")
	}
	s.remote = &remote
	return nil
}

func (s *socket) SetRecvCallback(cb sim.RecvCallback) {
	s.cb = cb
}

// Send puts the packet on the air. The frame (payload plus headers)
// always passes the transmit hook, even when the channel then loses it:
// the hook models the sender's MAC, not the receiver.
func (s *socket) Send(p *sim.Packet) (int, error) {
	if s.closed {
		return 0, errors.New("netmodel: send on closed socket")
	}
	if s.remote == nil {
		return 0, errors.New("netmodel: send on unconnected socket")
	}
	if s.inFlight >= s.n.params.TxQueueCap {
		return 0, ErrTxQueueFull
	}

	if s.n.params.Profile.RouteRequestFlood && !s.routeDiscovered {
		s.routeDiscovered = true
		for i := 0; i < s.n.params.Nodes; i++ {
			s.n.transmitFrame(s.n.params.Profile.RouteRequestSize)
		}
	}

	s.n.transmitFrame(p.Size + frameOverhead)
	s.inFlight++

	dst := *s.remote
	delay := s.n.transitDelay()
	lost := s.n.chanRNG.Float64() < s.n.params.LossRate
	s.n.engine.Schedule(delay, func() {
		s.inFlight--
		if lost {
			return
		}
		peer, ok := s.n.bound[dst]
		if !ok || peer.closed {
			return
		}
		peer.recvQ = append(peer.recvQ, p)
		if peer.cb != nil {
			peer.cb(peer)
		}
	})
	return p.Size, nil
}

func (s *socket) RecvFrom() (*sim.Packet, bool) {
	if len(s.recvQ) == 0 {
		return nil, false
	}
	p := s.recvQ[0]
	s.recvQ = s.recvQ[1:]
	return p, true
}

// Close is idempotent. A closed socket stops receiving; frames already
// in flight towards it are discarded on arrival.
func (s *socket) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.local != nil {
		delete(s.n.bound, *s.local)
	}
	return nil
}
