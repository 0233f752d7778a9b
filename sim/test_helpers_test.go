package sim

import "errors"

// fakeSocket records sends and replays queued receives without any
// network behind it.
type fakeSocket struct {
	net    *fakeNetwork
	node   int
	local  *Address
	remote *Address

	sent      []*Packet
	sendTimes []VirtualTime
	recvQ     []*Packet
	cb        RecvCallback
	failSend  bool
	closed    bool

	engine *Engine // set when send times should be recorded
}

func (s *fakeSocket) Bind(local Address) error {
	s.local = &local
	return nil
}

func (s *fakeSocket) Connect(remote Address) error {
	s.remote = &remote
	return nil
}

func (s *fakeSocket) Send(p *Packet) (int, error) {
	if s.failSend {
		return 0, errors.New("interface congested")
	}
	s.sent = append(s.sent, p)
	if s.engine != nil {
		s.sendTimes = append(s.sendTimes, s.engine.Now())
	}
	if s.net != nil && s.remote != nil {
		s.net.deliver(*s.remote, p)
	}
	return p.Size, nil
}

func (s *fakeSocket) SetRecvCallback(cb RecvCallback) {
	s.cb = cb
}

func (s *fakeSocket) RecvFrom() (*Packet, bool) {
	if len(s.recvQ) == 0 {
		return nil, false
	}
	p := s.recvQ[0]
	s.recvQ = s.recvQ[1:]
	return p, true
}

func (s *fakeSocket) Close() error {
	s.closed = true
	return nil
}

// enqueue loads packets for RecvFrom without triggering the callback.
func (s *fakeSocket) enqueue(ps ...*Packet) {
	s.recvQ = append(s.recvQ, ps...)
}

// fakeNetwork hands out fakeSockets and delivers sends to bound peers
// immediately, with zero transit delay.
type fakeNetwork struct {
	sockets []*fakeSocket
	hook    TransmitHook
	engine  *Engine // propagated to sockets so they record send times

	// emitOnHook, when set, is replayed as frame sizes the moment the
	// transmit hook is installed.
	emitOnHook []int
}

func (n *fakeNetwork) NewSocket(node int) (Socket, error) {
	s := &fakeSocket{net: n, node: node, engine: n.engine}
	n.sockets = append(n.sockets, s)
	return s, nil
}

func (n *fakeNetwork) SetTransmitHook(hook TransmitHook) {
	n.hook = hook
	for _, size := range n.emitOnHook {
		hook(size)
	}
}

func (n *fakeNetwork) deliver(dst Address, p *Packet) {
	for _, s := range n.sockets {
		if s.local != nil && *s.local == dst && !s.closed {
			s.recvQ = append(s.recvQ, p)
			if s.cb != nil {
				s.cb(s)
			}
			return
		}
	}
}
