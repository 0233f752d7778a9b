// sim/packet.go
package sim

// Packet is an opaque payload of a given byte size, optionally carrying
// one TimestampTag. It is created by a traffic generator, owned by the
// network while in transit, and consumed at the sink.
type Packet struct {
	Size int
	Tag  *TimestampTag
}

// NewPacket creates an untagged packet of the given payload size.
func NewPacket(size int) *Packet {
	return &Packet{Size: size}
}

// Stamp attaches a timestamp tag recording now as the origination time.
func (p *Packet) Stamp(now VirtualTime) {
	tag := NewTimestampTag(now)
	p.Tag = &tag
}
