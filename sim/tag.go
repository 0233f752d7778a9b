// sim/tag.go
package sim

import (
	"encoding/binary"
	"fmt"
	"math"
)

// TimestampTagSize is the fixed wire size of a serialized TimestampTag.
const TimestampTagSize = 8

// TimestampTag records a packet's origination time so the sink can
// compute one-way delay. It is a side-channel value carried alongside
// the payload, not inside it, and is read-only after attachment.
type TimestampTag struct {
	seconds float64
}

// NewTimestampTag creates a tag stamped with the given virtual time.
func NewTimestampTag(t VirtualTime) TimestampTag {
	return TimestampTag{seconds: float64(t)}
}

// Time returns the origination time recorded in the tag.
func (t TimestampTag) Time() VirtualTime {
	return VirtualTime(t.seconds)
}

// MarshalBinary encodes the tag as a big-endian IEEE-754 double,
// exactly TimestampTagSize bytes.
func (t TimestampTag) MarshalBinary() ([]byte, error) {
	buf := make([]byte, TimestampTagSize)
	binary.BigEndian.PutUint64(buf, math.Float64bits(t.seconds))
	return buf, nil
}

// UnmarshalBinary decodes a tag produced by MarshalBinary.
func (t *TimestampTag) UnmarshalBinary(data []byte) error {
	if len(data) != TimestampTagSize {
		return fmt.Errorf("timestamp tag must be %d bytes, got %d", TimestampTagSize, len(data))
	}
	t.seconds = math.Float64frombits(binary.BigEndian.Uint64(data))
	return nil
}

func (t TimestampTag) String() string {
	return fmt.Sprintf("Timestamp=%g", t.seconds)
}
