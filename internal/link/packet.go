// Package link publishes motion events to the paired host over BLE.
package link

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"lightstick.klederson.com/internal/motion"
)

// PacketSize is the encoded size of a Packet.
const PacketSize = 5

// ErrShortPacket is returned when decoding fewer than PacketSize bytes.
var ErrShortPacket = errors.New("short event packet")

// Packet is one event notification: the motion flags and how long ago the
// first of them was detected, so the host can compensate for link latency.
// On the wire it is the delay in milliseconds as a little-endian uint32
// followed by the flag byte.
type Packet struct {
	Delay time.Duration
	Flags motion.Flags
}

// NewPacket builds a packet for ev as seen at now.
func NewPacket(ev motion.Event, now time.Time) Packet {
	d := now.Sub(ev.At)
	if d < 0 || ev.At.IsZero() {
		d = 0
	}
	return Packet{Delay: d, Flags: ev.Flags}
}

// MarshalBinary encodes the packet.
func (p Packet) MarshalBinary() ([]byte, error) {
	ms := p.Delay.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	if ms > int64(^uint32(0)) {
		ms = int64(^uint32(0))
	}
	b := make([]byte, PacketSize)
	binary.LittleEndian.PutUint32(b, uint32(ms))
	b[4] = byte(p.Flags)
	return b, nil
}

// UnmarshalBinary decodes a packet. Trailing bytes are ignored.
func (p *Packet) UnmarshalBinary(b []byte) error {
	if len(b) < PacketSize {
		return fmt.Errorf("%w: %d bytes", ErrShortPacket, len(b))
	}
	p.Delay = time.Duration(binary.LittleEndian.Uint32(b)) * time.Millisecond
	p.Flags = motion.Flags(b[4])
	return nil
}

func (p Packet) String() string {
	return fmt.Sprintf("%s +%dms", p.Flags, p.Delay.Milliseconds())
}
