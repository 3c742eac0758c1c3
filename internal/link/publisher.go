package link

import (
	"errors"
	"sync"
)

// ErrNotConnected is returned when publishing with no host connected.
var ErrNotConnected = errors.New("no host connected")

// Publisher delivers event packets to the host.
type Publisher interface {
	Start() error
	Publish(Packet) error
	Connected() bool
	Stop()
}

// Loopback is an in-memory Publisher for demo mode and tests. It is always
// connected once started and records every packet.
type Loopback struct {
	mu      sync.Mutex
	started bool
	packets []Packet
}

// NewLoopback creates a stopped loopback publisher.
func NewLoopback() *Loopback {
	return &Loopback{}
}

func (l *Loopback) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = true
	return nil
}

func (l *Loopback) Publish(p Packet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return ErrNotConnected
	}
	l.packets = append(l.packets, p)
	return nil
}

func (l *Loopback) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}

func (l *Loopback) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = false
}

// Packets returns a copy of the packets published so far.
func (l *Loopback) Packets() []Packet {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Packet, len(l.packets))
	copy(out, l.packets)
	return out
}
