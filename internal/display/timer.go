// Package display tracks what the screen shows and puts it to sleep after a
// period without input.
package display

import (
	"sync"
	"time"

	"lightstick.klederson.com/internal/config"
)

// State is the screen currently shown.
type State int

const (
	StateHome State = iota
	StateMenu
	StateEditor
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateEditor:
		return "editor"
	default:
		return "home"
	}
}

// Screen is the physical display. Implementations must be cheap; they are
// called with the timer lock held.
type Screen interface {
	On()
	Off()
}

type nopScreen struct{}

func (nopScreen) On()  {}
func (nopScreen) Off() {}

// Timer owns display power: any input calls RequestScreenOn, and periodic
// HandleSleep calls switch the screen off once the sleep timeout has passed
// since the last request.
type Timer struct {
	mu     sync.Mutex
	screen Screen
	now    func() time.Time

	state        State
	brightness   int
	sleepTimeout int // seconds
	on           bool
	lastRequest  time.Time
}

// NewTimer creates a timer with the screen off. A nil screen is allowed.
func NewTimer(screen Screen, brightness, sleepTimeout int) *Timer {
	if screen == nil {
		screen = nopScreen{}
	}
	t := &Timer{
		screen: screen,
		now:    time.Now,
		state:  StateHome,
	}
	t.SetBrightness(brightness)
	t.SetSleepTimeout(sleepTimeout)
	return t
}

// RequestScreenOn restarts the sleep countdown and powers the screen on if
// it was off.
func (t *Timer) RequestScreenOn() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastRequest = t.now()
	if t.on {
		return
	}
	t.on = true
	t.screen.On()
}

// HandleSleep powers the screen off once the timeout has elapsed. It
// reports whether the screen was switched off by this call.
func (t *Timer) HandleSleep() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.on {
		return false
	}
	deadline := t.lastRequest.Add(time.Duration(t.sleepTimeout) * time.Second)
	if !t.now().After(deadline) {
		return false
	}
	t.on = false
	t.state = StateHome
	t.screen.Off()
	return true
}

// On reports whether the screen is powered.
func (t *Timer) On() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}

// Remaining returns the time left before sleep, zero when off.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.on {
		return 0
	}
	d := t.lastRequest.Add(time.Duration(t.sleepTimeout) * time.Second).Sub(t.now())
	if d < 0 {
		return 0
	}
	return d
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) SetState(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = s
}

func (t *Timer) Brightness() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.brightness
}

// SetBrightness clamps b to [0, MaxBrightness].
func (t *Timer) SetBrightness(b int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.brightness = max(0, min(b, config.MaxBrightness))
}

func (t *Timer) SleepTimeout() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sleepTimeout
}

// SetSleepTimeout clamps s to [1, MaxSleepTimeout] seconds.
func (t *Timer) SetSleepTimeout(s int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sleepTimeout = max(1, min(s, config.MaxSleepTimeout))
}
