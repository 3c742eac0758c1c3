package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"lightstick.klederson.com/internal/config"
)

type countingScreen struct {
	ons, offs int
}

func (s *countingScreen) On()  { s.ons++ }
func (s *countingScreen) Off() { s.offs++ }

func newTestTimer(timeout int) (*Timer, *countingScreen, *time.Time) {
	screen := &countingScreen{}
	tm := NewTimer(screen, 3, timeout)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return clock }
	return tm, screen, &clock
}

func TestTimer_StartsOff(t *testing.T) {
	tm, screen, _ := newTestTimer(5)
	assert.False(t, tm.On())
	assert.False(t, tm.HandleSleep())
	assert.Zero(t, tm.Remaining())
	assert.Equal(t, StateHome, tm.State())
	assert.Zero(t, screen.ons)
}

func TestTimer_SleepsAfterTimeout(t *testing.T) {
	tm, screen, clock := newTestTimer(5)

	tm.RequestScreenOn()
	assert.True(t, tm.On())
	assert.Equal(t, 1, screen.ons)
	assert.Equal(t, 5*time.Second, tm.Remaining())

	*clock = clock.Add(5 * time.Second)
	assert.False(t, tm.HandleSleep(), "exactly at the deadline stays on")
	assert.True(t, tm.On())

	*clock = clock.Add(time.Millisecond)
	assert.True(t, tm.HandleSleep())
	assert.False(t, tm.On())
	assert.Equal(t, 1, screen.offs)
	assert.False(t, tm.HandleSleep())
}

func TestTimer_RequestExtendsDeadline(t *testing.T) {
	tm, screen, clock := newTestTimer(2)
	tm.RequestScreenOn()

	*clock = clock.Add(1500 * time.Millisecond)
	tm.RequestScreenOn()
	assert.Equal(t, 1, screen.ons, "already on, no second power-up")

	*clock = clock.Add(1500 * time.Millisecond)
	assert.False(t, tm.HandleSleep())

	*clock = clock.Add(time.Second)
	assert.True(t, tm.HandleSleep())
}

func TestTimer_SleepReturnsHome(t *testing.T) {
	tm, _, clock := newTestTimer(1)
	tm.RequestScreenOn()
	tm.SetState(StateEditor)
	*clock = clock.Add(2 * time.Second)
	tm.HandleSleep()
	assert.Equal(t, StateHome, tm.State())
}

func TestTimer_Clamping(t *testing.T) {
	tm := NewTimer(nil, 99, 0)
	assert.Equal(t, config.MaxBrightness, tm.Brightness())
	assert.Equal(t, 1, tm.SleepTimeout())

	tm.SetBrightness(-3)
	assert.Equal(t, 0, tm.Brightness())
	tm.SetSleepTimeout(5000)
	assert.Equal(t, config.MaxSleepTimeout, tm.SleepTimeout())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "home", StateHome.String())
	assert.Equal(t, "menu", StateMenu.String())
	assert.Equal(t, "editor", StateEditor.String())
}
