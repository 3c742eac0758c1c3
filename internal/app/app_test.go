package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lightstick.klederson.com/internal/config"
	"lightstick.klederson.com/internal/display"
	"lightstick.klederson.com/internal/link"
	"lightstick.klederson.com/internal/motion"
	"lightstick.klederson.com/internal/sample"
	"lightstick.klederson.com/internal/sensor"
	"lightstick.klederson.com/internal/ui"
)

// scriptSource replays a fixed list of samples, then reports io.EOF.
type scriptSource struct {
	samples []sample.Sample
}

func (s *scriptSource) Read(ctx context.Context) (sample.Sample, error) {
	if len(s.samples) == 0 {
		return sample.Sample{}, io.EOF
	}
	smp := s.samples[0]
	s.samples = s.samples[1:]
	return smp, nil
}

func (s *scriptSource) Close() error { return nil }

func newTestModel(t *testing.T, src sensor.Source) (AppModel, *link.Loopback) {
	t.Helper()
	pub := link.NewLoopback()
	m, err := New(Options{
		Settings:   config.Default(),
		SourceName: "test",
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, src, pub)
	require.NoError(t, err)
	return m, pub
}

func press(t *testing.T, m AppModel, msgs ...tea.KeyMsg) AppModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(AppModel)
		require.True(t, ok)
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEventLog_KeepsNewestInOrder(t *testing.T) {
	l := NewEventLog(3)
	_, ok := l.Last()
	assert.False(t, ok)
	assert.Nil(t, l.Entries())

	for i := 0; i < 5; i++ {
		l.Push(ui.LogEntry{Note: string(rune('a' + i))})
	}

	assert.Equal(t, 3, l.Len())
	var notes []string
	for _, e := range l.Entries() {
		notes = append(notes, e.Note)
	}
	assert.Equal(t, []string{"c", "d", "e"}, notes)

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, "e", last.Note)
}

func TestTick_PublishesDetectedTap(t *testing.T) {
	rest := sample.Sample{Z: 256}
	var script []sample.Sample
	for i := 0; i < 40; i++ {
		script = append(script, rest)
	}
	script = append(script, sample.Sample{Z: 256 + 640}) // 2.5g spike

	m, pub := newTestModel(t, &scriptSource{samples: script})
	require.NoError(t, pub.Start())

	ctx := context.Background()
	for range script {
		require.NoError(t, m.shared.sampler.Step(ctx))
	}

	next, cmd := m.Update(TickMsg(time.Now()))
	require.NotNil(t, cmd)
	m = next.(AppModel)

	pkts := pub.Packets()
	require.Len(t, pkts, 1)
	assert.Equal(t, motion.Tap, pkts[0].Flags)
	assert.GreaterOrEqual(t, pkts[0].Delay, time.Duration(0))

	last, ok := m.shared.events.Last()
	require.True(t, ok)
	assert.Equal(t, motion.Tap, last.Flags)
	assert.True(t, last.Sent)

	assert.Equal(t, config.Capacity, m.stats.Len)
	assert.Len(t, m.values, config.Capacity)
	assert.InDelta(t, m.stats.Last, m.values[len(m.values)-1], 1e-9)

	// Nothing new on the next frame.
	m.refresh(time.Now())
	assert.Len(t, pub.Packets(), 1)
}

func TestTick_UnsentWithoutHost(t *testing.T) {
	m, pub := newTestModel(t, &scriptSource{})

	m.publish(motion.Event{Flags: motion.ShakeStart, At: time.Now()}, time.Now())

	assert.Empty(t, pub.Packets())
	last, ok := m.shared.events.Last()
	require.True(t, ok)
	assert.False(t, last.Sent)
}

func TestKeys_FirstPressOnlyWakes(t *testing.T) {
	m, _ := newTestModel(t, &scriptSource{})
	require.False(t, m.shared.timer.On())

	m = press(t, m, keyEnter)
	assert.True(t, m.shared.timer.On())
	assert.Equal(t, display.StateHome, m.shared.timer.State())

	m = press(t, m, keyEnter)
	assert.Equal(t, display.StateMenu, m.shared.timer.State())
}

func TestKeys_EditBrightness(t *testing.T) {
	m, _ := newTestModel(t, &scriptSource{})
	m.shared.timer.RequestScreenOn()
	require.Equal(t, config.DefaultBrightness, m.shared.timer.Brightness())

	// Home -> Menu -> Display page -> Brightness editor.
	m = press(t, m, keyEnter, keyEnter, keyEnter)
	require.Equal(t, display.StateEditor, m.shared.timer.State())
	require.NotNil(t, m.shared.menu.Editor())

	// Digits start at 0,3: roll the tens up, move on, roll the ones down.
	m = press(t, m, keyUp, keyEnter, keyDown, keyEnter)

	assert.Equal(t, 12, m.shared.timer.Brightness())
	assert.Nil(t, m.shared.menu.Editor())
	assert.Equal(t, display.StateMenu, m.shared.timer.State())
	assert.Equal(t, "Display", m.shared.menu.Page().Title)
}

func TestKeys_BackLeavesMenu(t *testing.T) {
	m, _ := newTestModel(t, &scriptSource{})
	m.shared.timer.RequestScreenOn()

	m = press(t, m, keyEnter, keyEnter)
	require.Equal(t, 2, m.shared.menu.Depth())

	m = press(t, m, keyEsc)
	assert.Equal(t, 1, m.shared.menu.Depth())
	assert.Equal(t, display.StateMenu, m.shared.timer.State())

	m = press(t, m, keyEsc)
	assert.Equal(t, display.StateHome, m.shared.timer.State())
}

func TestKeys_MenuActions(t *testing.T) {
	m, _ := newTestModel(t, &scriptSource{})
	m.shared.timer.RequestScreenOn()

	// Sensor stats logs a note.
	m = press(t, m, keyEnter, keyDown, keyEnter)
	require.Equal(t, 1, m.shared.events.Len())
	last, _ := m.shared.events.Last()
	assert.Contains(t, last.Note, "n=0/16")

	// Back item closes the menu.
	m = press(t, m, keyDown, keyEnter)
	assert.Equal(t, display.StateHome, m.shared.timer.State())
}

func TestKeys_DemoOnlyWithMock(t *testing.T) {
	m, _ := newTestModel(t, &scriptSource{})
	assert.False(t, m.keys.Tap.Enabled())
	assert.Nil(t, m.shared.mock)

	mock := sensor.NewMockSource(config.SamplePeriod, 1)
	mock.TapChance, mock.ShakeChance = 0, 0
	dm, _ := newTestModel(t, mock)
	dm.shared.timer.RequestScreenOn()
	assert.True(t, dm.keys.Tap.Enabled())
	assert.Len(t, dm.shared.menu.Page().Items, 4)

	press(t, dm, runes("t"))
	ctx := context.Background()
	peak := 0.0
	for i := 0; i < 2; i++ {
		s, err := mock.Read(ctx)
		require.NoError(t, err)
		peak = max(peak, s.Magnitude())
	}
	assert.Greater(t, peak, 2.0*256)
}

func TestKeys_Quit(t *testing.T) {
	m, pub := newTestModel(t, &scriptSource{})
	require.NoError(t, m.Start(context.Background()))
	assert.True(t, pub.Connected())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, pub.Connected())

	select {
	case err := <-m.shared.done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sampler did not stop")
	}
}

func TestView_RendersPanels(t *testing.T) {
	m, _ := newTestModel(t, &scriptSource{})
	assert.Contains(t, m.View(), "Initializing")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(AppModel)

	assert.Contains(t, m.View(), "display off")

	m.shared.timer.RequestScreenOn()
	out := m.View()
	assert.Contains(t, out, "ACTIVITY")
	assert.Contains(t, out, "EVENTS")
	assert.Contains(t, out, "HOME")
}

func TestSamplerDone_ReportsFailure(t *testing.T) {
	m, _ := newTestModel(t, &scriptSource{})

	next, _ := m.Update(SamplerDoneMsg{Err: fmt.Errorf("%w: port gone", sensor.ErrStreamFailed)})
	m = next.(AppModel)
	last, ok := m.shared.events.Last()
	require.True(t, ok)
	assert.Contains(t, last.Note, "sensor failed")
	assert.Contains(t, last.Note, "port gone")

	next, _ = m.Update(SamplerDoneMsg{})
	m = next.(AppModel)
	last, _ = m.shared.events.Last()
	assert.Equal(t, "sensor stream ended", last.Note)
}
