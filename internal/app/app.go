package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"lightstick.klederson.com/internal/config"
	"lightstick.klederson.com/internal/display"
	"lightstick.klederson.com/internal/link"
	"lightstick.klederson.com/internal/menu"
	"lightstick.klederson.com/internal/motion"
	"lightstick.klederson.com/internal/sample"
	"lightstick.klederson.com/internal/sensor"
	"lightstick.klederson.com/internal/ui"
)

// Options configures a new AppModel.
type Options struct {
	Settings   config.Settings
	SourceName string // shown in the status bar
	Logger     *slog.Logger
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	store     *sample.Store
	sampler   *sensor.Sampler
	detector  *motion.Detector
	publisher link.Publisher
	timer     *display.Timer
	menu      *menu.Menu
	mock      *sensor.MockSource
	events    *EventLog
	log       *slog.Logger

	cancel context.CancelFunc
	done   chan error
}

// AppModel is the root Bubble Tea model for the stick.
type AppModel struct {
	width  int
	height int

	deviceName string
	sourceName string
	shakeOn    float64

	keys keyMap
	help help.Model

	shared *shared

	// Cached snapshot
	values  []float64
	stats   sample.Stats
	shaking bool
}

// New wires the sample store, sampler, detector and menu around src and
// pub. A *sensor.MockSource src enables the demo keys.
func New(opts Options, src sensor.Source, pub link.Publisher) (AppModel, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	st := opts.Settings

	store, err := sample.NewStore(config.Capacity, sample.Alpha(config.SamplePeriod, config.CutoffHz))
	if err != nil {
		return AppModel{}, fmt.Errorf("failed to create sample store: %w", err)
	}

	det := motion.NewDetector(motion.Config{
		TapThreshold:  st.Motion.TapThreshold,
		TapRefractory: st.Motion.TapRefractory,
		ShakeOn:       st.Motion.ShakeOnStdDev,
		ShakeOff:      st.Motion.ShakeOffStdDev,
		ShakeArm:      st.Motion.ShakeArm,
		ShakeHold:     st.Motion.ShakeHold,
	}, logger)

	sampler := sensor.NewSampler(src, store, config.SamplePeriod, logger)
	sampler.OnSample(func(filtered float64) {
		det.Update(filtered, store.Stats())
	})

	s := &shared{
		store:     store,
		sampler:   sampler,
		detector:  det,
		publisher: pub,
		timer:     display.NewTimer(nil, st.Display.Brightness, st.Display.SleepTimeout),
		events:    NewEventLog(config.EventLogLines * 4),
		log:       logger.With("component", "app"),
		done:      make(chan error, 1),
	}
	if mock, ok := src.(*sensor.MockSource); ok {
		s.mock = mock
	}
	s.menu = buildMenu(s)

	return AppModel{
		deviceName: st.BLE.Name,
		sourceName: opts.SourceName,
		shakeOn:    st.Motion.ShakeOnStdDev,
		keys:       newKeyMap(s.mock != nil),
		help:       help.New(),
		shared:     s,
	}, nil
}

// Start brings up the publisher and the sampling goroutine. Must be called
// before p.Run().
func (m *AppModel) Start(ctx context.Context) error {
	if err := m.shared.publisher.Start(); err != nil {
		return fmt.Errorf("failed to start event link: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	m.shared.cancel = cancel
	go func() {
		m.shared.done <- m.shared.sampler.Run(ctx)
	}()

	m.shared.timer.RequestScreenOn()
	return nil
}

// Stop cancels sampling and stops the publisher.
func (m *AppModel) Stop() {
	if m.shared.cancel != nil {
		m.shared.cancel()
	}
	m.shared.publisher.Stop()
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitSampler(m.shared.done),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.refresh(time.Time(msg))
		return m, tickCmd()

	case SamplerDoneMsg:
		note := "sensor stream ended"
		if msg.Err != nil {
			note = "sensor failed: " + msg.Err.Error()
			m.shared.log.Error("sampler stopped", "error", msg.Err)
		}
		m.shared.events.Push(ui.LogEntry{At: time.Now(), Note: note})
		return m, nil
	}

	return m, nil
}

// refresh runs once per frame: snapshot the window, forward pending motion
// events and let the display sleep.
func (m *AppModel) refresh(now time.Time) {
	m.shared.store.Read(func(v sample.View, st sample.Stats) {
		m.values = v.AppendTo(nil)
		m.stats = st
	})
	m.shaking = m.shared.detector.Shaking()

	if ev := m.shared.detector.Drain(); ev.Flags != 0 {
		m.publish(ev, now)
	}

	if m.shared.timer.HandleSleep() {
		m.shared.menu.Reset()
	}
}

func (m *AppModel) publish(ev motion.Event, now time.Time) {
	pkt := link.NewPacket(ev, now)
	err := m.shared.publisher.Publish(pkt)
	switch {
	case err == nil:
		m.shared.log.Debug("event published", "packet", pkt.String())
	case errors.Is(err, link.ErrNotConnected):
		m.shared.log.Debug("event dropped, no host", "flags", ev.Flags.String())
	default:
		m.shared.log.Warn("event publish failed", "flags", ev.Flags.String(), "error", err)
	}
	m.shared.events.Push(ui.LogEntry{
		At:    ev.At,
		Flags: ev.Flags,
		Delay: pkt.Delay,
		Sent:  err == nil,
	})
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.Stop()
		return m, tea.Quit
	}

	// A key press on a dark screen only wakes it.
	timer := m.shared.timer
	wasOn := timer.On()
	timer.RequestScreenOn()
	if !wasOn {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tap):
		m.shared.mock.Tap()
		return m, nil
	case key.Matches(msg, m.keys.Shake):
		m.shared.mock.Shake(demoShake)
		return m, nil
	}

	btn, ok := m.button(msg)
	if !ok {
		return m, nil
	}

	mn := m.shared.menu
	if timer.State() == display.StateHome {
		if btn == menu.Select {
			mn.Reset()
			timer.SetState(display.StateMenu)
		}
		return m, nil
	}

	if left := mn.Press(btn); left {
		timer.SetState(display.StateHome)
		return m, nil
	}
	switch {
	case mn.Editor() != nil:
		timer.SetState(display.StateEditor)
	case timer.State() == display.StateEditor:
		timer.SetState(display.StateMenu)
	}
	return m, nil
}

func (m AppModel) button(msg tea.KeyMsg) (menu.Button, bool) {
	switch {
	case key.Matches(msg, m.keys.Up):
		return menu.Up, true
	case key.Matches(msg, m.keys.Down):
		return menu.Down, true
	case key.Matches(msg, m.keys.Select):
		return menu.Select, true
	case key.Matches(msg, m.keys.Back):
		return menu.Back, true
	}
	return 0, false
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing LightStick..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 10 {
		bodyH = 10
	}

	activityW := m.width * 3 / 5
	if activityW < 30 {
		activityW = 30
	}
	sideW := m.width - activityW
	if sideW < 24 {
		sideW = 24
		activityW = m.width - sideW
	}

	menuBar := ui.RenderMenuBar(m.width, m.deviceName, m.shared.publisher.Connected())

	timer := m.shared.timer
	on := timer.On()

	var activity, side string
	if on {
		activity = ui.RenderActivityPanel(ui.Activity{
			Values:  m.values,
			Stats:   m.stats,
			Alpha:   m.shared.store.Alpha(),
			ShakeOn: m.shakeOn,
			Shaking: m.shaking,
		}, activityW, bodyH)

		menuPanelH := bodyH / 2
		side = ui.ComposeSide(
			ui.RenderMenuPanel(timer.State(), m.shared.menu, sideW, menuPanelH),
			ui.RenderEventLog(m.shared.events.Entries(), sideW, bodyH-menuPanelH),
		)
	} else {
		activity = ui.RenderSleepingPanel(activityW, bodyH)
		side = ui.RenderSleepingPanel(sideW, bodyH)
	}

	reads, errs := m.shared.sampler.Counts()
	statusBar := ui.RenderStatusBar(m.width, ui.Status{
		Source:     m.sourceName,
		Reads:      reads,
		ReadErrors: errs,
		DisplayOn:  on,
		SleepIn:    timer.Remaining(),
		Brightness: timer.Brightness(),
		Help:       m.help.View(m.keys),
	})

	return ui.ComposeLayout(menuBar, activity, side, statusBar)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitSampler(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return SamplerDoneMsg{Err: <-done}
	}
}
