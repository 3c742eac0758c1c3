package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lightstick.klederson.com/internal/display"
	"lightstick.klederson.com/internal/menu"
	"lightstick.klederson.com/internal/motion"
	"lightstick.klederson.com/internal/sample"
)

func testMenu() (*menu.Menu, *int) {
	val := 7
	root := &menu.Page{
		Title: "Menu",
		Items: []menu.Item{
			{Label: "Level", Edit: &menu.IntField{
				Name: "level", Min: 0, Max: 99,
				Get: func() int { return val },
				Set: func(v int) { val = v },
			}},
			{Label: "More", Open: &menu.Page{Title: "More"}},
		},
	}
	return menu.New(root), &val
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "", renderSparkline(nil, 10))
	assert.Equal(t, "_^", renderSparkline([]float64{0, 10}, 10))
	// Flat input stays on the baseline.
	assert.Equal(t, "___", renderSparkline([]float64{5, 5, 5}, 10))
	// Only the newest values fit.
	assert.Equal(t, "^_", renderSparkline([]float64{0, 0, 10, 0}, 2))
}

func TestFormatStat(t *testing.T) {
	assert.Equal(t, "--", formatStat(math.NaN()))
	assert.Equal(t, "1.50", formatStat(1.5))
}

func TestRenderActivityPanel(t *testing.T) {
	out := RenderActivityPanel(Activity{
		Values:  []float64{0, 1, 2},
		Stats:   sample.Stats{Len: 3, Cap: 16, Mean: 1, StdDev: 0.8165, Last: 2},
		Alpha:   0.35,
		ShakeOn: 12,
	}, 60, 20)

	assert.Contains(t, out, "ACTIVITY")
	assert.Contains(t, out, "3/16")
	assert.Contains(t, out, "0.82")
	assert.Contains(t, out, "idle")

	empty := RenderActivityPanel(Activity{Stats: sample.Stats{Cap: 16, Mean: math.NaN(), StdDev: math.NaN()}, Shaking: true}, 60, 20)
	assert.Contains(t, empty, "Waiting for samples")
	assert.Contains(t, empty, "SHAKING")
	assert.Contains(t, empty, "--")
}

func TestRenderMenuPanel_States(t *testing.T) {
	m, _ := testMenu()

	home := RenderMenuPanel(display.StateHome, m, 40, 12)
	assert.Contains(t, home, "HOME")

	page := RenderMenuPanel(display.StateMenu, m, 40, 12)
	assert.Contains(t, page, ">> Level [7]")
	assert.Contains(t, page, "More >")

	m.Press(menu.Select)
	require.NotNil(t, m.Editor())
	edit := RenderMenuPanel(display.StateEditor, m, 40, 12)
	assert.Contains(t, edit, "EDIT LEVEL")
	assert.Contains(t, edit, " 0 ")
	assert.Contains(t, edit, " 7 ")
}

func TestRenderEventLog(t *testing.T) {
	assert.Contains(t, RenderEventLog(nil, 40, 10), "No events yet")

	at := time.Date(2024, 5, 1, 12, 30, 15, 250*int(time.Millisecond), time.UTC)
	out := RenderEventLog([]LogEntry{
		{At: at, Flags: motion.Tap, Delay: 20 * time.Millisecond, Sent: true},
		{At: at, Flags: motion.ShakeStart},
		{At: at, Note: "hello"},
	}, 50, 10)

	assert.Contains(t, out, "EVENTS [3]")
	assert.Contains(t, out, "12:30:15.250")
	assert.Contains(t, out, "tap +20ms")
	assert.Contains(t, out, "shake-start no link")
	assert.Contains(t, out, "hello")
}

func TestPanelsHaveExactHeight(t *testing.T) {
	m, _ := testMenu()
	var many []LogEntry
	for i := 0; i < 50; i++ {
		many = append(many, LogEntry{Note: "x"})
	}

	for _, out := range []string{
		RenderMenuPanel(display.StateMenu, m, 30, 5),
		RenderEventLog(many, 30, 7),
	} {
		want := 5
		if strings.Contains(out, "EVENTS") {
			want = 7
		}
		assert.Equal(t, want, lipgloss.Height(out))
	}
}

func TestStatusAndMenuBar(t *testing.T) {
	bar := RenderMenuBar(80, "LightStick", true)
	assert.Contains(t, bar, "LIGHTSTICK")
	assert.Contains(t, bar, "CONNECTED")
	assert.Contains(t, RenderMenuBar(80, "LightStick", false), "ADVERTISING")

	status := RenderStatusBar(120, Status{Source: "mock", Reads: 42, DisplayOn: true, SleepIn: 3 * time.Second, Brightness: 3})
	assert.Contains(t, status, "DISPLAY 3s")
	assert.Contains(t, status, "Samples: 42")
	assert.Contains(t, RenderStatusBar(120, Status{}), "DISPLAY OFF")
}
