package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Status is what the bottom bar reports.
type Status struct {
	Source     string
	Reads      uint64
	ReadErrors uint64
	DisplayOn  bool
	SleepIn    time.Duration
	Brightness int
	Help       string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s Status) string {
	disp := StyleDisconnected.Render("[DISPLAY OFF]")
	if s.DisplayOn {
		disp = StyleConnected.Render(fmt.Sprintf("[DISPLAY %ds]", int(s.SleepIn.Round(time.Second).Seconds())))
	}

	info := fmt.Sprintf(" Src: %s  Samples: %d  Err: %d  Bright: %d ",
		s.Source, s.Reads, s.ReadErrors, s.Brightness)

	content := disp + StyleStatusBar.Foreground(ColorGreen).Render(info) + s.Help

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
