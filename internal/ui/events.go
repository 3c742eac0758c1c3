package ui

import (
	"fmt"
	"strings"
	"time"

	"lightstick.klederson.com/internal/motion"
)

// LogEntry is one line of the event log. Entries with no flags are notes.
type LogEntry struct {
	At    time.Time
	Flags motion.Flags
	Delay time.Duration
	Sent  bool
	Note  string
}

// RenderEventLog renders the most recent entries, newest last.
func RenderEventLog(entries []LogEntry, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	lines := []string{
		StylePanelTitle.Render(fmt.Sprintf("EVENTS [%d]", len(entries))),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
	}

	space := height - 2 - len(lines)
	if space < 1 {
		space = 1
	}
	if len(entries) > space {
		entries = entries[len(entries)-space:]
	}
	if len(entries) == 0 {
		lines = append(lines, StyleHelp.Render(" No events yet"))
	}
	for _, e := range entries {
		lines = append(lines, renderLogEntry(e, innerW))
	}

	return clampPanel(StylePanelBorder, lines, width, height)
}

func renderLogEntry(e LogEntry, maxW int) string {
	stamp := StyleLabel.Render(e.At.Format("15:04:05.000") + " ")
	if e.Flags == 0 {
		note := e.Note
		if room := maxW - 13; len(note) > room && room > 0 {
			note = note[:room]
		}
		return stamp + StyleHelp.Render(note)
	}

	style := StyleEventShake
	if e.Flags.Has(motion.Tap) {
		style = StyleEventTap
	}
	mark := StyleHelp.Render(" no link")
	if e.Sent {
		mark = StyleConnected.Render(fmt.Sprintf(" +%dms", e.Delay.Milliseconds()))
	}
	return stamp + style.Render(e.Flags.String()) + mark
}
