package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"lightstick.klederson.com/internal/display"
	"lightstick.klederson.com/internal/menu"
)

// RenderMenuPanel renders the on-device menu: a hint on the home screen, the
// current page with its cursor, or the digit editor.
func RenderMenuPanel(state display.State, m *menu.Menu, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}
	innerH := height - 2
	if innerH < 3 {
		innerH = 3
	}

	var lines []string
	switch {
	case state == display.StateEditor && m.Editor() != nil:
		lines = renderEditor(m.Editor(), innerW)
	case state == display.StateMenu:
		lines = renderPage(m, innerW, innerH)
	default:
		lines = []string{
			StylePanelTitle.Render("HOME"),
			StyleSeparator.Render(strings.Repeat("-", innerW)),
			"",
			StyleHelp.Render(" enter: open menu"),
		}
	}

	return clampPanel(StylePanelBorder, lines, width, height)
}

func renderPage(m *menu.Menu, innerW, innerH int) []string {
	page := m.Page()
	crumb := ""
	if d := m.Depth(); d > 1 {
		crumb = StyleHelp.Render(fmt.Sprintf("%d/%d", d, menu.MaxDepth))
	}
	title := StylePanelTitle.Render(strings.ToUpper(page.Title))
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(crumb))) + crumb

	lines := []string{titleLine, StyleSeparator.Render(strings.Repeat("-", innerW))}

	space := innerH - len(lines)
	if space < 1 {
		space = 1
	}

	// Keep the cursor visible.
	sel := m.Selection()
	viewStart := 0
	if sel >= space {
		viewStart = sel - space + 1
	}

	for i := viewStart; i < len(page.Items) && len(lines) < innerH; i++ {
		it := page.Items[i]
		label := it.Label
		switch {
		case it.Open != nil:
			label += " >"
		case it.Edit != nil:
			label += fmt.Sprintf(" [%d]", it.Edit.Get())
		}
		if i == sel {
			lines = append(lines, StyleCursorLine.Render(truncRaw(">> "+label, innerW)))
			continue
		}
		lines = append(lines, StyleMenuLabel.Render(truncRaw("   "+label, innerW)))
	}
	return lines
}

func renderEditor(e *menu.Editor, innerW int) []string {
	digits, cur := e.Digits()
	var sb strings.Builder
	for i, d := range digits {
		s := fmt.Sprintf(" %d ", d)
		if i == cur {
			sb.WriteString(StyleDigitActive.Render(s))
		} else {
			sb.WriteString(StyleDigit.Render(s))
		}
	}

	return []string{
		StylePanelTitle.Render("EDIT " + strings.ToUpper(e.Name())),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
		"",
		"  " + sb.String(),
		"",
		StyleLabel.Render("  Value ") + StyleValue.Render(fmt.Sprint(e.Value())),
		"",
		StyleHelp.Render(" up/down: digit  enter: next"),
		StyleHelp.Render(" esc: previous"),
	}
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	if len(s) < w {
		return s + strings.Repeat(" ", w-len(s))
	}
	return s
}

// clampPanel borders lines and forces the result to exactly height rows.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func clampPanel(style lipgloss.Style, lines []string, width, height int) string {
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	rendered := style.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))

	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
