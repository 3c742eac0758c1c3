package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"lightstick.klederson.com/internal/sample"
)

// Activity is the data behind the activity panel.
type Activity struct {
	Values  []float64 // filtered window, oldest first
	Stats   sample.Stats
	Alpha   float64
	ShakeOn float64 // std-dev that starts a shake, used to scale the bar
	Shaking bool
}

// RenderActivityPanel renders the filtered magnitude window and its
// statistics.
func RenderActivityPanel(a Activity, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("ACTIVITY")
	state := StyleHelp.Render("idle")
	if a.Shaking {
		state = StyleEventShake.Render("SHAKING")
	}
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(state))) + state

	lines := []string{titleLine, StyleSeparator.Render(strings.Repeat("-", innerW)), ""}

	fields := []struct{ label, value string }{
		{"Window", fmt.Sprintf("%d/%d", a.Stats.Len, a.Stats.Cap)},
		{"Mean", formatStat(a.Stats.Mean)},
		{"StdDev", formatStat(a.Stats.StdDev)},
		{"Last", formatStat(a.Stats.Last)},
		{"Alpha", fmt.Sprintf("%.4f", a.Alpha)},
	}
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-8s", f.label))+StyleValue.Render(f.value))
	}
	lines = append(lines, "")

	barWidth := innerW - 12
	if barWidth < 10 {
		barWidth = 10
	}
	lines = append(lines, StyleLabel.Render("  Energy ")+renderEnergyBar(a.Stats.StdDev, a.ShakeOn, barWidth))
	lines = append(lines, "")

	if len(a.Values) > 0 {
		lines = append(lines, StyleLabel.Render("  Filtered magnitude:"))
		spark := renderSparkline(a.Values, innerW-4)
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
	} else {
		lines = append(lines, StyleHelp.Render("  Waiting for samples..."))
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 && height > 2 {
		lines = lines[:height-2]
	}

	return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// RenderSleepingPanel stands in for the activity panel while the display is
// off.
func RenderSleepingPanel(width, height int) string {
	msg := StyleSleeping.Render("display off - press any key")
	pad := max(0, (height-2)/2)
	content := strings.Repeat("\n", pad) + lipgloss.PlaceHorizontal(max(0, width-4), lipgloss.Center, msg)
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "--"
	}
	return fmt.Sprintf("%.2f", v)
}

// renderEnergyBar maps the window std-dev to a bar that is full at twice
// the shake threshold.
func renderEnergyBar(std, shakeOn float64, width int) string {
	ratio := 0.0
	if !math.IsNaN(std) && shakeOn > 0 {
		ratio = std / (2 * shakeOn)
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))

	color := ColorGreen
	if std >= shakeOn {
		color = ColorShake
	}
	bar := strings.Repeat("|", filled) + strings.Repeat("-", width-filled)
	filledPart := lipgloss.NewStyle().Foreground(color).Render(bar[:filled])
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(bar[filled:])
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}

	var sb strings.Builder
	for i := start; i < len(values); i++ {
		idx := int((values[i] - minV) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}
