package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the activity panel and the side column horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, activity, side, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, activity, side)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// ComposeSide stacks the side column panels.
func ComposeSide(panels ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}
