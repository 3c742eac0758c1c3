package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"lightstick.klederson.com/internal/config"
)

// RenderMenuBar renders the top bar: app title, device name and the BLE
// link state.
func RenderMenuBar(width int, deviceName string, connected bool) string {
	title := StyleMenuKey.Render(fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion))
	name := StyleMenuLabel.Render(deviceName)

	link := StyleDisconnected.Render("ADVERTISING")
	if connected {
		link = StyleConnected.Render("CONNECTED")
	}

	left := title + " " + name
	right := link + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
