package app

import (
	"fmt"
	"time"

	"lightstick.klederson.com/internal/config"
	"lightstick.klederson.com/internal/display"
	"lightstick.klederson.com/internal/menu"
	"lightstick.klederson.com/internal/ui"
)

const demoShake = 1500 * time.Millisecond

// buildMenu assembles the on-device menu. Actions run on the Update
// goroutine.
func buildMenu(s *shared) *menu.Menu {
	displayPage := &menu.Page{
		Title: "Display",
		Items: []menu.Item{
			{Label: "Brightness", Edit: &menu.IntField{
				Name: "brightness",
				Min:  0,
				Max:  config.MaxBrightness,
				Get:  s.timer.Brightness,
				Set:  s.timer.SetBrightness,
			}},
			{Label: "Sleep timeout", Edit: &menu.IntField{
				Name: "sleep",
				Min:  1,
				Max:  config.MaxSleepTimeout,
				Get:  s.timer.SleepTimeout,
				Set:  s.timer.SetSleepTimeout,
			}},
		},
	}

	root := &menu.Page{
		Title: "Menu",
		Items: []menu.Item{
			{Label: "Display", Open: displayPage},
			{Label: "Sensor stats", Run: s.logStats},
		},
	}

	if s.mock != nil {
		root.Items = append(root.Items, menu.Item{Label: "Demo", Open: &menu.Page{
			Title: "Demo",
			Items: []menu.Item{
				{Label: "Tap", Run: s.mock.Tap},
				{Label: "Shake", Run: func() { s.mock.Shake(demoShake) }},
			},
		}})
	}

	root.Items = append(root.Items, menu.Item{Label: "Back", Run: s.leaveMenu})

	return menu.New(root)
}

func (s *shared) logStats() {
	st := s.store.Stats()
	reads, errs := s.sampler.Counts()
	s.events.Push(ui.LogEntry{
		At: time.Now(),
		Note: fmt.Sprintf("n=%d/%d mean=%.1f sd=%.1f reads=%d err=%d",
			st.Len, st.Cap, st.Mean, st.StdDev, reads, errs),
	})
}

func (s *shared) leaveMenu() {
	s.menu.Reset()
	s.timer.SetState(display.StateHome)
}
