package app

import "time"

// TickMsg triggers a frame update.
type TickMsg time.Time

// SamplerDoneMsg reports that the sampling goroutine returned.
type SamplerDoneMsg struct {
	Err error
}
