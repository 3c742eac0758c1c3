package sample

import (
	"math"
	"time"
)

// Alpha returns the single-pole high-pass coefficient for the given
// sampling period and cutoff frequency (Hz).
func Alpha(period time.Duration, cutoffHz float64) float64 {
	dt := period.Seconds()
	return 1 / (2*math.Pi*dt*cutoffHz + 1)
}

// HighPass is a discrete single-pole high-pass filter applied one value at
// a time. The zero value is unseeded with alpha 0; use NewHighPass.
type HighPass struct {
	alpha   float64
	seeded  bool
	prevIn  float64
	prevOut float64
}

// NewHighPass creates an unseeded filter.
func NewHighPass(alpha float64) HighPass {
	return HighPass{alpha: alpha}
}

// Next feeds one raw value and returns the filtered output. The first value
// passes through unchanged and seeds the recurrence.
func (h *HighPass) Next(in float64) float64 {
	out := in
	if h.seeded {
		out = h.alpha * (h.prevOut + in - h.prevIn)
	}
	h.seeded = true
	h.prevIn = in
	h.prevOut = out
	return out
}

// Seeded reports whether at least one value has been filtered.
func (h *HighPass) Seeded() bool {
	return h.seeded
}

// Alpha returns the filter coefficient.
func (h *HighPass) Alpha() float64 {
	return h.alpha
}
