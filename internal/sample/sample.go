// Package sample holds the accelerometer sample processor: magnitude
// reduction, an online high-pass filter and a fixed-capacity ring buffer
// of filtered magnitudes with streaming mean and standard deviation.
package sample

import "math"

// Sample is one raw 3-axis accelerometer reading.
type Sample struct {
	X, Y, Z int16
}

// Magnitude returns the Euclidean norm of the sample.
func (s Sample) Magnitude() float64 {
	x, y, z := int64(s.X), int64(s.Y), int64(s.Z)
	return math.Sqrt(float64(x*x + y*y + z*z))
}
