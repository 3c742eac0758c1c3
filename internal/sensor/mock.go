package sensor

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"lightstick.klederson.com/internal/sample"
)

const (
	countsPerG = 256 // raw counts per g (10-bit, ±2g range)
	shakeRamp  = 36  // samples
)

// MockSource synthesises wrist motion for demo mode: gravity on Z, a slow
// sway, sensor noise and occasional taps and shake bursts. Tap and Shake
// can also be triggered by hand.
type MockSource struct {
	mu     sync.Mutex
	rng    *rand.Rand
	period time.Duration
	t      float64 // seconds of simulated time

	tapLeft    int     // samples remaining in the current tap spike
	shakeLeft  int     // samples remaining in the current shake burst
	shakeTotal int     // length of the current shake burst
	shakeFreq  float64 // Hz
	shakeAmp   float64 // counts

	// Chances per sample of a spontaneous event; zero disables.
	TapChance   float64
	ShakeChance float64
}

// NewMockSource creates a mock source stepping by period per Read. A zero
// seed picks one from the clock.
func NewMockSource(period time.Duration, seed int64) *MockSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockSource{
		rng:         rand.New(rand.NewSource(seed)),
		period:      period,
		TapChance:   0.002,
		ShakeChance: 0.0005,
	}
}

// Tap schedules a short spike on the next reads.
func (m *MockSource) Tap() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tapLeft = 2
}

// Shake schedules a shake burst lasting d.
func (m *MockSource) Shake(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startShake(d)
}

func (m *MockSource) startShake(d time.Duration) {
	m.shakeLeft = int(d / m.period)
	m.shakeTotal = m.shakeLeft
	m.shakeFreq = 6 + m.rng.Float64()*3
	m.shakeAmp = 1.5*countsPerG + m.rng.Float64()*countsPerG
}

// Read returns the next synthetic sample. It never blocks.
func (m *MockSource) Read(ctx context.Context) (sample.Sample, error) {
	if err := ctx.Err(); err != nil {
		return sample.Sample{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.t += m.period.Seconds()

	if m.tapLeft == 0 && m.shakeLeft == 0 {
		if m.TapChance > 0 && m.rng.Float64() < m.TapChance {
			m.tapLeft = 2
		} else if m.ShakeChance > 0 && m.rng.Float64() < m.ShakeChance {
			m.startShake(time.Duration(800+m.rng.Intn(1200)) * time.Millisecond)
		}
	}

	// Sway: ~0.05g at 0.7Hz on X and Y, gravity on Z.
	x := 0.05 * countsPerG * math.Sin(2*math.Pi*0.7*m.t)
	y := 0.05 * countsPerG * math.Cos(2*math.Pi*0.7*m.t)
	z := float64(countsPerG)

	x += (m.rng.Float64() - 0.5) * 8
	y += (m.rng.Float64() - 0.5) * 8
	z += (m.rng.Float64() - 0.5) * 8

	if m.tapLeft > 0 {
		z += 2.5 * countsPerG
		m.tapLeft--
	}
	if m.shakeLeft > 0 {
		// Arms ramp in and out over shakeRamp samples.
		env := min(1, float64(m.shakeTotal-m.shakeLeft)/shakeRamp, float64(m.shakeLeft)/shakeRamp)
		a := m.shakeAmp * env
		z += a * math.Sin(2*math.Pi*m.shakeFreq*m.t)
		x += 0.3 * a * math.Sin(2*math.Pi*m.shakeFreq*m.t+math.Pi/3)
		m.shakeLeft--
	}

	return sample.Sample{X: clamp16(x), Y: clamp16(y), Z: clamp16(z)}, nil
}

// Close is a no-op.
func (m *MockSource) Close() error {
	return nil
}

func clamp16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(math.Round(v))
}
