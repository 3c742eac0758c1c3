// Package motion turns the filtered magnitude stream into tap and shake
// events.
package motion

import (
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"lightstick.klederson.com/internal/sample"
)

// Flags is a bit set of motion events, laid out as the host expects them
// in the event packet.
type Flags uint8

const (
	Tap        Flags = 1 << 0
	ShakeStart Flags = 1 << 1
	ShakeEnd   Flags = 1 << 2
)

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f && f != 0
}

func (fl Flags) String() string {
	if fl == 0 {
		return "none"
	}
	var parts []string
	if fl.Has(Tap) {
		parts = append(parts, "tap")
	}
	if fl.Has(ShakeStart) {
		parts = append(parts, "shake-start")
	}
	if fl.Has(ShakeEnd) {
		parts = append(parts, "shake-end")
	}
	return strings.Join(parts, "|")
}

// Event is a set of flags raised since At, the time the first of them was
// detected.
type Event struct {
	Flags Flags
	At    time.Time
}

// Config holds detector thresholds. Std-dev thresholds apply to the ring
// window; counts are in samples.
type Config struct {
	TapThreshold  float64
	TapRefractory int
	ShakeOn       float64
	ShakeOff      float64
	ShakeArm      int
	ShakeHold     int
}

// Detector watches each stored value and the window statistics after it.
// A shake starts once the window std-dev stays at or above ShakeOn for
// ShakeArm samples and ends once it stays below ShakeOff for ShakeHold
// samples. A tap is a single filtered value at or above TapThreshold in
// magnitude outside a shake, at most once per TapRefractory samples.
type Detector struct {
	mu  sync.Mutex
	cfg Config
	log *slog.Logger
	now func() time.Time

	seen     int
	shaking  bool
	loud     int
	quiet    int
	sinceTap int
	pending  Event
}

// NewDetector creates a detector. A nil logger uses slog.Default().
func NewDetector(cfg Config, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		cfg:      cfg,
		log:      logger.With("component", "motion"),
		now:      time.Now,
		sinceTap: math.MaxInt32,
	}
}

// Update feeds the value just stored and the stats that include it. It
// returns the events raised by this sample and adds them to the pending
// set. Until the seed value has left the window nothing is reported.
func (d *Detector) Update(filtered float64, st sample.Stats) Flags {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seen++
	if d.seen <= st.Cap {
		return 0
	}

	var fl Flags
	if d.shaking {
		if st.StdDev < d.cfg.ShakeOff {
			d.quiet++
			if d.quiet >= d.cfg.ShakeHold {
				d.shaking = false
				d.quiet = 0
				fl |= ShakeEnd
			}
		} else {
			d.quiet = 0
		}
	} else if st.Len == st.Cap && st.StdDev >= d.cfg.ShakeOn {
		d.loud++
		if d.loud >= d.cfg.ShakeArm {
			d.shaking = true
			d.loud = 0
			fl |= ShakeStart
		}
	} else {
		d.loud = 0
	}

	if d.sinceTap < math.MaxInt32 {
		d.sinceTap++
	}
	if !d.shaking && math.Abs(filtered) >= d.cfg.TapThreshold && d.sinceTap > d.cfg.TapRefractory {
		d.sinceTap = 0
		fl |= Tap
	}

	if fl != 0 {
		if d.pending.Flags == 0 {
			d.pending.At = d.now()
		}
		d.pending.Flags |= fl
		d.log.Debug("motion event", "flags", fl.String(), "value", filtered, "std_dev", st.StdDev)
	}
	return fl
}

// Drain returns the events raised since the last Drain and clears them.
// A zero Flags means nothing happened.
func (d *Detector) Drain() Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	ev := d.pending
	d.pending = Event{}
	return ev
}

// Shaking reports whether a shake is in progress.
func (d *Detector) Shaking() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shaking
}
