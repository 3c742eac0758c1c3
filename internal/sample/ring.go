package sample

import (
	"errors"
	"fmt"
	"math"
)

// ErrCapacity is returned when a ring capacity is not a positive power of two.
var ErrCapacity = errors.New("capacity must be a positive power of two")

// Ring is a fixed-capacity circular buffer of high-pass filtered sample
// magnitudes. It keeps a running sum and sum of squares of its contents so
// Mean and StdDev never rescan storage. Ring is not safe for concurrent
// use; see Store.
type Ring struct {
	buf []float64

	// start and end are logical indices in [0, 2*cap). start == end means
	// empty; end-start == cap means full.
	start, end uint

	sum     float64
	squares float64

	filter HighPass
}

// NewRing creates an empty ring with the given power-of-two capacity whose
// filter uses the given alpha.
func NewRing(capacity int, alpha float64) (*Ring, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("ring capacity %d: %w", capacity, ErrCapacity)
	}
	return &Ring{
		buf:    make([]float64, capacity),
		filter: NewHighPass(alpha),
	}, nil
}

func (r *Ring) mask(i uint) uint  { return i & uint(len(r.buf)-1) }
func (r *Ring) mask2(i uint) uint { return i & uint(2*len(r.buf)-1) }

// Cap returns the fixed capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Len returns the number of stored values.
func (r *Ring) Len() int {
	return int(r.mask2(r.end - r.start))
}

// Append reduces s to its magnitude, filters it and stores the result,
// evicting the oldest value when the ring is full. It returns the stored
// (filtered) value.
func (r *Ring) Append(s Sample) float64 {
	return r.push(s.Magnitude())
}

func (r *Ring) push(mag float64) float64 {
	if r.Len() == len(r.buf) {
		old := r.buf[r.mask(r.start)]
		r.sum -= old
		r.squares -= old * old
		r.start = r.mask2(r.start + 1)
	}

	f := r.filter.Next(mag)
	r.buf[r.mask(r.end)] = f
	r.sum += f
	r.squares += f * f
	r.end = r.mask2(r.end + 1)
	return f
}

// Get returns the value at logical position i, 0 being the oldest.
// It panics if i is outside [0, Len()).
func (r *Ring) Get(i int) float64 {
	if i < 0 || i >= r.Len() {
		panic(fmt.Sprintf("sample: index %d out of range [0, %d)", i, r.Len()))
	}
	return r.buf[r.mask(r.start+uint(i))]
}

// Last returns the newest value and false if the ring is empty.
func (r *Ring) Last() (float64, bool) {
	n := r.Len()
	if n == 0 {
		return 0, false
	}
	return r.Get(n - 1), true
}

// Sum returns the running sum of the stored values.
func (r *Ring) Sum() float64 {
	return r.sum
}

// SumOfSquares returns the running sum of squared stored values.
func (r *Ring) SumOfSquares() float64 {
	return r.squares
}

// Mean returns the mean of the stored values, or NaN when empty.
func (r *Ring) Mean() float64 {
	n := r.Len()
	if n == 0 {
		return math.NaN()
	}
	return r.sum / float64(n)
}

// StdDev returns the population standard deviation of the stored values,
// or NaN when empty. Rounding can push the expanded variance slightly below
// zero for near-constant contents; that case reports 0.
func (r *Ring) StdDev() float64 {
	n := r.Len()
	if n == 0 {
		return math.NaN()
	}
	mean := r.sum / float64(n)
	v := (r.squares - 2*mean*r.sum + float64(n)*mean*mean) / float64(n)
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}

// View returns the stored values as two contiguous spans over the backing
// array, oldest first. The spans alias live storage and are valid only
// until the next Append.
func (r *Ring) View() View {
	n := uint(r.Len())
	first := r.mask(r.start)
	firstEnd := min(uint(len(r.buf)), first+n)
	return View{
		First:  r.buf[first:firstEnd:firstEnd],
		Second: r.buf[0 : n-(firstEnd-first) : n-(firstEnd-first)],
	}
}

// Alpha returns the filter coefficient in use.
func (r *Ring) Alpha() float64 {
	return r.filter.Alpha()
}
