package sample

import "sync"

// Stats is a consistent snapshot of a ring's aggregates.
type Stats struct {
	Len    int
	Cap    int
	Mean   float64 // NaN when Len == 0
	StdDev float64 // NaN when Len == 0
	Last   float64 // newest filtered value, 0 when Len == 0
}

// Store is a thread-safe wrapper around a Ring. The sampling loop appends
// while the UI reads; every read sees sums and storage from the same state.
type Store struct {
	mu   sync.RWMutex
	ring *Ring
}

// NewStore creates a store around a new ring.
func NewStore(capacity int, alpha float64) (*Store, error) {
	r, err := NewRing(capacity, alpha)
	if err != nil {
		return nil, err
	}
	return &Store{ring: r}, nil
}

// Append adds a sample and returns the filtered value stored for it.
func (s *Store) Append(smp Sample) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Append(smp)
}

// Len returns the current occupancy.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ring.Len()
}

// Get returns the value at logical position i. It panics when i is out of
// range.
func (s *Store) Get(i int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ring.Get(i)
}

// Mean returns the mean of the stored values, or NaN when empty.
func (s *Store) Mean() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ring.Mean()
}

// StdDev returns the population standard deviation, or NaN when empty.
func (s *Store) StdDev() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ring.StdDev()
}

// Stats returns all aggregates under a single lock.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats()
}

func (s *Store) stats() Stats {
	last, _ := s.ring.Last()
	return Stats{
		Len:    s.ring.Len(),
		Cap:    s.ring.Cap(),
		Mean:   s.ring.Mean(),
		StdDev: s.ring.StdDev(),
		Last:   last,
	}
}

// Read calls fn with the live view and the matching aggregates while
// holding the read lock. The view must not be retained after fn returns.
func (s *Store) Read(fn func(View, Stats)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.ring.View(), s.stats())
}

// Snapshot returns a copy of the stored values, oldest first.
func (s *Store) Snapshot() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.ring.View()
	return v.AppendTo(make([]float64, 0, v.Len()))
}

// Alpha returns the filter coefficient of the underlying ring.
func (s *Store) Alpha() float64 {
	return s.ring.Alpha()
}
