package sample

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_StatsSnapshot(t *testing.T) {
	s, err := NewStore(4, 1)
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 0, st.Len)
	assert.Equal(t, 4, st.Cap)
	assert.True(t, math.IsNaN(st.Mean))
	assert.True(t, math.IsNaN(st.StdDev))

	s.Append(Sample{Z: 8})
	s.Append(Sample{Z: 8})
	st = s.Stats()
	assert.Equal(t, 2, st.Len)
	assert.Equal(t, 8.0, st.Mean)
	assert.Equal(t, 0.0, st.StdDev)
	assert.Equal(t, 8.0, st.Last)
	assert.Equal(t, []float64{8, 8}, s.Snapshot())
}

func TestStore_InvalidCapacity(t *testing.T) {
	_, err := NewStore(3, 0.5)
	assert.ErrorIs(t, err, ErrCapacity)
}

// Readers racing a writer must always see sums that agree with storage.
func TestStore_ConcurrentReadersSeeConsistentState(t *testing.T) {
	s, err := NewStore(16, 0.9)
	require.NoError(t, err)

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			s.Append(Sample{X: int16(i % 300), Y: int16(i % 17), Z: 500})
		}
		close(done)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				s.Read(func(v View, st Stats) {
					if st.Len == 0 {
						return
					}
					var sum float64
					for i := 0; i < v.Len(); i++ {
						sum += v.At(i)
					}
					assert.Equal(t, st.Len, v.Len())
					assert.LessOrEqual(t, st.Len, 16)
					assert.InDelta(t, sum/float64(v.Len()), st.Mean, 1e-6)
				})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, s.Len())
}
