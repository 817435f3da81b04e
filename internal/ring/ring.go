// Package ring provides the fixed-capacity float64 ring buffer backing
// sliding windows.
//
// The ring keeps the most recent Cap() samples in arrival order. Once full,
// each push overwrites the oldest sample. Reset is a logical clear: occupancy
// drops to zero without touching the backing storage.
//
// The ring performs no internal locking. Callers that share a ring across
// goroutines must serialize access themselves.
package ring

import (
	"fmt"
	"iter"

	"github.com/Quadrocube/symtseries/errs"
)

// Ring is a fixed-capacity circular buffer of float64 samples.
type Ring struct {
	data []float64
	head int // next write position
	size int
}

// New creates a ring buffer holding up to capacity samples.
//
// Returns errs.ErrInvalidCapacity if capacity is not positive.
func New(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCapacity, capacity)
	}

	return &Ring{data: make([]float64, capacity)}, nil
}

// Push appends v, evicting the oldest sample when the ring is full.
func (r *Ring) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.size < len(r.data) {
		r.size++
	}
}

// Reset clears the ring. The next Push starts a fresh fill; previously stored
// values are unreachable but not zeroed.
func (r *Ring) Reset() {
	r.head = 0
	r.size = 0
}

// Len returns the number of buffered samples.
func (r *Ring) Len() int { return r.size }

// Cap returns the fixed capacity.
func (r *Ring) Cap() int { return len(r.data) }

// Full reports whether the ring holds Cap() samples.
func (r *Ring) Full() bool { return r.size == len(r.data) }

// At returns the i-th oldest sample. It panics if i is out of [0, Len()).
func (r *Ring) At(i int) float64 {
	if i < 0 || i >= r.size {
		panic(fmt.Sprintf("ring: index %d out of range [0, %d)", i, r.size))
	}

	return r.data[(r.start()+i)%len(r.data)]
}

// CopyInto copies the buffered samples into dst, oldest first, and returns
// the number of samples copied. dst shorter than Len() receives a truncated
// prefix.
func (r *Ring) CopyInto(dst []float64) int {
	n := r.size
	if len(dst) < n {
		n = len(dst)
	}

	start := r.start()
	for i := 0; i < n; i++ {
		dst[i] = r.data[(start+i)%len(r.data)]
	}

	return n
}

// Values returns a restartable iterator over the buffered samples, oldest
// first. The ring must not be modified during iteration.
func (r *Ring) Values() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		start := r.start()
		for i := 0; i < r.size; i++ {
			if !yield(r.data[(start+i)%len(r.data)]) {
				return
			}
		}
	}
}

// start returns the index of the oldest sample.
func (r *Ring) start() int {
	if r.size == len(r.data) {
		return r.head
	}

	return 0
}
