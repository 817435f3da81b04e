package sax

import (
	"github.com/Quadrocube/symtseries/internal/pool"
	"github.com/Quadrocube/symtseries/internal/ring"
)

// Window is a fixed-size sliding window over a sample stream that maintains
// the SAX word of its current contents. Each appended sample evicts the
// oldest one once the window is full, and the word is recomputed from the
// full window with fresh normalization statistics on every slide.
//
// A Window is not safe for concurrent use; callers that share one across
// goroutines serialize access themselves (stream.Processor does).
type Window struct {
	buf *ring.Ring
	cur *Word

	n int
	w int
	c int
}

// NewWindow creates a sliding window that reduces n samples into w symbols
// over an alphabet of c letters.
//
// Parameters:
//   - n: Window size in samples, in [MinWindowSize, MaxWindowSize], divisible by w
//   - w: Word length in symbols, in [MinWordLen, MaxWordLen]
//   - c: Alphabet cardinality in [MinCardinality, MaxCardinality]
//
// Returns:
//   - *Window: An empty window
//   - error: A validation error from the errs package, nil on success
func NewWindow(n, w, c int) (*Window, error) {
	if err := ValidateParams(n, w, c); err != nil {
		return nil, err
	}

	buf, err := ring.New(n)
	if err != nil {
		return nil, err
	}

	return &Window{buf: buf, n: n, w: w, c: c}, nil
}

// Append pushes one sample into the window, evicting the oldest sample when
// the window is already full.
//
// Once the window holds n samples, every Append recomputes the word and
// returns it. The returned word is a borrowed view owned by the window: it
// is rewritten in place by the next Append and must be cloned (or taken via
// Word) to outlive it. While the window is still filling, Append returns
// (nil, nil).
//
// Non-finite samples are rejected with errs.ErrNonFiniteValue and leave the
// window untouched.
func (wn *Window) Append(value float64) (*Word, error) {
	if err := validateSample(value); err != nil {
		return nil, err
	}

	wn.buf.Push(value)
	if !wn.buf.Full() {
		return nil, nil
	}
	wn.reduce()

	return wn.cur, nil
}

// AppendSlice pushes a batch of samples and reduces at most once, after the
// last one. It returns whatever Append would have returned for that final
// sample: the borrowed current word once the window is full, (nil, nil)
// before that. An empty batch is a no-op that reports the current state.
//
// Validation is all-or-nothing: every sample is checked before any is
// buffered, so a non-finite value anywhere in the batch leaves the window
// exactly as it was.
func (wn *Window) AppendSlice(values []float64) (*Word, error) {
	for i := 0; i < len(values); i++ {
		if err := validateSample(values[i]); err != nil {
			return nil, err
		}
	}

	// Only the last n samples can remain buffered afterwards.
	if len(values) > wn.n {
		values = values[len(values)-wn.n:]
	}
	for i := 0; i < len(values); i++ {
		wn.buf.Push(values[i])
	}

	if !wn.buf.Full() {
		return nil, nil
	}
	if len(values) > 0 {
		wn.reduce()
	}

	return wn.cur, nil
}

// Reset discards all buffered samples and the current word, returning the
// window to its freshly constructed state. The reduction parameters are
// kept.
func (wn *Window) Reset() {
	wn.buf.Reset()
	wn.cur = nil
}

// Ready reports whether the window has been filled at least once since
// construction or Reset, i.e. whether it has a current word.
func (wn *Window) Ready() bool { return wn.cur != nil }

// CurrentWord returns the window's own word, or nil while the window is
// still filling. The returned word is borrowed: the next Append rewrites it
// in place. Use Word for a stable copy.
func (wn *Window) CurrentWord() *Word { return wn.cur }

// Word returns an independent copy of the current word, or nil while the
// window is still filling.
func (wn *Window) Word() *Word {
	if wn.cur == nil {
		return nil
	}

	return wn.cur.Clone()
}

// String renders the current word's letter form, or the empty string while
// the window is still filling.
func (wn *Window) String() string {
	if wn.cur == nil {
		return ""
	}

	return wn.cur.String()
}

// Size returns the window size n in samples.
func (wn *Window) Size() int { return wn.n }

// WordLen returns the word length w in symbols.
func (wn *Window) WordLen() int { return wn.w }

// Cardinality returns the alphabet size c.
func (wn *Window) Cardinality() int { return wn.c }

// BufferedValues returns the samples currently held by the window, oldest
// first. The slice is a copy; it holds fewer than n samples while the
// window is filling. Snapshot writers use it to persist exact reduction
// state.
func (wn *Window) BufferedValues() []float64 {
	out := make([]float64, wn.buf.Len())
	wn.buf.CopyInto(out)

	return out
}

// reduce recomputes the current word from the full ring contents. The word
// is allocated on the first fill and rewritten in place afterwards, which
// is what makes CurrentWord a borrowed view.
func (wn *Window) reduce() {
	values, release := pool.GetFloat64Slice(wn.n)
	defer release()

	wn.buf.CopyInto(values)

	if wn.cur == nil {
		wn.cur = &Word{symbols: make([]Symbol, wn.w), c: wn.c, nValues: wn.n}
	}
	reduceInto(values, wn.cur.symbols, wn.c)
}
