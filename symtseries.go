// Package symtseries implements symbolic aggregate approximation (SAX) for
// time-series data.
//
// SAX turns a fixed-size window of raw samples into a short string over a
// small alphabet: the window is z-normalized, averaged down to a handful of
// segments, and each segment mean is mapped to a letter through breakpoints
// that make every letter equally likely under a standard normal. The
// resulting words are cheap to store and compare, and the word distance
// lower-bounds the Euclidean distance of the normalized series, so words can
// prune candidates without false dismissals.
//
// # Core Features
//
//   - Sliding windows with incremental symbolization (sax.Window)
//   - One-shot encoding of complete series (sax.NewWordFromValues)
//   - Lower-bounding distance between words and live windows (sax.MinDist)
//   - Compact binary word codec with endianness-tagged framing
//   - Replayable snapshot scripts, optionally compressed (None, Zstd, S2, LZ4)
//   - Multi-series pattern matching over live sample streams (stream.Processor)
//
// # Basic Usage
//
// Streaming a series through a sliding window:
//
//	wn, _ := symtseries.NewWindow(16, 4, 8)
//	for _, v := range samples {
//	    word, err := wn.Append(v)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if word != nil {
//	        fmt.Println(word.String()) // e.g. "bdfg"
//	    }
//	}
//
// Comparing two SAX strings:
//
//	a, _ := symtseries.ParseWord("acca", 4)
//	a, _ = a.WithSampleCount(16)
//	b, _ := symtseries.ParseWord("bddb", 4)
//	fmt.Println(symtseries.MinDist(a, b))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the sax and
// stream packages, simplifying the most common use cases. For fine-grained
// control, binary serialization, and snapshots, use the sax, snapshot, and
// stream packages directly.
package symtseries

import (
	"github.com/Quadrocube/symtseries/internal/hash"
	"github.com/Quadrocube/symtseries/sax"
	"github.com/Quadrocube/symtseries/stream"
)

const version = "1.0.0"

// Version returns the library version.
func Version() string {
	return version
}

// NewWindow creates a sliding window that reduces n samples into words of w
// symbols over an alphabet of c letters.
//
// Parameters:
//   - n: Window size in samples, in [2, 4096] and divisible by w
//   - w: Word length in symbols, in [2, 2048]
//   - c: Alphabet cardinality, in [2, 16]
//
// Returns:
//   - *sax.Window: The created window, empty and not yet producing words.
//   - error: A validation error if the parameters are out of range.
//
// Example:
//
//	wn, err := symtseries.NewWindow(16, 4, 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewWindow(n, w, c int) (*sax.Window, error) {
	return sax.NewWindow(n, w, c)
}

// NewWordFromValues encodes a complete series into a SAX word in one shot.
//
// The series length must be divisible by w. The word remembers the sample
// count, so it is immediately comparable with MinDist.
//
// Parameters:
//   - values: The raw samples, all finite
//   - w: Word length in symbols
//   - c: Alphabet cardinality
//
// Returns:
//   - *sax.Word: The encoded word.
//   - error: A validation error if the parameters or samples are invalid.
func NewWordFromValues(values []float64, w, c int) (*sax.Word, error) {
	return sax.NewWordFromValues(values, w, c)
}

// ParseWord builds a word from its string form, such as "abba".
//
// Letters index the alphabet from 'a' and must all fall inside the
// cardinality. Parsed words carry no sample count; attach one with
// WithSampleCount before measuring distances against other counted words.
func ParseWord(s string, c int) (*sax.Word, error) {
	return sax.ParseWord(s, c)
}

// ParseWordBinary decodes a word from its binary form.
//
// The codec validates the frame strictly; see sax.ParseWordBinary for the
// layout and the error taxonomy.
func ParseWordBinary(data []byte) (*sax.Word, error) {
	return sax.ParseWordBinary(data)
}

// MinDist returns the lower-bounding distance between two operands, each a
// word or a window. It returns NaN when the operands are incomparable; see
// sax.MinDist.
func MinDist(a, b sax.WordSource) float64 {
	return sax.MinDist(a, b)
}

// MinDistBounds returns the lower-bounding distance together with its
// above/below decomposition; see sax.MinDistBounds.
func MinDistBounds(a, b sax.WordSource) (dist, above, below float64) {
	return sax.MinDistBounds(a, b)
}

// NewProcessor creates a multi-series stream processor whose per-series
// windows reduce n samples into words of w symbols over c letters.
//
// Parameters:
//   - n: Window size in samples for every tracked series
//   - w: Word length in symbols
//   - c: Alphabet cardinality
//   - opts: Optional configuration (stream.WithThreshold, stream.WithLogger,
//     stream.WithMaxSeries)
//
// Returns:
//   - *stream.Processor: The created processor.
//   - error: A validation or option error.
//
// Example:
//
//	p, err := symtseries.NewProcessor(16, 4, 8,
//	    stream.WithThreshold(0.5),
//	)
func NewProcessor(n, w, c int, opts ...stream.Option) (*stream.Processor, error) {
	return stream.New(n, w, c, opts...)
}

// SeriesID converts a series name to its 64-bit hash identifier.
//
// The stream processor keys series by xxHash64 of the name. The hash is
// deterministic across runs and processes, so precomputed IDs stay valid for
// the life of the data. Collisions are detected, reported as
// errs.ErrHashCollision, and never silently merged.
//
// Example:
//
//	id := symtseries.SeriesID("host1.cpu")
func SeriesID(name string) uint64 {
	return hash.ID(name)
}
