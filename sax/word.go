package sax

import (
	"fmt"

	"github.com/Quadrocube/symtseries/errs"
	"github.com/Quadrocube/symtseries/internal/hash"
	"github.com/Quadrocube/symtseries/internal/pool"
)

// Word is an immutable SAX word: a fixed sequence of symbols drawn from one
// alphabet, optionally annotated with the number of raw samples it was
// reduced from. The sample count feeds the MinDist scaling factor; words
// parsed from strings carry no count until WithSampleCount attaches one.
//
// All fields are private and every constructor validates its input, so a
// reachable Word is always well formed: 0 <= symbol < cardinality holds for
// every position.
type Word struct {
	symbols []Symbol
	c       int
	nValues int
}

// NewWordFromValues reduces a raw sample array straight to a word, without
// going through a sliding window. The whole array is treated as one window:
// it is z-normalized against its own statistics, averaged into w segments,
// and symbolized with cardinality c.
//
// Parameters:
//   - values: Raw samples; the length must lie in [MinWindowSize, MaxWindowSize]
//     and be divisible by w, and every sample must be finite
//   - w: Number of symbols in the resulting word
//   - c: Alphabet cardinality in [MinCardinality, MaxCardinality]
//
// Returns:
//   - *Word: The reduced word, with its sample count set to len(values)
//   - error: A validation error from the errs package, nil on success
//
// Example:
//
//	word, err := sax.NewWordFromValues([]float64{-2, -1, 1, 2}, 2, 4)
//	// word.String() == "ad"
func NewWordFromValues(values []float64, w, c int) (*Word, error) {
	if err := ValidateParams(len(values), w, c); err != nil {
		return nil, err
	}
	for i := 0; i < len(values); i++ {
		if err := validateSample(values[i]); err != nil {
			return nil, fmt.Errorf("value at index %d: %w", i, err)
		}
	}

	word := &Word{
		symbols: make([]Symbol, w),
		c:       c,
		nValues: len(values),
	}
	reduceInto(values, word.symbols, c)

	return word, nil
}

// ParseWord builds a word from its string form, one byte per symbol.
//
// Every byte must fall in 'a'..'a'+c-1 and the string must satisfy the word
// length limits. The parsed word has no sample count: use WithSampleCount
// before feeding it to MinDist against another count-free word.
//
// Parameters:
//   - s: Symbol string, e.g. "abba"
//   - c: Alphabet cardinality in [MinCardinality, MaxCardinality]
//
// Returns:
//   - *Word: The parsed word
//   - error: A validation error from the errs package, nil on success
func ParseWord(s string, c int) (*Word, error) {
	if err := validateCardinality(c); err != nil {
		return nil, err
	}
	if len(s) < MinWordLen {
		return nil, fmt.Errorf("%w: %d symbols, want at least %d", errs.ErrWordTooShort, len(s), MinWordLen)
	}
	if len(s) > MaxWordLen {
		return nil, fmt.Errorf("%w: %d symbols, want at most %d", errs.ErrInvalidWordLength, len(s), MaxWordLen)
	}

	symbols := make([]Symbol, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'a' || ch >= 'a'+byte(c) {
			return nil, fmt.Errorf("%w: %q at position %d is outside alphabet of size %d", errs.ErrInvalidSymbol, ch, i, c)
		}
		symbols[i] = Symbol(ch - 'a')
	}

	return &Word{symbols: symbols, c: c}, nil
}

// Len returns the number of symbols in the word.
func (a *Word) Len() int { return len(a.symbols) }

// Cardinality returns the alphabet size the word was built with.
func (a *Word) Cardinality() int { return a.c }

// SampleCount returns the number of raw samples the word was reduced from,
// or 0 when unknown (parsed words).
func (a *Word) SampleCount() int { return a.nValues }

// Symbols returns a copy of the symbol sequence.
func (a *Word) Symbols() []Symbol {
	out := make([]Symbol, len(a.symbols))
	copy(out, a.symbols)

	return out
}

// String renders the word as its letter form, 'a' for the lowest region.
func (a *Word) String() string {
	buf := make([]byte, len(a.symbols))
	for i := 0; i < len(a.symbols); i++ {
		buf[i] = 'a' + byte(a.symbols[i])
	}

	return string(buf)
}

// StringChecked renders the word like String but verifies every symbol fits
// both the word's own alphabet and the letter range before formatting.
//
// Constructors make out-of-range symbols unreachable through the public API;
// this variant exists for serialization boundaries that prefer a hard error
// over emitting a corrupt letter.
func (a *Word) StringChecked() (string, error) {
	buf := make([]byte, len(a.symbols))
	for i := 0; i < len(a.symbols); i++ {
		s := a.symbols[i]
		if int(s) >= a.c || s >= MaxCardinality {
			return "", fmt.Errorf("%w: symbol %d at position %d exceeds cardinality %d", errs.ErrUnrepresentableSymbol, s, i, a.c)
		}
		buf[i] = 'a' + byte(s)
	}

	return string(buf), nil
}

// Equal reports whether two words have the same cardinality and the same
// symbol sequence. Sample counts are deliberately ignored: a parsed "caa"
// equals a window-produced "caa".
func (a *Word) Equal(other *Word) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.c != other.c || len(a.symbols) != len(other.symbols) {
		return false
	}
	for i := 0; i < len(a.symbols); i++ {
		if a.symbols[i] != other.symbols[i] {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of the word.
func (a *Word) Clone() *Word {
	out := &Word{
		symbols: make([]Symbol, len(a.symbols)),
		c:       a.c,
		nValues: a.nValues,
	}
	copy(out.symbols, a.symbols)

	return out
}

// WithSampleCount returns a copy of the word annotated with the number of
// raw samples it stands for. The count must satisfy the same constraints a
// window construction would enforce: in range and divisible by the word
// length. The receiver is left untouched.
func (a *Word) WithSampleCount(n int) (*Word, error) {
	if n < MinWindowSize || n > MaxWindowSize {
		return nil, fmt.Errorf("%w: %d samples, want %d..%d", errs.ErrInvalidWindowSize, n, MinWindowSize, MaxWindowSize)
	}
	if n%len(a.symbols) != 0 {
		return nil, fmt.Errorf("%w: %d samples into %d symbols", errs.ErrIndivisibleWindow, n, len(a.symbols))
	}

	out := a.Clone()
	out.nValues = n

	return out, nil
}

// Fingerprint returns a 64-bit hash of the word's cardinality and symbol
// sequence, suitable for pattern-set deduplication. Sample counts do not
// participate, mirroring Equal.
func (a *Word) Fingerprint() uint64 {
	buf, release := pool.GetByteSlice(1 + len(a.symbols))
	defer release()

	buf[0] = byte(a.c)
	for i := 0; i < len(a.symbols); i++ {
		buf[1+i] = byte(a.symbols[i])
	}

	return hash.Bytes(buf)
}
