package sax

import (
	"fmt"
	"math"

	"github.com/Quadrocube/symtseries/errs"
)

// ValidateParams checks an (n, w, c) triple without constructing anything:
// sample count in range, word length in range, sample count divisible by
// word length, cardinality in range. NewWindow and NewWordFromValues apply
// exactly this check; it is exported for callers that create windows lazily
// and want configuration errors up front.
func ValidateParams(n, w, c int) error {
	if n < MinWindowSize || n > MaxWindowSize {
		return fmt.Errorf("%w: %d samples, want %d..%d", errs.ErrInvalidWindowSize, n, MinWindowSize, MaxWindowSize)
	}
	if w < MinWordLen || w > MaxWordLen {
		return fmt.Errorf("%w: %d symbols, want %d..%d", errs.ErrInvalidWordLength, w, MinWordLen, MaxWordLen)
	}
	if n%w != 0 {
		return fmt.Errorf("%w: %d samples into %d symbols", errs.ErrIndivisibleWindow, n, w)
	}

	return validateCardinality(c)
}

func validateCardinality(c int) error {
	if c < MinCardinality || c > MaxCardinality {
		return fmt.Errorf("%w: %d, want %d..%d", errs.ErrInvalidCardinality, c, MinCardinality, MaxCardinality)
	}

	return nil
}

// validateSample rejects NaN and both infinities. Non-finite samples have no
// place on the normal scale and would poison every later mean.
func validateSample(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", errs.ErrNonFiniteValue, v)
	}

	return nil
}
