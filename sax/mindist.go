package sax

import "math"

// WordSource is anything MinDist can read a word out of: a *Word is its own
// source, a *Window supplies its current word (nil while filling). The
// interface is closed; both implementations live in this package.
type WordSource interface {
	currentWord() *Word
}

func (a *Word) currentWord() *Word { return a }

func (wn *Window) currentWord() *Word {
	if wn == nil {
		return nil
	}

	return wn.cur
}

// MinDist returns the SAX lower bound on the Euclidean distance between the
// z-normalized series behind two words.
//
// The bound sums, per position, the squared breakpoint gap between the two
// symbols' regions; adjacent or equal regions contribute nothing. The sum is
// scaled by n/w, where n is taken from whichever operand knows its sample
// count (a's takes precedence) and w is the shared word length.
//
// The result is NaN, not an error, when the operands are incomparable:
// either source is nil or not yet ready, word lengths or cardinalities
// differ, or neither word knows its sample count. NaN never compares below
// a threshold, so incomparable pairs drop out of matching naturally.
func MinDist(a, b WordSource) float64 {
	dist, _, _ := MinDistBounds(a, b)

	return dist
}

// MinDistBounds returns the MinDist bound together with its one-sided
// decomposition: above collects the positions where a's symbol sits in a
// higher region than b's, below the opposite ones. Each side is scaled like
// the full bound, so dist² == above² + below². Band-style monitors use the
// sides to tell "breached upward" from "breached downward" with one pass.
//
// The three results are NaN together exactly when MinDist would be NaN.
func MinDistBounds(a, b WordSource) (dist, above, below float64) {
	nan := math.NaN()
	if a == nil || b == nil {
		return nan, nan, nan
	}

	wa, wb := a.currentWord(), b.currentWord()
	if wa == nil || wb == nil {
		return nan, nan, nan
	}
	if len(wa.symbols) != len(wb.symbols) || wa.c != wb.c {
		return nan, nan, nan
	}

	n := wa.nValues
	if n == 0 {
		n = wb.nValues
	}
	if n == 0 {
		return nan, nan, nan
	}

	breaks := breakpoints[wa.c]

	var sumAbove, sumBelow float64
	for k := 0; k < len(wa.symbols); k++ {
		i, j := wa.symbols[k], wb.symbols[k]
		switch {
		case i > j+1:
			gap := breaks[i-1] - breaks[j]
			sumAbove += gap * gap
		case j > i+1:
			gap := breaks[j-1] - breaks[i]
			sumBelow += gap * gap
		}
	}

	scale := float64(n) / float64(len(wa.symbols))
	above = math.Sqrt(scale * sumAbove)
	below = math.Sqrt(scale * sumBelow)
	dist = math.Sqrt(scale * (sumAbove + sumBelow))

	return dist, above, below
}
