package sax

import "sort"

// Symbol is a single letter of a SAX word, stored as its region index.
// Symbol 0 is the lowest region of the normal distribution; region index and
// alphabet letter agree, so symbol s renders as byte 'a'+s.
type Symbol uint8

// Limits shared by every constructor in the package. Window sizes and word
// lengths are exclusive of 1 on the low end: a window of one sample or a word
// of one symbol carries no shape information.
const (
	// MinWindowSize and MaxWindowSize bound the number of samples per window
	// (and the array length accepted by NewWordFromValues).
	MinWindowSize = 2
	MaxWindowSize = 4096

	// MinWordLen and MaxWordLen bound the number of symbols per word.
	MinWordLen = 2
	MaxWordLen = 2048

	// MinCardinality and MaxCardinality bound the alphabet size. The upper
	// limit matches the 16-letter alphabet 'a'..'p'.
	MinCardinality = 2
	MaxCardinality = 16

	// StatEps is the flat-window guard: when the standard deviation of a
	// window falls below this threshold, every normalized value is treated
	// as 0 and the whole word collapses to the middle region. This keeps
	// near-constant inputs from amplifying numeric noise into symbols.
	StatEps = 1e-2
)

// breakpoints holds, per cardinality c, the c-1 ascending values that split
// the standard normal distribution into c equiprobable regions. The tables
// are Phi^-1(i/c) for i in 1..c-1, precomputed to full float64 precision and
// exactly symmetric: breakpoints[c][i] == -breakpoints[c][c-2-i].
var breakpoints = [MaxCardinality + 1][]float64{
	2:  {0.0},
	3:  {-0.43072729929545733, 0.43072729929545733},
	4:  {-0.6744897501960817, 0.0, 0.6744897501960817},
	5:  {-0.8416212335729144, -0.2533471031357998, 0.2533471031357998, 0.8416212335729144},
	6:  {-0.9674215661017014, -0.43072729929545733, 0.0, 0.43072729929545733, 0.9674215661017014},
	7:  {-1.0675705238781414, -0.5659488219328631, -0.18001236979270493, 0.18001236979270493, 0.5659488219328631, 1.0675705238781414},
	8:  {-1.1503493803760079, -0.6744897501960817, -0.31863936396437514, 0.0, 0.31863936396437514, 0.6744897501960817, 1.1503493803760079},
	9:  {-1.2206403488473494, -0.7647096737863872, -0.43072729929545733, -0.1397102988818621, 0.1397102988818621, 0.43072729929545733, 0.7647096737863872, 1.2206403488473494},
	10: {-1.2815515655446008, -0.8416212335729144, -0.5244005127080407, -0.2533471031357998, 0.0, 0.2533471031357998, 0.5244005127080407, 0.8416212335729144, 1.2815515655446008},
	11: {-1.3351777361189365, -0.9084578685373854, -0.6045853465832371, -0.3487556955170447, -0.11418529432142821, 0.11418529432142821, 0.3487556955170447, 0.6045853465832371, 0.9084578685373854, 1.3351777361189365},
	12: {-1.382994127100638, -0.9674215661017014, -0.6744897501960817, -0.43072729929545733, -0.21042839424792484, 0.0, 0.21042839424792484, 0.43072729929545733, 0.6744897501960817, 0.9674215661017014, 1.382994127100638},
	13: {-1.4260768722728479, -1.0200762327862016, -0.7363159173761297, -0.5024022233733554, -0.29338123212119355, -0.09655861528963908, 0.09655861528963908, 0.29338123212119355, 0.5024022233733554, 0.7363159173761297, 1.0200762327862016, 1.4260768722728479},
	14: {-1.4652337926855232, -1.0675705238781414, -0.7916386077433746, -0.5659488219328631, -0.3661063568005697, -0.18001236979270493, 0.0, 0.18001236979270493, 0.3661063568005697, 0.5659488219328631, 0.7916386077433746, 1.0675705238781414, 1.4652337926855232},
	15: {-1.5010859460440247, -1.1107716166367856, -0.8416212335729144, -0.6229257232100878, -0.43072729929545733, -0.2533471031357998, -0.08365173390712907, 0.08365173390712907, 0.2533471031357998, 0.43072729929545733, 0.6229257232100878, 0.8416212335729144, 1.1107716166367856, 1.5010859460440247},
	16: {-1.5341205443525459, -1.1503493803760079, -0.8871465590188758, -0.6744897501960817, -0.4887764111146694, -0.31863936396437514, -0.15731068461017067, 0.0, 0.15731068461017067, 0.31863936396437514, 0.4887764111146694, 0.6744897501960817, 0.8871465590188758, 1.1503493803760079, 1.5341205443525459},
}

// symbolFor maps a normalized value to its region index for cardinality c.
//
// The symbol is the number of breakpoints at or below v: values below the
// first breakpoint map to 0, values at or above the last map to c-1, and a
// value exactly on a breakpoint belongs to the upper region. The mapping is
// total for every finite input; the caller guarantees c is in range.
func symbolFor(v float64, c int) Symbol {
	breaks := breakpoints[c]
	idx := sort.Search(len(breaks), func(i int) bool { return breaks[i] > v })

	return Symbol(idx)
}

// Breakpoints returns the breakpoint table for cardinality c as a fresh
// slice; the shared table stays immutable.
//
// Parameters:
//   - c: Alphabet cardinality in [MinCardinality, MaxCardinality]
//
// Returns:
//   - []float64: The c-1 ascending region boundaries
//   - error: errs.ErrInvalidCardinality when c is out of range
func Breakpoints(c int) ([]float64, error) {
	if err := validateCardinality(c); err != nil {
		return nil, err
	}

	out := make([]float64, len(breakpoints[c]))
	copy(out, breakpoints[c])

	return out, nil
}
