package symtseries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Quadrocube/symtseries/errs"
	"github.com/Quadrocube/symtseries/stream"
)

// TestVersion verifies the version string is stable and well-formed
func TestVersion(t *testing.T) {
	require.Equal(t, "1.0.0", Version())
}

// TestNewWindow verifies window creation through the facade
func TestNewWindow(t *testing.T) {
	wn, err := NewWindow(16, 4, 8)
	require.NoError(t, err)
	require.NotNil(t, wn)
	require.Equal(t, 16, wn.Size())

	_, err = NewWindow(15, 4, 8)
	require.ErrorIs(t, err, errs.ErrIndivisibleWindow)
}

// TestNewWordFromValues verifies one-shot encoding through the facade
func TestNewWordFromValues(t *testing.T) {
	word, err := NewWordFromValues([]float64{-2, -1, 1, 2}, 2, 4)
	require.NoError(t, err)
	require.Equal(t, "ad", word.String())
	require.Equal(t, 4, word.SampleCount())
}

// TestParseWord verifies string parsing through the facade
func TestParseWord(t *testing.T) {
	word, err := ParseWord("abba", 4)
	require.NoError(t, err)
	require.Equal(t, "abba", word.String())
	require.Zero(t, word.SampleCount())

	_, err = ParseWord("abz", 4)
	require.ErrorIs(t, err, errs.ErrInvalidSymbol)
}

// TestParseWordBinary verifies the binary codec round trip through the facade
func TestParseWordBinary(t *testing.T) {
	word, err := NewWordFromValues([]float64{-2, -1, 1, 2}, 2, 4)
	require.NoError(t, err)

	data, err := word.MarshalBinary()
	require.NoError(t, err)

	parsed, err := ParseWordBinary(data)
	require.NoError(t, err)
	require.True(t, word.Equal(parsed))
	require.Equal(t, 4, parsed.SampleCount())
}

// TestMinDist verifies distance measurement through the facade
func TestMinDist(t *testing.T) {
	a, err := NewWordFromValues([]float64{-2, -1, 1, 2}, 2, 4)
	require.NoError(t, err)
	b, err := NewWordFromValues([]float64{2, 1, -1, -2}, 2, 4)
	require.NoError(t, err)

	require.Equal(t, 0.0, MinDist(a, a))
	require.Greater(t, MinDist(a, b), 0.0)

	// Parsed words have no sample count, so the scale is unknown.
	pa, err := ParseWord("ad", 4)
	require.NoError(t, err)
	pb, err := ParseWord("da", 4)
	require.NoError(t, err)
	require.True(t, math.IsNaN(MinDist(pa, pb)))

	dist, above, below := MinDistBounds(a, b)
	require.InDelta(t, dist*dist, above*above+below*below, 1e-9)
}

// TestNewProcessor verifies processor creation and matching through the facade
func TestNewProcessor(t *testing.T) {
	p, err := NewProcessor(4, 2, 4, stream.WithThreshold(0.5))
	require.NoError(t, err)
	require.NotNil(t, p)

	pattern, err := ParseWord("ad", 4)
	require.NoError(t, err)
	require.NoError(t, p.AddPattern("updown", pattern))

	var matches []stream.Match
	for _, v := range []float64{-2, -1, 1, 2} {
		matches, err = p.Observe("cpu", v)
		require.NoError(t, err)
	}
	require.Len(t, matches, 1)
	require.Equal(t, "updown", matches[0].Pattern)
}

// TestSeriesID verifies hash generation is deterministic
func TestSeriesID(t *testing.T) {
	name := "host1.cpu"

	id1 := SeriesID(name)
	id2 := SeriesID(name)

	require.Equal(t, id1, id2, "SeriesID should be deterministic")
	require.NotZero(t, id1, "SeriesID should not be zero")

	require.NotEqual(t, id1, SeriesID("host2.cpu"))
}
