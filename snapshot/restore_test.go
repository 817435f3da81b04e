package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Quadrocube/symtseries/errs"
	"github.com/Quadrocube/symtseries/format"
	"github.com/Quadrocube/symtseries/sax"
)

func TestRestore_EmptyInput(t *testing.T) {
	snap, err := Restore(strings.NewReader(""))

	require.NoError(t, err)
	require.Empty(t, snap.Windows)
	require.Empty(t, snap.Words)
}

func TestRestore_WindowRoundTrip(t *testing.T) {
	original, err := sax.NewWindow(4, 2, 4)
	require.NoError(t, err)
	_, err = original.AppendSlice([]float64{-2, -1, 1, 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	sw, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, sw.WriteWindow("cpu", original))
	require.NoError(t, sw.Close())

	snap, err := Restore(&buf)
	require.NoError(t, err)
	require.Len(t, snap.Windows, 1)

	restored := snap.Windows["cpu"]
	require.NotNil(t, restored)
	require.Equal(t, original.Size(), restored.Size())
	require.Equal(t, original.WordLen(), restored.WordLen())
	require.Equal(t, original.Cardinality(), restored.Cardinality())
	require.Equal(t, original.BufferedValues(), restored.BufferedValues())
	require.True(t, restored.Ready())
	require.True(t, original.CurrentWord().Equal(restored.CurrentWord()))
}

func TestRestore_PartialWindowRoundTrip(t *testing.T) {
	original, err := sax.NewWindow(4, 2, 4)
	require.NoError(t, err)
	_, err = original.AppendSlice([]float64{0.25, -7})
	require.NoError(t, err)

	var buf bytes.Buffer
	sw, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, sw.WriteWindow("cpu", original))
	require.NoError(t, sw.Close())

	snap, err := Restore(&buf)
	require.NoError(t, err)

	restored := snap.Windows["cpu"]
	require.Equal(t, []float64{0.25, -7}, restored.BufferedValues())
	require.False(t, restored.Ready())
	require.Nil(t, restored.CurrentWord())
}

func TestRestore_WordRoundTrip(t *testing.T) {
	word, err := sax.ParseWord("abba", 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	sw, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, sw.WriteWord("pattern", word))
	require.NoError(t, sw.Close())

	snap, err := Restore(&buf)
	require.NoError(t, err)
	require.Len(t, snap.Words, 1)

	restored := snap.Words["pattern"]
	require.True(t, word.Equal(restored))
	require.Equal(t, 0, restored.SampleCount())
}

func TestRestore_FloatValuesExact(t *testing.T) {
	// Shortest round-trip formatting must reproduce every bit.
	values := []float64{0.1, 1e-17 + 1, 12345678901234.5, -1e-07}

	original, err := sax.NewWindow(4, 2, 4)
	require.NoError(t, err)
	_, err = original.AppendSlice(values)
	require.NoError(t, err)

	var buf bytes.Buffer
	sw, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, sw.WriteWindow("cpu", original))
	require.NoError(t, sw.Close())

	snap, err := Restore(&buf)
	require.NoError(t, err)
	require.Equal(t, original.BufferedValues(), snap.Windows["cpu"].BufferedValues())
}

func TestRestore_AllCodecs(t *testing.T) {
	codecs := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, codec := range codecs {
		t.Run(codec.String(), func(t *testing.T) {
			original, err := sax.NewWindow(8, 4, 8)
			require.NoError(t, err)
			_, err = original.AppendSlice([]float64{5, 3, 8, 1, 9, 2, 7, 4})
			require.NoError(t, err)
			pattern, err := sax.ParseWord("adba", 4)
			require.NoError(t, err)

			var buf bytes.Buffer
			sw, err := NewWriter(&buf, WithCompression(codec))
			require.NoError(t, err)
			require.NoError(t, sw.WriteWindow("series.cpu", original))
			require.NoError(t, sw.WriteWord("series.pattern", pattern))
			require.NoError(t, sw.Close())

			snap, err := Restore(&buf)
			require.NoError(t, err)

			restored := snap.Windows["series.cpu"]
			require.NotNil(t, restored)
			require.Equal(t, original.BufferedValues(), restored.BufferedValues())
			require.True(t, original.CurrentWord().Equal(restored.CurrentWord()))
			require.True(t, pattern.Equal(snap.Words["series.pattern"]))
		})
	}
}

func TestRestore_RestoredWindowContinuesIdentically(t *testing.T) {
	// A restored window must not just look the same, it must keep sliding
	// the same: feed both windows the same continuation and compare words.
	original, err := sax.NewWindow(8, 4, 8)
	require.NoError(t, err)
	_, err = original.AppendSlice([]float64{5, 3, 8, 1, 9, 2, 7, 4, 6, 0})
	require.NoError(t, err)

	var buf bytes.Buffer
	sw, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, sw.WriteWindow("cpu", original))
	require.NoError(t, sw.Close())

	snap, err := Restore(&buf)
	require.NoError(t, err)
	restored := snap.Windows["cpu"]

	continuation := []float64{3.5, -1, 4.25, 8, 0.5}
	for _, v := range continuation {
		origWord, err := original.Append(v)
		require.NoError(t, err)
		restWord, err := restored.Append(v)
		require.NoError(t, err)
		require.True(t, origWord.Equal(restWord), "diverged at %v", v)
	}
}

func TestRestore_GuardSkipsBoundKeys(t *testing.T) {
	script := "if cpu == nil then cpu = window.new(4, 2, 4) end\n" +
		"if cpu == nil then cpu = window.new(8, 2, 4) end\n" +
		"if cpu == nil then cpu = word.new(\"ab\", 4) end\n"

	snap, err := Restore(strings.NewReader(script))

	require.NoError(t, err)
	require.Len(t, snap.Windows, 1)
	require.Empty(t, snap.Words)
	require.Equal(t, 4, snap.Windows["cpu"].Size(), "first constructor wins")
}

func TestRestore_CommentsAndBlankLines(t *testing.T) {
	script := "-- state captured before shutdown\n" +
		"\n" +
		"if cpu == nil then cpu = window.new(4, 2, 4) end\n" +
		"   \n" +
		"cpu:add({1, 2})\n" +
		"-- trailing note\n"

	snap, err := Restore(strings.NewReader(script))

	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, snap.Windows["cpu"].BufferedValues())
}

func TestRestore_IrregularSpacing(t *testing.T) {
	script := "  if cpu == nil then cpu = window.new( 4 , 2 , 4 ) end  \n" +
		"cpu:add({ 1 ,  2.5 })\n"

	snap, err := Restore(strings.NewReader(script))

	require.NoError(t, err)
	require.Equal(t, []float64{1, 2.5}, snap.Windows["cpu"].BufferedValues())
}

func TestRestore_ClearStatement(t *testing.T) {
	script := "if cpu == nil then cpu = window.new(4, 2, 4) end\n" +
		"cpu:add({1, 2, 3, 4})\n" +
		"cpu:clear()\n" +
		"cpu:add({5, 6})\n"

	snap, err := Restore(strings.NewReader(script))

	require.NoError(t, err)
	require.Equal(t, []float64{5, 6}, snap.Windows["cpu"].BufferedValues())
	require.False(t, snap.Windows["cpu"].Ready())
}

func TestRestore_EmptyAddIsNoOp(t *testing.T) {
	script := "if cpu == nil then cpu = window.new(4, 2, 4) end\n" +
		"cpu:add({})\n"

	snap, err := Restore(strings.NewReader(script))

	require.NoError(t, err)
	require.Empty(t, snap.Windows["cpu"].BufferedValues())
}

func TestRestore_MalformedStatements(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"unrecognized statement", "hello world\n"},
		{"guard missing", "if cpu then cpu = window.new(4, 2, 4) end\n"},
		{"assigns different key", "if cpu == nil then mem = window.new(4, 2, 4) end\n"},
		{"unterminated constructor", "if cpu == nil then cpu = window.new(4, 2, 4)\n"},
		{"unknown factory", "if cpu == nil then cpu = widget.new(4, 2, 4) end\n"},
		{"window arity", "if cpu == nil then cpu = window.new(4, 2) end\n"},
		{"window bad parameter", "if cpu == nil then cpu = window.new(4, 2, x) end\n"},
		{"word unquoted string", "if p == nil then p = word.new(ad, 4) end\n"},
		{"word unterminated string", "if p == nil then p = word.new(\"ad) end\n"},
		{"word missing cardinality", "if p == nil then p = word.new(\"ad\") end\n"},
		{"word bad cardinality", "if p == nil then p = word.new(\"ad\", x) end\n"},
		{"method on unknown key", "cpu:clear()\n"},
		{"method on word", "if p == nil then p = word.new(\"ad\", 4) end\np:clear()\n"},
		{"unknown method", "if cpu == nil then cpu = window.new(4, 2, 4) end\ncpu:frobnicate()\n"},
		{"bad sample", "if cpu == nil then cpu = window.new(4, 2, 4) end\ncpu:add({1, x})\n"},
		{"add missing braces", "if cpu == nil then cpu = window.new(4, 2, 4) end\ncpu:add(1, 2)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Restore(strings.NewReader(tt.script))

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrMalformedSnapshot)
		})
	}
}

func TestRestore_ReplayValidationPropagates(t *testing.T) {
	t.Run("indivisible window", func(t *testing.T) {
		_, err := Restore(strings.NewReader("if cpu == nil then cpu = window.new(5, 2, 4) end\n"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrIndivisibleWindow)
	})

	t.Run("symbol outside alphabet", func(t *testing.T) {
		_, err := Restore(strings.NewReader("if p == nil then p = word.new(\"az\", 4) end\n"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidSymbol)
	})

	t.Run("non-finite sample", func(t *testing.T) {
		script := "if cpu == nil then cpu = window.new(4, 2, 4) end\n" +
			"cpu:add({1, nan})\n"

		_, err := Restore(strings.NewReader(script))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrNonFiniteValue)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := Restore(strings.NewReader("if 9cpu == nil then 9cpu = window.new(4, 2, 4) end\n"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshotKey)
	})
}

func TestRestore_ArchiveErrors(t *testing.T) {
	t.Run("truncated header", func(t *testing.T) {
		_, err := Restore(strings.NewReader("STSS\x01\x02"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrMalformedSnapshot)
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := Restore(strings.NewReader("STSS\x07\x02\x00\x00\x00\x00"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrMalformedSnapshot)
	})

	t.Run("unknown codec", func(t *testing.T) {
		_, err := Restore(strings.NewReader("STSS\x01\x99\x00\x00\x00\x00"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrUnknownCompression)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		var buf bytes.Buffer
		sw, err := NewWriter(&buf, WithCompression(format.CompressionZstd))
		require.NoError(t, err)
		require.NoError(t, sw.WriteWindow("cpu", filledWindow(t, 1, 2, 3, 4)))
		require.NoError(t, sw.Close())

		data := buf.Bytes()
		for i := archiveHeaderSize; i < len(data); i++ {
			data[i] ^= 0xFF
		}

		_, err = Restore(bytes.NewReader(data))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrMalformedSnapshot)
	})

	t.Run("length mismatch", func(t *testing.T) {
		var buf bytes.Buffer
		sw, err := NewWriter(&buf, WithCompression(format.CompressionS2))
		require.NoError(t, err)
		require.NoError(t, sw.WriteWindow("cpu", filledWindow(t, 1, 2, 3, 4)))
		require.NoError(t, sw.Close())

		data := buf.Bytes()
		data[6]++

		_, err = Restore(bytes.NewReader(data))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrMalformedSnapshot)
	})
}
