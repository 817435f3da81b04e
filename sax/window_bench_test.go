package sax

import (
	"fmt"
	"math/rand"
	"testing"
)

func benchSamples(n int) []float64 {
	rng := rand.New(rand.NewSource(97))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = rng.NormFloat64()
	}

	return out
}

func BenchmarkWindow_Append(b *testing.B) {
	configs := []struct {
		n, w, c int
	}{
		{32, 8, 4},
		{128, 16, 8},
		{1024, 32, 16},
	}

	for _, cfg := range configs {
		b.Run(fmt.Sprintf("n%d_w%d_c%d", cfg.n, cfg.w, cfg.c), func(b *testing.B) {
			wn, err := NewWindow(cfg.n, cfg.w, cfg.c)
			if err != nil {
				b.Fatal(err)
			}
			samples := benchSamples(cfg.n)

			// Pre-fill so every measured Append slides a full window.
			if _, err := wn.AppendSlice(samples); err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()

			i := 0
			for b.Loop() {
				if _, err := wn.Append(samples[i%len(samples)]); err != nil {
					b.Fatal(err)
				}
				i++
			}
		})
	}
}

func BenchmarkWindow_AppendSlice(b *testing.B) {
	wn, err := NewWindow(128, 16, 8)
	if err != nil {
		b.Fatal(err)
	}
	samples := benchSamples(128)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := wn.AppendSlice(samples); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewWordFromValues(b *testing.B) {
	samples := benchSamples(128)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := NewWordFromValues(samples, 16, 8); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMinDist(b *testing.B) {
	x, err := NewWordFromValues(benchSamples(128), 16, 8)
	if err != nil {
		b.Fatal(err)
	}
	y, err := NewWordFromValues(benchSamples(256), 16, 8)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		MinDist(x, y)
	}
}

func BenchmarkWord_MarshalBinary(b *testing.B) {
	word, err := NewWordFromValues(benchSamples(128), 16, 8)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := word.MarshalBinary(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseWordBinary(b *testing.B) {
	word, err := NewWordFromValues(benchSamples(128), 16, 8)
	if err != nil {
		b.Fatal(err)
	}
	data, err := word.MarshalBinary()
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := ParseWordBinary(data); err != nil {
			b.Fatal(err)
		}
	}
}
