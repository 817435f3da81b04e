// Package sax implements Symbolic Aggregate approXimation: it reduces
// fixed-size windows of a numeric series to short strings over a small
// alphabet, and compares those strings with a distance that lower-bounds the
// Euclidean distance of the normalized raw series.
//
// # Pipeline
//
// Every reduction runs the same three stages over the n samples of a full
// window:
//
//	┌────────────────┐    ┌────────────────┐    ┌────────────────┐
//	│  z-normalize   │    │  PAA: average  │    │   symbolize    │
//	│ (x-μ)/σ over   │ -> │ into w equal   │ -> │ via breakpoint │
//	│  all n samples │    │    segments    │    │     table      │
//	└────────────────┘    └────────────────┘    └────────────────┘
//	     n values              w values              w symbols
//
// Statistics are recomputed from scratch for every window position, so a
// sliding window re-normalizes after each slide. Windows whose standard
// deviation falls below StatEps are flat: all their symbols collapse to the
// middle region.
//
// The breakpoint table for cardinality c splits the standard normal
// distribution into c equiprobable regions, so on normalized data every
// letter is equally likely. Region 0 is the lowest and renders as 'a'.
//
// # Entry points
//
// Window slides over a live stream and maintains the word of its current
// contents; NewWordFromValues reduces a complete array in one call;
// ParseWord re-creates a word from its letter form. MinDist accepts any mix
// of words and windows through WordSource, returning NaN for pairs that
// cannot be compared. Words also round-trip through a compact binary frame
// via MarshalBinary and ParseWordBinary.
//
// Example:
//
//	wn, err := sax.NewWindow(8, 4, 4)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, v := range samples {
//		word, err := wn.Append(v)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if word != nil {
//			fmt.Println(word) // e.g. "abdc"
//		}
//	}
//
// Windows and words are not safe for concurrent use; see the stream package
// for a serialized multi-series front end.
package sax
