package sax_test

import (
	"fmt"
	"log"

	"github.com/Quadrocube/symtseries/sax"
)

// ExampleWindow_Append demonstrates streaming samples through a sliding window.
func ExampleWindow_Append() {
	wn, err := sax.NewWindow(4, 4, 4)
	if err != nil {
		log.Fatal(err)
	}

	// The window produces nothing until it has seen four samples.
	for _, v := range []float64{-2, -1, 1} {
		if _, err := wn.Append(v); err != nil {
			log.Fatal(err)
		}
	}

	word, err := wn.Append(2)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("full:", word)

	// One more sample evicts the oldest and re-encodes the window.
	word, err = wn.Append(2)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("slid:", word)

	// Output:
	// full: abcd
	// slid: acdd
}

// ExampleNewWordFromValues demonstrates one-shot encoding of a complete series.
func ExampleNewWordFromValues() {
	word, err := sax.NewWordFromValues([]float64{-2, -1, 1, 2}, 2, 4)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(word)
	fmt.Println("samples behind it:", word.SampleCount())

	// Output:
	// ad
	// samples behind it: 4
}

// ExampleParseWord demonstrates rebuilding a word from its SAX string.
func ExampleParseWord() {
	word, err := sax.ParseWord("acdb", 4)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(word)
	// The string form cannot recover how many samples produced the word.
	fmt.Println("sample count:", word.SampleCount())

	// Output:
	// acdb
	// sample count: 0
}

// ExampleMinDist demonstrates the lower-bounding distance between two words.
func ExampleMinDist() {
	up, err := sax.NewWordFromValues([]float64{-2, -1, 1, 2}, 2, 4)
	if err != nil {
		log.Fatal(err)
	}
	down, err := sax.NewWordFromValues([]float64{2, 1, -1, -2}, 2, 4)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s vs %s: %.4f\n", up, down, sax.MinDist(up, down))
	fmt.Printf("%s vs %s: %.4f\n", up, up, sax.MinDist(up, up))

	// Output:
	// ad vs da: 2.6980
	// ad vs ad: 0.0000
}
