// Package stream matches live time series against reference patterns.
//
// A Processor owns one sliding window per named series. Feeding samples
// through Observe advances the matching window, and every word the window
// produces is compared against the registered patterns using the lower-bound
// distance from the sax package:
//
//	p, _ := stream.New(16, 4, 8)
//	_ = p.AddPattern("spike", spikeWord)
//
//	matches, err := p.Observe("host1.cpu", 0.73)
//	for _, m := range matches {
//		fmt.Printf("%s looks like %s (distance %.3f)\n", m.Series, m.Pattern, m.Distance)
//	}
//
// Series windows are created lazily on first sight and keyed by the 64-bit
// hash of the series name, so a processor can track an open-ended set of
// series with a fixed per-series footprint. WithMaxSeries bounds that set
// for hosts that cannot trust their input to be finite.
//
// Snapshot and RestoreFrom round the full matcher state through the
// snapshot package: every tracked window and every registered pattern is
// written, and a restore adopts whatever the live processor does not
// already have.
//
// All Processor methods are safe for concurrent use. The natsfeed
// subpackage connects a processor to a NATS subject.
package stream
