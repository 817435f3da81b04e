// Package hash provides the 64-bit identifiers used for series keys and
// word fingerprints.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a series name. Equal names always map to equal
// IDs; the stream processor keys its window registry on them.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Bytes computes the xxHash64 of raw bytes. Word fingerprints hash the
// cardinality byte followed by the symbol slice.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
