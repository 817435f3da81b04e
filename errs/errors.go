// Package errs defines the sentinel errors shared across the symtseries
// packages.
//
// All errors are plain sentinel values. Call sites add context by wrapping
// with fmt.Errorf("%w: ...", err), so callers can always match the category
// with errors.Is regardless of how much detail was attached.
package errs

import "errors"

// Validation errors reported by constructors and mutators.
var (
	// ErrInvalidWindowSize indicates the number of samples per window is out
	// of the accepted range (1, 4096].
	ErrInvalidWindowSize = errors.New("invalid window size")

	// ErrInvalidWordLength indicates the number of symbols per word is out of
	// the accepted range (1, 2048].
	ErrInvalidWordLength = errors.New("invalid word length")

	// ErrInvalidCardinality indicates the alphabet cardinality is out of the
	// accepted range (1, 16].
	ErrInvalidCardinality = errors.New("invalid cardinality")

	// ErrIndivisibleWindow indicates the window size is not an exact multiple
	// of the word length, so samples cannot be split into equal frames.
	ErrIndivisibleWindow = errors.New("window size not divisible by word length")

	// ErrNonFiniteValue indicates a sample was NaN or infinite.
	ErrNonFiniteValue = errors.New("non-finite sample value")

	// ErrWordTooShort indicates a SAX string of fewer than two symbols.
	ErrWordTooShort = errors.New("word too short")

	// ErrInvalidSymbol indicates a character outside the alphabet allowed by
	// the cardinality, detected while parsing a SAX string.
	ErrInvalidSymbol = errors.New("symbol not valid for cardinality")

	// ErrUnrepresentableSymbol indicates a stored symbol that cannot be
	// rendered in the alphabet, detected while formatting. It signals a
	// corrupted word rather than bad user input.
	ErrUnrepresentableSymbol = errors.New("symbol not representable in alphabet")

	// ErrInvalidCapacity indicates a non-positive ring buffer capacity.
	ErrInvalidCapacity = errors.New("invalid ring capacity")
)

// Serialization errors reported by the binary word codec and the snapshot
// reader/writer.
var (
	// ErrInvalidWordData indicates binary word data that fails structural
	// validation: short buffer, bad magic, unsupported version, or symbol
	// content inconsistent with the header.
	ErrInvalidWordData = errors.New("invalid binary word data")

	// ErrInvalidSnapshotKey indicates a snapshot key that is not a usable
	// identifier.
	ErrInvalidSnapshotKey = errors.New("invalid snapshot key")

	// ErrMalformedSnapshot indicates snapshot input that does not parse as a
	// sequence of emitted snapshot statements.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrUnknownCompression indicates a compression type byte that no
	// registered codec handles.
	ErrUnknownCompression = errors.New("unknown compression type")
)

// Stream processing errors.
var (
	// ErrDuplicatePattern indicates a reference pattern name that is already
	// registered.
	ErrDuplicatePattern = errors.New("duplicate pattern name")

	// ErrIncompatibleWord indicates a word whose length or cardinality does
	// not match the processor configuration.
	ErrIncompatibleWord = errors.New("incompatible word configuration")

	// ErrTooManySeries indicates the processor's series limit was reached.
	ErrTooManySeries = errors.New("too many tracked series")

	// ErrHashCollision indicates two different series names hashed to the
	// same 64-bit identifier. This cannot be resolved automatically.
	ErrHashCollision = errors.New("series name hash collision")

	// ErrSourceClosed indicates an operation on a closed sample source.
	ErrSourceClosed = errors.New("source closed")
)
