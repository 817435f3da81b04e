package sax

import (
	"encoding"
	"fmt"

	"github.com/Quadrocube/symtseries/endian"
	"github.com/Quadrocube/symtseries/errs"
)

// Binary word layout. The 12-byte header is followed by the symbol payload,
// two symbols per byte:
//
//	Byte 0-1:  Options (uint16, always little-endian)
//	           Bits 4-15: Magic 0x5A1
//	           Bit 0: Payload byte order (0 = little-endian, 1 = big-endian)
//	           Bit 1: Sample count present
//	           Bits 2-3: Reserved, must be zero
//	Byte 2:    Alphabet cardinality (uint8)
//	Byte 3:    Reserved, must be zero
//	Byte 4-5:  Word length in symbols (uint16, payload byte order)
//	Byte 6-7:  Reserved, must be zero
//	Byte 8-11: Sample count (uint32, payload byte order), 0 when absent
//	Byte 12-:  ceil(w/2) bytes of symbols, earlier symbol in the high
//	           nibble; the last low nibble is zero when w is odd
//
// The options field is self-describing regardless of who wrote the frame:
// readers decode it little-endian, then switch the remaining multi-byte
// fields on bit 0. This package always writes little-endian frames but
// accepts either order.
const (
	wordMagicMask  uint16 = 0xFFF0
	wordMagicValue uint16 = 0x5A10

	flagBigEndian    uint16 = 0x0001
	flagSampleCount  uint16 = 0x0002
	flagReservedMask uint16 = 0x000C

	headerSize = 12
)

var (
	_ encoding.BinaryMarshaler   = (*Word)(nil)
	_ encoding.BinaryAppender    = (*Word)(nil)
	_ encoding.BinaryUnmarshaler = (*Word)(nil)
)

// BinarySize returns the exact number of bytes MarshalBinary produces for
// this word.
func (a *Word) BinarySize() int {
	return headerSize + (len(a.symbols)+1)/2
}

// MarshalBinary serializes the word into the binary layout above.
//
// Words reachable through the public API are always representable, so the
// error result exists only to satisfy encoding.BinaryMarshaler and is
// always nil.
func (a *Word) MarshalBinary() ([]byte, error) {
	return a.AppendBinary(make([]byte, 0, a.BinarySize()))
}

// AppendBinary appends the serialized word to dst and returns the extended
// slice.
func (a *Word) AppendBinary(dst []byte) ([]byte, error) {
	opts := wordMagicValue
	if a.nValues > 0 {
		opts |= flagSampleCount
	}

	engine := endian.GetLittleEndianEngine()
	dst = engine.AppendUint16(dst, opts)
	dst = append(dst, byte(a.c), 0)
	dst = engine.AppendUint16(dst, uint16(len(a.symbols)))
	dst = append(dst, 0, 0)
	dst = engine.AppendUint32(dst, uint32(a.nValues))

	for i := 0; i < len(a.symbols); i += 2 {
		b := byte(a.symbols[i]) << 4
		if i+1 < len(a.symbols) {
			b |= byte(a.symbols[i+1])
		}
		dst = append(dst, b)
	}

	return dst, nil
}

// UnmarshalBinary replaces the receiver with the word decoded from data.
// The receiver is left untouched when decoding fails.
func (a *Word) UnmarshalBinary(data []byte) error {
	parsed, err := ParseWordBinary(data)
	if err != nil {
		return err
	}
	*a = *parsed

	return nil
}

// ParseWordBinary decodes one serialized word.
//
// Parsing is strict: the magic must match, reserved bits and bytes must be
// zero, the payload length must be exactly ceil(w/2), padding nibbles must
// be zero, and every decoded field must pass the same validation its
// constructor would apply. Structural damage reports
// errs.ErrInvalidWordData; out-of-range fields report the matching
// validation sentinel.
//
// Parameters:
//   - data: A complete frame, header plus payload, with no trailing bytes
//
// Returns:
//   - *Word: The decoded word, including its sample count when present
//   - error: A decode or validation error from the errs package, nil on success
func ParseWordBinary(data []byte) (*Word, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, want at least %d", errs.ErrInvalidWordData, len(data), headerSize)
	}

	opts := endian.GetLittleEndianEngine().Uint16(data[0:2])
	if opts&wordMagicMask != wordMagicValue {
		return nil, fmt.Errorf("%w: bad magic %#04x", errs.ErrInvalidWordData, opts&wordMagicMask)
	}
	if opts&flagReservedMask != 0 {
		return nil, fmt.Errorf("%w: reserved option bits set", errs.ErrInvalidWordData)
	}
	if data[3] != 0 || data[6] != 0 || data[7] != 0 {
		return nil, fmt.Errorf("%w: reserved header bytes set", errs.ErrInvalidWordData)
	}

	order := endian.GetLittleEndianEngine()
	if opts&flagBigEndian != 0 {
		order = endian.GetBigEndianEngine()
	}

	c := int(data[2])
	if err := validateCardinality(c); err != nil {
		return nil, err
	}

	w := int(order.Uint16(data[4:6]))
	if w < MinWordLen || w > MaxWordLen {
		return nil, fmt.Errorf("%w: %d symbols, want %d..%d", errs.ErrInvalidWordLength, w, MinWordLen, MaxWordLen)
	}

	n := int(order.Uint32(data[8:12]))
	if opts&flagSampleCount != 0 {
		if n < MinWindowSize || n > MaxWindowSize {
			return nil, fmt.Errorf("%w: %d samples, want %d..%d", errs.ErrInvalidWindowSize, n, MinWindowSize, MaxWindowSize)
		}
		if n%w != 0 {
			return nil, fmt.Errorf("%w: %d samples into %d symbols", errs.ErrIndivisibleWindow, n, w)
		}
	} else if n != 0 {
		return nil, fmt.Errorf("%w: sample count %d without its flag", errs.ErrInvalidWordData, n)
	}

	payload := data[headerSize:]
	if len(payload) != (w+1)/2 {
		return nil, fmt.Errorf("%w: %d payload bytes for %d symbols, want %d", errs.ErrInvalidWordData, len(payload), w, (w+1)/2)
	}
	if w%2 != 0 && payload[len(payload)-1]&0x0F != 0 {
		return nil, fmt.Errorf("%w: nonzero padding nibble", errs.ErrInvalidWordData)
	}

	symbols := make([]Symbol, w)
	for i := 0; i < w; i++ {
		b := payload[i/2]
		if i%2 == 0 {
			b >>= 4
		} else {
			b &= 0x0F
		}
		if int(b) >= c {
			return nil, fmt.Errorf("%w: symbol %d at position %d is outside alphabet of size %d", errs.ErrInvalidSymbol, b, i, c)
		}
		symbols[i] = Symbol(b)
	}

	return &Word{symbols: symbols, c: c, nValues: n}, nil
}
