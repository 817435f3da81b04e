// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces from Go's standard
// encoding/binary package into a unified EndianEngine interface, so a codec
// that both reads and appends multi-byte fields can hold a single value for
// the job.
//
// # Basic Usage
//
// The binary word codec writes little-endian frames and decodes either order,
// switching engines on a header flag:
//
//	engine := endian.GetLittleEndianEngine()
//	dst = engine.AppendUint16(dst, opts)
//
//	if opts&flagBigEndian != 0 {
//	    engine = endian.GetBigEndianEngine()
//	}
//	w := engine.Uint16(data[4:6])
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable, stateless, and safe for
// concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian
// from the standard library, making it fully compatible with existing Go
// code while providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
