package snapshot

import (
	"fmt"

	"github.com/Quadrocube/symtseries/compress"
	"github.com/Quadrocube/symtseries/endian"
	"github.com/Quadrocube/symtseries/errs"
	"github.com/Quadrocube/symtseries/format"
)

// Compressed snapshots are wrapped in a small archive frame:
//
//	Byte 0-3:  Magic "STSS"
//	Byte 4:    Archive version, currently 1
//	Byte 5:    Compression codec (format.CompressionType)
//	Byte 6-9:  Uncompressed script length (uint32, little-endian)
//	Byte 10-:  Compressed script
//
// Uncompressed snapshots are written as the bare script with no frame, so
// state files stay readable and diffable. Restore tells the two apart by
// sniffing the magic.
const (
	archiveMagic      = "STSS"
	archiveVersion    = byte(0x01)
	archiveHeaderSize = 10
)

// decodeArchive unwraps the archive frame when data carries one and returns
// the plain script. Unframed input is returned as is.
func decodeArchive(data []byte) ([]byte, error) {
	if len(data) < len(archiveMagic) || string(data[:len(archiveMagic)]) != archiveMagic {
		return data, nil
	}
	if len(data) < archiveHeaderSize {
		return nil, fmt.Errorf("%w: truncated archive header", errs.ErrMalformedSnapshot)
	}
	if data[4] != archiveVersion {
		return nil, fmt.Errorf("%w: unsupported archive version %d", errs.ErrMalformedSnapshot, data[4])
	}

	codec, err := compress.GetCodec(format.CompressionType(data[5]))
	if err != nil {
		return nil, err
	}

	want := endian.GetLittleEndianEngine().Uint32(data[6:archiveHeaderSize])
	script, err := codec.Decompress(data[archiveHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrMalformedSnapshot, err)
	}
	if uint32(len(script)) != want {
		return nil, fmt.Errorf("%w: decompressed %d bytes, header says %d", errs.ErrMalformedSnapshot, len(script), want)
	}

	return script, nil
}
