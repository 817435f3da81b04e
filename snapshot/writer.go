package snapshot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Quadrocube/symtseries/compress"
	"github.com/Quadrocube/symtseries/endian"
	"github.com/Quadrocube/symtseries/errs"
	"github.com/Quadrocube/symtseries/format"
	"github.com/Quadrocube/symtseries/internal/options"
	"github.com/Quadrocube/symtseries/internal/pool"
	"github.com/Quadrocube/symtseries/sax"
)

// Writer serializes windows and words into a snapshot script, one statement
// block per entry. Statements accumulate in a pooled buffer; Close performs
// the single write to the destination, compressing and framing the script
// first when a codec was selected.
//
// A Writer is single-use: after Close it rejects further writes. It is not
// safe for concurrent use.
type Writer struct {
	dst         io.Writer
	buf         *pool.ByteBuffer
	compression format.CompressionType
	closed      bool
}

// Option configures a Writer during NewWriter.
type Option = options.Option[*Writer]

// WithCompression selects the codec used to frame the script on Close.
// The default is format.CompressionNone, which writes the bare script.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(sw *Writer) error {
		if !compression.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrUnknownCompression, compression)
		}
		sw.compression = compression

		return nil
	})
}

// NewWriter creates a snapshot writer targeting dst.
//
// Parameters:
//   - dst: Destination for the finished snapshot, written once on Close
//   - opts: Optional configuration, e.g. WithCompression
//
// Returns:
//   - *Writer: A ready writer
//   - error: The first option error, nil on success
func NewWriter(dst io.Writer, opts ...Option) (*Writer, error) {
	if dst == nil {
		return nil, fmt.Errorf("nil snapshot destination")
	}

	sw := &Writer{
		dst:         dst,
		buf:         pool.GetScriptBuffer(),
		compression: format.CompressionNone,
	}
	if err := options.Apply(sw, opts...); err != nil {
		pool.PutScriptBuffer(sw.buf)
		return nil, err
	}

	return sw, nil
}

// WriteWindow emits the statement block that rebuilds wn under the given
// key: a guarded constructor, then clear and add statements for the
// buffered samples. A window that never held a sample emits the
// constructor alone.
//
// The key must be a dotted chain of identifiers, e.g. "host.cpu_load".
func (sw *Writer) WriteWindow(key string, wn *sax.Window) error {
	if err := sw.ensureOpen(); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}
	if wn == nil {
		return fmt.Errorf("nil window for key %q", key)
	}

	sw.buf.WriteString("if ")
	sw.buf.WriteString(key)
	sw.buf.WriteString(" == nil then ")
	sw.buf.WriteString(key)
	sw.buf.WriteString(" = window.new(")
	sw.buf.B = strconv.AppendInt(sw.buf.B, int64(wn.Size()), 10)
	sw.buf.WriteString(", ")
	sw.buf.B = strconv.AppendInt(sw.buf.B, int64(wn.WordLen()), 10)
	sw.buf.WriteString(", ")
	sw.buf.B = strconv.AppendInt(sw.buf.B, int64(wn.Cardinality()), 10)
	sw.buf.WriteString(") end\n")

	values := wn.BufferedValues()
	if len(values) == 0 {
		return nil
	}

	sw.buf.WriteString(key)
	sw.buf.WriteString(":clear()\n")
	sw.buf.WriteString(key)
	sw.buf.WriteString(":add({")
	for i := 0; i < len(values); i++ {
		if i > 0 {
			sw.buf.WriteString(", ")
		}
		sw.buf.B = strconv.AppendFloat(sw.buf.B, values[i], 'g', -1, 64)
	}
	sw.buf.WriteString("})\n")

	return nil
}

// WriteWord emits the guarded constructor that rebuilds word under the
// given key. Only the letter form and cardinality are preserved; a sample
// count attached via WithSampleCount does not survive the round trip.
func (sw *Writer) WriteWord(key string, word *sax.Word) error {
	if err := sw.ensureOpen(); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}
	if word == nil {
		return fmt.Errorf("nil word for key %q", key)
	}

	letters, err := word.StringChecked()
	if err != nil {
		return err
	}

	sw.buf.WriteString("if ")
	sw.buf.WriteString(key)
	sw.buf.WriteString(" == nil then ")
	sw.buf.WriteString(key)
	sw.buf.WriteString(" = word.new(\"")
	sw.buf.WriteString(letters)
	sw.buf.WriteString("\", ")
	sw.buf.B = strconv.AppendInt(sw.buf.B, int64(word.Cardinality()), 10)
	sw.buf.WriteString(") end\n")

	return nil
}

// Len returns the current size of the accumulated script in bytes, before
// any compression.
func (sw *Writer) Len() int {
	if sw.buf == nil {
		return 0
	}

	return sw.buf.Len()
}

// Close finalizes the snapshot and performs the single write to the
// destination. With CompressionNone the script goes out verbatim; any other
// codec compresses it and wraps it in the archive frame. Closing an
// already-closed writer is a no-op.
func (sw *Writer) Close() error {
	if sw.closed {
		return nil
	}
	sw.closed = true

	buf := sw.buf
	sw.buf = nil
	defer pool.PutScriptBuffer(buf)

	script := buf.Bytes()
	if sw.compression == format.CompressionNone {
		if len(script) == 0 {
			return nil
		}
		_, err := sw.dst.Write(script)

		return err
	}

	codec, err := compress.CreateCodec(sw.compression, "snapshot archive")
	if err != nil {
		return err
	}
	payload, err := codec.Compress(script)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	frame := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(frame)

	frame.WriteString(archiveMagic)
	frame.MustWrite([]byte{archiveVersion, byte(sw.compression)})
	frame.B = endian.GetLittleEndianEngine().AppendUint32(frame.B, uint32(len(script)))
	frame.MustWrite(payload)

	_, err = sw.dst.Write(frame.Bytes())

	return err
}

// Abort discards the accumulated script and closes the writer without
// touching the destination. Use it when a write sequence fails halfway and
// a partial snapshot must not reach disk.
func (sw *Writer) Abort() {
	if sw.closed {
		return
	}
	sw.closed = true

	pool.PutScriptBuffer(sw.buf)
	sw.buf = nil
}

func (sw *Writer) ensureOpen() error {
	if sw.closed {
		return fmt.Errorf("snapshot writer already closed")
	}

	return nil
}

// luaReserved lists the Lua keywords; a key segment matching one would not
// survive as an assignment target in a real sandbox.
var luaReserved = map[string]struct{}{
	"and": {}, "break": {}, "do": {}, "else": {}, "elseif": {}, "end": {},
	"false": {}, "for": {}, "function": {}, "goto": {}, "if": {}, "in": {},
	"local": {}, "nil": {}, "not": {}, "or": {}, "repeat": {}, "return": {},
	"then": {}, "true": {}, "until": {}, "while": {},
}

// ValidateKey reports whether key is usable as a snapshot key: a dotted
// chain of identifiers whose first segment does not shadow the window and
// word factories and whose segments are not Lua keywords. The writer and
// the restore parser both enforce it; callers deriving keys from free-form
// names can check candidates up front.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", errs.ErrInvalidSnapshotKey)
	}

	for i, seg := range strings.Split(key, ".") {
		if !validIdent(seg) {
			return fmt.Errorf("%w: %q", errs.ErrInvalidSnapshotKey, key)
		}
		if _, ok := luaReserved[seg]; ok {
			return fmt.Errorf("%w: %q contains reserved word %q", errs.ErrInvalidSnapshotKey, key, seg)
		}
		if i == 0 && (seg == "window" || seg == "word") {
			return fmt.Errorf("%w: %q would shadow the %s factory", errs.ErrInvalidSnapshotKey, key, seg)
		}
	}

	return nil
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch == '_':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}
