package snapshot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Quadrocube/symtseries/errs"
	"github.com/Quadrocube/symtseries/sax"
)

// maxStatementSize bounds a single statement line. The largest legitimate
// statement is an add of a full window, a few hundred KB; the limit only
// guards against unbounded lines in damaged files.
const maxStatementSize = 8 << 20

// Snapshot is the replayed content of a snapshot: every window and word the
// script rebuilt, under the keys it used. Restored windows carry their
// buffered samples and, when full, their current word; restored words carry
// letters and cardinality but no sample count.
type Snapshot struct {
	Windows map[string]*sax.Window
	Words   map[string]*sax.Word
}

// Restore reads a snapshot, unwraps the archive frame when present, and
// replays the script into fresh windows and words.
//
// Structural damage, from a torn frame to an unparseable statement, reports
// errs.ErrMalformedSnapshot. Statements that parse but replay into invalid
// state propagate the underlying validation error instead, with the line
// number attached.
//
// Parameters:
//   - r: Snapshot source, framed or bare
//
// Returns:
//   - *Snapshot: The replayed state, empty when the input is empty
//   - error: A read, decode, or replay error, nil on success
func Restore(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	script, err := decodeArchive(data)
	if err != nil {
		return nil, err
	}

	return parseScript(script)
}

func parseScript(script []byte) (*Snapshot, error) {
	snap := &Snapshot{
		Windows: make(map[string]*sax.Window),
		Words:   make(map[string]*sax.Word),
	}

	scanner := bufio.NewScanner(bytes.NewReader(script))
	scanner.Buffer(make([]byte, 0, 64*1024), maxStatementSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if err := snap.apply(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrMalformedSnapshot, err)
	}

	return snap, nil
}

func (s *Snapshot) apply(line string) error {
	if strings.HasPrefix(line, "if ") {
		return s.applyConstructor(line)
	}
	if idx := strings.IndexByte(line, ':'); idx > 0 {
		return s.applyMethod(line[:idx], line[idx+1:])
	}

	return fmt.Errorf("%w: unrecognized statement %q", errs.ErrMalformedSnapshot, line)
}

// applyConstructor replays a guarded constructor. The guard keeps the Lua
// semantics: when the key is already bound, the statement is a no-op rather
// than a rebuild.
func (s *Snapshot) applyConstructor(line string) error {
	rest := strings.TrimPrefix(line, "if ")

	keyEnd := strings.Index(rest, " == nil then ")
	if keyEnd < 0 {
		return fmt.Errorf("%w: constructor without nil guard", errs.ErrMalformedSnapshot)
	}
	key := rest[:keyEnd]
	if err := ValidateKey(key); err != nil {
		return err
	}

	rest = rest[keyEnd+len(" == nil then "):]
	assign := key + " = "
	if !strings.HasPrefix(rest, assign) {
		return fmt.Errorf("%w: constructor assigns a different key than it guards", errs.ErrMalformedSnapshot)
	}
	rest = strings.TrimPrefix(rest, assign)

	ctor, ok := strings.CutSuffix(rest, " end")
	if !ok {
		return fmt.Errorf("%w: unterminated constructor", errs.ErrMalformedSnapshot)
	}

	switch {
	case strings.HasPrefix(ctor, "window.new(") && strings.HasSuffix(ctor, ")"):
		return s.newWindow(key, ctor[len("window.new("):len(ctor)-1])
	case strings.HasPrefix(ctor, "word.new(") && strings.HasSuffix(ctor, ")"):
		return s.newWord(key, ctor[len("word.new("):len(ctor)-1])
	}

	return fmt.Errorf("%w: unrecognized constructor %q", errs.ErrMalformedSnapshot, ctor)
}

func (s *Snapshot) newWindow(key, args string) error {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return fmt.Errorf("%w: window.new wants 3 arguments, got %d", errs.ErrMalformedSnapshot, len(parts))
	}

	var params [3]int
	for i := 0; i < len(parts); i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return fmt.Errorf("%w: bad window parameter %q", errs.ErrMalformedSnapshot, strings.TrimSpace(parts[i]))
		}
		params[i] = v
	}

	if s.bound(key) {
		return nil
	}

	wn, err := sax.NewWindow(params[0], params[1], params[2])
	if err != nil {
		return err
	}
	s.Windows[key] = wn

	return nil
}

func (s *Snapshot) newWord(key, args string) error {
	if len(args) == 0 || args[0] != '"' {
		return fmt.Errorf("%w: word.new wants a quoted string", errs.ErrMalformedSnapshot)
	}
	closing := strings.IndexByte(args[1:], '"')
	if closing < 0 {
		return fmt.Errorf("%w: unterminated string in word.new", errs.ErrMalformedSnapshot)
	}
	letters := args[1 : 1+closing]

	rest := args[2+closing:]
	if !strings.HasPrefix(rest, ",") {
		return fmt.Errorf("%w: word.new wants 2 arguments", errs.ErrMalformedSnapshot)
	}
	c, err := strconv.Atoi(strings.TrimSpace(rest[1:]))
	if err != nil {
		return fmt.Errorf("%w: bad cardinality %q", errs.ErrMalformedSnapshot, strings.TrimSpace(rest[1:]))
	}

	if s.bound(key) {
		return nil
	}

	word, err := sax.ParseWord(letters, c)
	if err != nil {
		return err
	}
	s.Words[key] = word

	return nil
}

func (s *Snapshot) applyMethod(key, call string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	wn, ok := s.Windows[key]
	if !ok {
		if _, isWord := s.Words[key]; isWord {
			return fmt.Errorf("%w: words have no replayable methods, key %q", errs.ErrMalformedSnapshot, key)
		}

		return fmt.Errorf("%w: method call on unknown key %q", errs.ErrMalformedSnapshot, key)
	}

	switch {
	case call == "clear()":
		wn.Reset()
		return nil
	case strings.HasPrefix(call, "add({") && strings.HasSuffix(call, "})"):
		return applyAdd(wn, call[len("add({"):len(call)-len("})")])
	}

	return fmt.Errorf("%w: unrecognized method %q", errs.ErrMalformedSnapshot, call)
}

func applyAdd(wn *sax.Window, list string) error {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil
	}

	parts := strings.Split(list, ",")
	values := make([]float64, len(parts))
	for i := 0; i < len(parts); i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return fmt.Errorf("%w: bad sample %q", errs.ErrMalformedSnapshot, strings.TrimSpace(parts[i]))
		}
		values[i] = v
	}

	_, err := wn.AppendSlice(values)

	return err
}

// bound reports whether key already names a window or a word, either kind
// satisfying the constructor guard.
func (s *Snapshot) bound(key string) bool {
	if _, ok := s.Windows[key]; ok {
		return true
	}
	_, ok := s.Words[key]

	return ok
}
