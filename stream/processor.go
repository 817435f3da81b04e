package stream

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Quadrocube/symtseries/errs"
	"github.com/Quadrocube/symtseries/internal/hash"
	"github.com/Quadrocube/symtseries/internal/options"
	"github.com/Quadrocube/symtseries/sax"
	"github.com/Quadrocube/symtseries/snapshot"
)

// Match reports one pattern that came within the processor's threshold of a
// series' current word.
type Match struct {
	// Series is the name of the observed series.
	Series string
	// Pattern is the registered name of the matched reference pattern.
	Pattern string
	// Distance is the lower-bound distance between the series word and the
	// pattern.
	Distance float64
	// Word is an owned copy of the series word that produced the match.
	Word *sax.Word
}

type series struct {
	name   string
	window *sax.Window
}

type pattern struct {
	name        string
	word        *sax.Word
	fingerprint uint64
}

// Processor tracks any number of named series, reduces each through its own
// sliding window, and compares every produced word against a registry of
// reference patterns. Series windows are created lazily on first Observe
// and keyed by the 64-bit hash of the series name.
//
// All methods are safe for concurrent use; a single mutex serializes state,
// which keeps per-series windows coherent under concurrent transport
// callbacks.
type Processor struct {
	mu sync.Mutex

	n, w, c   int
	threshold float64
	maxSeries int
	logger    *zap.Logger

	series   map[uint64]*series
	patterns []*pattern
	names    map[string]struct{}
}

// Option configures a Processor during New.
type Option = options.Option[*Processor]

// WithLogger attaches a structured logger; series creation and matches are
// logged at debug level. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return options.New(func(p *Processor) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		p.logger = logger

		return nil
	})
}

// WithThreshold sets the maximum distance at which a pattern counts as a
// match. The default of 0 matches only words whose distance bound is zero,
// i.e. symbol sequences that never diverge by more than one region.
func WithThreshold(threshold float64) Option {
	return options.New(func(p *Processor) error {
		if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
			return fmt.Errorf("match threshold must be finite and non-negative, got %v", threshold)
		}
		p.threshold = threshold

		return nil
	})
}

// WithMaxSeries bounds the number of tracked series; Observe on a new
// series beyond the limit returns errs.ErrTooManySeries. The default is
// unbounded.
func WithMaxSeries(limit int) Option {
	return options.New(func(p *Processor) error {
		if limit <= 0 {
			return fmt.Errorf("series limit must be positive, got %d", limit)
		}
		p.maxSeries = limit

		return nil
	})
}

// New creates a processor whose per-series windows reduce n samples into
// words of w symbols over an alphabet of c letters.
//
// Parameters:
//   - n: Window size in samples for every tracked series
//   - w: Word length in symbols
//   - c: Alphabet cardinality
//   - opts: Optional configuration: WithLogger, WithThreshold, WithMaxSeries
//
// Returns:
//   - *Processor: A processor with no series and no patterns
//   - error: A parameter validation or option error, nil on success
func New(n, w, c int, opts ...Option) (*Processor, error) {
	if err := sax.ValidateParams(n, w, c); err != nil {
		return nil, err
	}

	p := &Processor{
		n:      n,
		w:      w,
		c:      c,
		logger: zap.NewNop(),
		series: make(map[uint64]*series),
		names:  make(map[string]struct{}),
	}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// AddPattern registers a named reference pattern. The word must match the
// processor's word length and cardinality; both the name and the symbol
// content must be new. The word is copied, so callers may keep mutating
// windows they borrowed it from.
func (p *Processor) AddPattern(name string, word *sax.Word) error {
	if name == "" {
		return fmt.Errorf("empty pattern name")
	}
	if word == nil {
		return fmt.Errorf("nil pattern word for %q", name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.addPatternLocked(name, word)
}

func (p *Processor) addPatternLocked(name string, word *sax.Word) error {
	if _, ok := p.names[name]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicatePattern, name)
	}
	if word.Len() != p.w || word.Cardinality() != p.c {
		return fmt.Errorf("%w: word is %d symbols over %d letters, processor wants %d over %d",
			errs.ErrIncompatibleWord, word.Len(), word.Cardinality(), p.w, p.c)
	}

	fp := word.Fingerprint()
	for _, pat := range p.patterns {
		if pat.fingerprint == fp && pat.word.Equal(word) {
			return fmt.Errorf("%w: same content as %q", errs.ErrDuplicatePattern, pat.name)
		}
	}

	p.patterns = append(p.patterns, &pattern{name: name, word: word.Clone(), fingerprint: fp})
	p.names[name] = struct{}{}
	p.logger.Debug("pattern registered",
		zap.String("pattern", name),
		zap.Int("patterns", len(p.patterns)))

	return nil
}

// Patterns returns the registered pattern names in registration order.
func (p *Processor) Patterns() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.patterns))
	for i := 0; i < len(p.patterns); i++ {
		out[i] = p.patterns[i].name
	}

	return out
}

// SeriesCount returns the number of series currently tracked.
func (p *Processor) SeriesCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.series)
}

// Observe feeds one sample into the named series, creating its window on
// first sight. When the sample completes a window, the resulting word is
// compared against every registered pattern and the matches within the
// threshold are returned, in pattern registration order.
//
// A nil, nil return means the sample was absorbed without producing a word
// or without any pattern coming close enough.
func (p *Processor) Observe(seriesName string, value float64) ([]Match, error) {
	if seriesName == "" {
		return nil, fmt.Errorf("empty series name")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	st, err := p.lookupOrCreate(seriesName)
	if err != nil {
		return nil, err
	}

	word, err := st.window.Append(value)
	if err != nil {
		return nil, fmt.Errorf("series %q: %w", seriesName, err)
	}
	if word == nil {
		return nil, nil
	}

	return p.matchLocked(st, word), nil
}

func (p *Processor) lookupOrCreate(name string) (*series, error) {
	id := hash.ID(name)
	if st, ok := p.series[id]; ok {
		if st.name != name {
			return nil, fmt.Errorf("%w: %q and %q share id %#x", errs.ErrHashCollision, name, st.name, id)
		}

		return st, nil
	}

	if p.maxSeries > 0 && len(p.series) >= p.maxSeries {
		return nil, fmt.Errorf("%w: limit %d", errs.ErrTooManySeries, p.maxSeries)
	}

	wn, err := sax.NewWindow(p.n, p.w, p.c)
	if err != nil {
		return nil, err
	}

	st := &series{name: name, window: wn}
	p.series[id] = st
	p.logger.Debug("tracking new series",
		zap.String("series", name),
		zap.Int("series_count", len(p.series)))

	return st, nil
}

func (p *Processor) matchLocked(st *series, word *sax.Word) []Match {
	var matches []Match
	var owned *sax.Word

	for _, pat := range p.patterns {
		dist := sax.MinDist(word, pat.word)
		if !(dist <= p.threshold) {
			continue
		}
		if owned == nil {
			owned = word.Clone()
		}
		matches = append(matches, Match{
			Series:   st.name,
			Pattern:  pat.name,
			Distance: dist,
			Word:     owned,
		})
		p.logger.Debug("pattern matched",
			zap.String("series", st.name),
			zap.String("pattern", pat.name),
			zap.String("word", owned.String()),
			zap.Float64("distance", dist))
	}

	return matches
}

// Snapshot serializes every tracked series window and every registered
// pattern through the snapshot package, series sorted by name so identical
// state produces identical files. Keys are derived from series and pattern
// names: names that are already valid keys pass through, others are
// sanitized, and as a last resort replaced by a hash-based key.
func (p *Processor) Snapshot(w io.Writer, opts ...snapshot.Option) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sw, err := snapshot.NewWriter(w, opts...)
	if err != nil {
		return err
	}

	ordered := make([]*series, 0, len(p.series))
	for _, st := range p.series {
		ordered = append(ordered, st)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].name < ordered[j].name })

	used := make(map[string]bool, len(ordered)+len(p.patterns))
	for _, st := range ordered {
		if err := sw.WriteWindow(deriveKey(st.name, used), st.window); err != nil {
			sw.Abort()
			return err
		}
	}
	for _, pat := range p.patterns {
		if err := sw.WriteWord(deriveKey(pat.name, used), pat.word); err != nil {
			sw.Abort()
			return err
		}
	}

	return sw.Close()
}

// RestoreFrom replays a snapshot into the processor. Restored windows
// become tracked series under their snapshot keys and restored words become
// patterns; entries whose key or name is already present are skipped, so
// live state wins over the snapshot. The whole file is validated against
// the processor configuration before anything is adopted.
func (p *Processor) RestoreFrom(r io.Reader) error {
	snap, err := snapshot.Restore(r)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pending := make(map[uint64]string, len(snap.Windows))
	for key, wn := range snap.Windows {
		if wn.Size() != p.n || wn.WordLen() != p.w || wn.Cardinality() != p.c {
			return fmt.Errorf("%w: window %q is %d/%d/%d, processor wants %d/%d/%d",
				errs.ErrIncompatibleWord, key, wn.Size(), wn.WordLen(), wn.Cardinality(), p.n, p.w, p.c)
		}
		id := hash.ID(key)
		if st, ok := p.series[id]; ok {
			if st.name != key {
				return fmt.Errorf("%w: %q and %q share id %#x", errs.ErrHashCollision, key, st.name, id)
			}
			continue
		}
		if prev, ok := pending[id]; ok {
			return fmt.Errorf("%w: %q and %q share id %#x", errs.ErrHashCollision, key, prev, id)
		}
		pending[id] = key
	}
	added := len(pending)
	for key, word := range snap.Words {
		if _, ok := p.names[key]; ok {
			continue
		}
		if word.Len() != p.w || word.Cardinality() != p.c {
			return fmt.Errorf("%w: word %q is %d symbols over %d letters, processor wants %d over %d",
				errs.ErrIncompatibleWord, key, word.Len(), word.Cardinality(), p.w, p.c)
		}
	}
	if p.maxSeries > 0 && len(p.series)+added > p.maxSeries {
		return fmt.Errorf("%w: snapshot adds %d series to %d tracked, limit %d",
			errs.ErrTooManySeries, added, len(p.series), p.maxSeries)
	}

	for key, wn := range snap.Windows {
		id := hash.ID(key)
		if _, ok := p.series[id]; ok {
			continue
		}
		p.series[id] = &series{name: key, window: wn}
	}
	restoredPatterns := 0
	for key, word := range snap.Words {
		if _, ok := p.names[key]; ok {
			continue
		}
		if err := p.addPatternLocked(key, word); err != nil {
			// Identical content under a new name is already registered;
			// treat it like the guard treats a bound key.
			if errors.Is(err, errs.ErrDuplicatePattern) {
				continue
			}

			return err
		}
		restoredPatterns++
	}

	p.logger.Debug("snapshot restored",
		zap.Int("series_added", added),
		zap.Int("patterns_added", restoredPatterns),
		zap.Int("series_total", len(p.series)))

	return nil
}

// deriveKey turns a free-form name into a snapshot key. Valid names pass
// through; invalid bytes are rewritten to underscores; keys that still fail
// validation, or collide with an earlier derivation, fall back to the name
// hash.
func deriveKey(name string, used map[string]bool) string {
	key := name
	if snapshot.ValidateKey(key) != nil {
		key = sanitizeName(name)
	}
	if snapshot.ValidateKey(key) != nil || used[key] {
		key = fmt.Sprintf("s_%016x", hash.ID(name))
	}
	used[key] = true

	return key
}

func sanitizeName(name string) string {
	b := []byte(name)
	for i := 0; i < len(b); i++ {
		ch := b[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch == '_', ch == '.':
		case ch >= '0' && ch <= '9':
		default:
			b[i] = '_'
		}
	}

	return string(b)
}
