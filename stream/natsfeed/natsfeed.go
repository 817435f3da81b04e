// Package natsfeed feeds a stream.Processor from a NATS subject.
//
// A Source subscribes to a subject carrying JSON Sample payloads and pushes
// every decoded sample into the processor. Matches are reported through the
// processor's own logger; the source only moves bytes:
//
//	src, err := natsfeed.Connect(natsfeed.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer src.Close()
//
//	if err := src.Run(ctx, proc); err != nil {
//		return err
//	}
//
// Malformed payloads and samples the processor rejects are counted and
// skipped rather than stopping the feed.
package natsfeed

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"

	"github.com/Quadrocube/symtseries/errs"
	"github.com/Quadrocube/symtseries/stream"
)

// Config holds the NATS source configuration.
type Config struct {
	// URL is the NATS server URL.
	URL string
	// Subject carries the Sample payloads.
	Subject string
	// Queue makes the subscription part of a queue group, spreading the
	// subject across source instances. Empty means a plain subscription.
	Queue string
	// MaxReconnects bounds reconnection attempts after a lost connection.
	MaxReconnects int
	// ReconnectWait is the pause between reconnection attempts.
	ReconnectWait time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		Subject:       "symtseries.samples",
		MaxReconnects: 10,
		ReconnectWait: 2 * time.Second,
	}
}

// Source is a NATS-backed sample feed for a stream.Processor.
type Source struct {
	nc  *nats.Conn
	cfg Config

	closed   atomic.Bool
	received atomic.Uint64
	dropped  atomic.Uint64
}

// Connect establishes the NATS connection for a source. The connection
// retries in the background when the server is unavailable, so Connect only
// fails on configuration errors.
func Connect(cfg Config) (*Source, error) {
	if cfg.Subject == "" {
		return nil, fmt.Errorf("empty subject")
	}
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}

	nc, err := nats.Connect(cfg.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.URL, err)
	}

	return &Source{nc: nc, cfg: cfg}, nil
}

// Run subscribes to the configured subject and feeds every decoded sample
// into proc until ctx is cancelled, then drains the subscription so
// in-flight messages finish. A cancelled context is the normal way to stop
// a source and is not reported as an error.
func (s *Source) Run(ctx context.Context, proc *stream.Processor) error {
	if s.closed.Load() {
		return errs.ErrSourceClosed
	}
	if proc == nil {
		return fmt.Errorf("nil processor")
	}

	handler := func(msg *nats.Msg) { s.handle(proc, msg.Data) }

	var (
		sub *nats.Subscription
		err error
	)
	if s.cfg.Queue != "" {
		sub, err = s.nc.QueueSubscribe(s.cfg.Subject, s.cfg.Queue, handler)
	} else {
		sub, err = s.nc.Subscribe(s.cfg.Subject, handler)
	}
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.cfg.Subject, err)
	}

	<-ctx.Done()

	if err := sub.Drain(); err != nil {
		return fmt.Errorf("drain subscription: %w", err)
	}

	return nil
}

func (s *Source) handle(proc *stream.Processor, data []byte) {
	s.received.Add(1)

	var smp Sample
	if err := json.Unmarshal(data, &smp); err != nil {
		s.dropped.Add(1)
		return
	}
	if _, err := proc.Observe(smp.Series, smp.Value); err != nil {
		s.dropped.Add(1)
	}
}

// Publish encodes a sample and publishes it on the source's subject. It
// exists for demos and tests; production producers usually publish from
// another process.
func (s *Source) Publish(series string, value float64) error {
	if s.closed.Load() {
		return errs.ErrSourceClosed
	}

	data, err := json.Marshal(Sample{Series: series, Value: value})
	if err != nil {
		return err
	}

	return s.nc.Publish(s.cfg.Subject, data)
}

// Received returns the number of messages delivered to the source.
func (s *Source) Received() uint64 { return s.received.Load() }

// Dropped returns the number of messages skipped because the payload did
// not decode or the processor rejected the sample.
func (s *Source) Dropped() uint64 { return s.dropped.Load() }

// IsConnected reports whether the underlying connection is currently up.
func (s *Source) IsConnected() bool {
	return s.nc != nil && s.nc.IsConnected()
}

// Close tears down the NATS connection. Subsequent Run and Publish calls
// return errs.ErrSourceClosed.
func (s *Source) Close() {
	if s.closed.Swap(true) {
		return
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
