package sensor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"lightstick.klederson.com/internal/sample"
)

// Sampler reads samples from a Source and appends them to a Store, one per
// period or as fast as a self-paced source delivers them. It is the only
// writer of the store.
type Sampler struct {
	src    Source
	store  *sample.Store
	period time.Duration
	log    *slog.Logger

	onSample func(filtered float64)

	reads    atomic.Uint64
	failures atomic.Uint64
}

// NewSampler creates a sampler. A nil logger uses slog.Default().
func NewSampler(src Source, store *sample.Store, period time.Duration, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sampler{
		src:    src,
		store:  store,
		period: period,
		log:    logger.With("component", "sampler"),
	}
}

// OnSample registers fn to run after each append with the stored value.
// It runs on the sampling goroutine and must be set before Run.
func (s *Sampler) OnSample(fn func(filtered float64)) {
	s.onSample = fn
}

// Run samples until ctx is done, the source reports io.EOF or the stream
// fails. Other read errors are logged and counted and sampling continues.
// Sources that block on the device (serial) set the pace themselves; the
// ticker paces the rest, such as the mock sensor.
func (s *Sampler) Run(ctx context.Context) error {
	_, paced := s.src.(selfPaced)
	s.log.Info("sampling started", "period", s.period, "self_paced", paced)
	defer func() {
		s.log.Info("sampling stopped", "reads", s.reads.Load(), "errors", s.failures.Load())
	}()

	if paced {
		for ctx.Err() == nil {
			if err := s.Step(ctx); err != nil {
				return s.stopErr(ctx, err)
			}
		}
		return nil
	}

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Step(ctx); err != nil {
				return s.stopErr(ctx, err)
			}
		}
	}
}

// stopErr maps the error that ended sampling to Run's result. End of
// stream and cancellation are clean stops.
func (s *Sampler) stopErr(ctx context.Context, err error) error {
	if errors.Is(err, io.EOF) || ctx.Err() != nil {
		return nil
	}
	s.log.Error("sensor stream failed", "error", err)
	return err
}

// Step reads and appends a single sample. io.EOF, ErrStreamFailed and
// context errors are returned; other read failures such as malformed lines
// are logged and swallowed.
func (s *Sampler) Step(ctx context.Context) error {
	smp, err := s.src.Read(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, ErrStreamFailed) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		n := s.failures.Add(1)
		s.log.Warn("sensor read failed", "error", err, "count", n)
		return nil
	}

	f := s.store.Append(smp)
	s.reads.Add(1)
	if s.onSample != nil {
		s.onSample(f)
	}
	return nil
}

// Counts returns the number of successful reads and read errors so far.
func (s *Sampler) Counts() (reads, errs uint64) {
	return s.reads.Load(), s.failures.Load()
}
