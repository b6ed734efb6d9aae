// Package tracer ties capture, filtering, and the dedup ledger together
// behind one injected context object.
//
// A Tracer observes invocations of tracked operations on domain entities,
// captures the invoking call stack, filters noise frames, and records each
// distinct call path exactly once per entity class. It is a side-effecting
// observer: nothing it does may alter the outcome of the operation it
// instruments.
package tracer

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/roach88/calltrace/internal/filter"
	"github.com/roach88/calltrace/internal/frame"
	"github.com/roach88/calltrace/internal/ledger"
)

// Tracer is the capture context: the tracking gate, the frame filter, and
// the dedup ledger, with a defined lifecycle (created at process start,
// lives for the process duration). Callers hold a reference instead of
// reaching for ambient globals, which makes the locking policy a property
// of this object.
//
// Thread-safety model:
//   - the ledger serializes all access behind its own mutex
//   - the gate is guarded by the Tracer's mutex
//
// The gate is one flag per Tracer, so a scoped suspension on one
// goroutine suppresses capture on every goroutine sharing the Tracer for
// its duration. See WithTrackingSuspended.
type Tracer struct {
	mu       sync.Mutex
	tracking bool
	// resting is the configured gate default, what a scoped suspension
	// restores when it ends.
	resting bool

	filter *filter.Filter
	ledger *ledger.Ledger
	log    *slog.Logger
	depth  int
}

// Option configures a Tracer.
type Option func(*Tracer)

// WithTracking sets the gate default. Configuration uses this to start a
// Tracer disabled; a scoped suspension restores the gate to this default,
// not unconditionally to enabled.
func WithTracking(enabled bool) Option {
	return func(t *Tracer) {
		t.tracking = enabled
		t.resting = enabled
	}
}

// WithFilter replaces the default frame filter.
func WithFilter(f *filter.Filter) Option {
	return func(t *Tracer) {
		t.filter = f
	}
}

// WithLedger replaces the default ledger. Useful when tests need a ledger
// with a fixed capture-id generator.
func WithLedger(l *ledger.Ledger) Option {
	return func(t *Tracer) {
		t.ledger = l
	}
}

// WithLogger replaces the logger used for capture-path diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(t *Tracer) {
		t.log = log
	}
}

// WithCaptureDepth bounds how many frames one capture walks.
func WithCaptureDepth(depth int) Option {
	return func(t *Tracer) {
		t.depth = depth
	}
}

// New creates a Tracer with tracking enabled. Defaults: the built-in
// exclusion patterns, a fresh ledger logging through slog.Default(), and
// frame.DefaultCaptureDepth.
func New(opts ...Option) *Tracer {
	t := &Tracer{
		tracking: true,
		resting:  true,
		filter:   filter.Default(),
		log:      slog.Default(),
		depth:    frame.DefaultCaptureDepth,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.ledger == nil {
		t.ledger = ledger.New(ledger.WithLogger(t.log))
	}
	return t
}

// Ledger exposes the tracer's dedup ledger for inspection.
func (t *Tracer) Ledger() *ledger.Ledger {
	return t.ledger
}

// Snapshot returns the current ledger report.
func (t *Tracer) Snapshot() ledger.Report {
	return t.ledger.Snapshot()
}

// Tracking reports whether the gate is enabled.
func (t *Tracer) Tracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracking
}

func (t *Tracer) setTracking(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tracking = enabled
}

// WithTrackingSuspended disables the gate, runs op, and unconditionally
// restores the gate to its configured default before returning, on the
// error path and across panics alike. op's error propagates unchanged.
//
// Nested suspensions are tolerated: the inner restore brings the gate back
// to the default for the remainder of the outer scope. Concurrent
// overlapping suspensions from different goroutines are not coordinated;
// the gate is shared state.
func (t *Tracer) WithTrackingSuspended(op func() error) error {
	t.setTracking(false)
	defer t.restoreTracking()
	return op()
}

func (t *Tracer) restoreTracking() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tracking = t.resting
}

// CaptureCallStack records the current call stack under classID. With the
// gate disabled it returns immediately, paying no normalization cost.
//
// Capture failures never escape: a malformed trace is logged and the
// attempt dropped, leaving the instrumented operation untouched.
func (t *Tracer) CaptureCallStack(classID string) {
	if !t.Tracking() {
		return
	}
	// Skip this method itself; Capture already accounts for the walk
	// internals, and the filter drops the capture path besides.
	t.record(classID, frame.Capture(1, t.depth))
}

// CaptureRaw records a pre-rendered raw trace under classID, for
// collaborators that capture stacks themselves. Lines must use the fixed
// layout `File "<path>", line <n>, in <context>`, oldest caller first.
func (t *Tracer) CaptureRaw(classID string, raw []string) {
	if !t.Tracking() {
		return
	}
	t.record(classID, raw)
}

func (t *Tracer) record(classID string, raw []string) {
	stack, err := frame.Normalize(raw, t.filter.Excluded)
	if err != nil {
		var perr *frame.ParseError
		if errors.As(err, &perr) {
			t.log.Warn("dropping capture: malformed raw trace",
				"class", classID,
				"index", perr.Index,
				"line", perr.Line,
			)
			return
		}
		t.log.Warn("dropping capture", "class", classID, "error", err)
		return
	}
	t.ledger.Record(classID, stack)
}
