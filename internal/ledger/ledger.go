// Package ledger is the deduplicating stack book: a process-lifetime mapping
// from entity-class identifier to the distinct call stacks observed for that
// class, in first-seen order.
//
// The ledger grows monotonically. Entries are never removed, capped, or
// merged; the only bound on memory is deduplication itself. That is an
// accepted tradeoff, not an oversight.
package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/roach88/calltrace/internal/frame"
)

// recorded is one distinct stack inside a class entry, together with its
// content hash (fast-reject for dedup scans) and diagnostic capture id.
type recorded struct {
	id    string
	hash  string
	stack frame.Stack
}

// Ledger maps entity-class identifiers to the distinct stacks seen for them.
//
// All access is serialized behind a single mutex. Capture is synchronous and
// on the critical path of every instrumented call, so the work done under
// the lock stays bounded: one hash plus, on hash collision only, a
// structural compare.
type Ledger struct {
	mu    sync.Mutex
	book  map[string][]recorded
	order []string // class ids in first-observation order
	dups  int      // suppressed duplicate count, diagnostics only

	ids IDGenerator
	log *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator replaces the capture-id source. Tests use FixedGenerator
// for deterministic snapshots.
func WithIDGenerator(g IDGenerator) Option {
	return func(l *Ledger) {
		l.ids = g
	}
}

// WithLogger replaces the logger used for the one-per-new-stack info record.
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) {
		l.log = log
	}
}

// New creates an empty ledger. Defaults: UUIDv7 capture ids, slog.Default().
func New(opts ...Option) *Ledger {
	l := &Ledger{
		book: make(map[string][]recorded),
		ids:  UUIDv7Generator{},
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record inserts the stack under classID unless an identical stack is
// already present. Returns true if the stack was new for this class.
//
// The class entry is created lazily on first observation. Dedup is exact
// structural equality; the content hash only short-circuits the scan.
// On a new stack, one info record is emitted with the class id, the capture
// id, and the entry's new size, plus the class's full entry at debug level.
func (l *Ledger) Record(classID string, stack frame.Stack) bool {
	hash := stack.Hash()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, seen := l.book[classID]
	for _, rec := range entry {
		if rec.hash == hash && rec.stack.Equal(stack) {
			l.dups++
			return false
		}
	}

	if !seen {
		l.order = append(l.order, classID)
	}
	rec := recorded{id: l.ids.Generate(), hash: hash, stack: stack}
	l.book[classID] = append(entry, rec)

	l.log.Info("recorded new call stack",
		"class", classID,
		"capture_id", rec.id,
		"stacks", len(l.book[classID]),
	)
	if l.log.Enabled(context.Background(), slog.LevelDebug) {
		l.log.Debug("ledger entry", "class", classID, "entry", classSnapshot(classID, l.book[classID]))
	}
	return true
}

// Classes returns the observed class identifiers in first-seen order.
func (l *Ledger) Classes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of distinct stacks recorded for classID.
// A never-observed class has no entry and reports zero.
func (l *Ledger) Len(classID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.book[classID])
}

// Duplicates returns how many Record calls were suppressed as duplicates.
func (l *Ledger) Duplicates() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dups
}
