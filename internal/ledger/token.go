package ledger

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces capture IDs for newly recorded stacks. The IDs are
// diagnostic correlation handles only; they never participate in stack
// equality.
//
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 capture IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, so IDs sort by
// capture time, which helps when reading interleaved log lines.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined capture IDs for testing. It enables
// deterministic ledger snapshots and golden report comparison.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
// Generate panics once all ids are consumed; tests supplying too few ids
// should fail loudly rather than silently reuse one.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("ledger: FixedGenerator exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
