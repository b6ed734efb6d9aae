// Package adapter instruments a host persistence layer with call-stack
// capture.
//
// Each adapter wraps an injected "real operation" capability and is
// generic over the entity type exposing it. Capture happens strictly
// before delegation, and the wrapped call's result or failure passes
// through untouched: wrapping an operation must be observationally
// identical to calling it directly.
package adapter

import (
	"context"

	"github.com/roach88/calltrace/internal/tracer"
)

// Persister is the host framework's save/delete capability for one entity
// type. The framework must call these synchronously, on the same goroutine
// as the real operation.
type Persister[E any] interface {
	Save(ctx context.Context, e E) error
	Delete(ctx context.Context, e E) error
}

// Persistence wraps a Persister with call-stack capture before save and
// delete. It implements Persister[E] itself, so wrapping composes.
type Persistence[E any] struct {
	tracer *tracer.Tracer
	next   Persister[E]
	class  string
}

// WrapPersister instruments next with capture keyed by E's type name.
func WrapPersister[E any](t *tracer.Tracer, next Persister[E]) *Persistence[E] {
	return &Persistence[E]{tracer: t, next: next, class: TypeNameFor[E]()}
}

// Save captures the invoking call stack, then delegates.
func (p *Persistence[E]) Save(ctx context.Context, e E) error {
	p.tracer.CaptureCallStack(p.class)
	return p.next.Save(ctx, e)
}

// Delete captures the invoking call stack, then delegates.
func (p *Persistence[E]) Delete(ctx context.Context, e E) error {
	p.tracer.CaptureCallStack(p.class)
	return p.next.Delete(ctx, e)
}
