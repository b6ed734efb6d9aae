package adapter

import (
	"context"

	"github.com/roach88/calltrace/internal/tracer"
)

// Querier is the host framework's collection-fetch capability for one
// entity type.
type Querier[E any] interface {
	FetchAll(ctx context.Context) ([]E, error)
}

// Query wraps a Querier with call-stack capture before each fetch. It
// implements Querier[E] itself.
type Query[E any] struct {
	tracer *tracer.Tracer
	next   Querier[E]
	class  string
}

// WrapQuerier instruments next with capture keyed by E's type name.
func WrapQuerier[E any](t *tracer.Tracer, next Querier[E]) *Query[E] {
	return &Query[E]{tracer: t, next: next, class: TypeNameFor[E]()}
}

// FetchAll captures the invoking call stack, then delegates. The fetched
// collection and any error pass through unchanged.
func (q *Query[E]) FetchAll(ctx context.Context) ([]E, error) {
	q.tracer.CaptureCallStack(q.class)
	return q.next.FetchAll(ctx)
}
