package ledger

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calltrace/internal/frame"
)

var (
	frameA = frame.Frame{File: "app/main.go", Line: "10", Context: "main.run"}
	frameB = frame.Frame{File: "app/repo.go", Line: "42", Context: "repo.SaveUser"}
)

func quietLedger(opts ...Option) *Ledger {
	opts = append([]Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return New(opts...)
}

func TestRecord_IdempotentDedup(t *testing.T) {
	l := quietLedger()

	assert.True(t, l.Record("Widget", frame.Stack{frameA, frameB}))
	assert.False(t, l.Record("Widget", frame.Stack{frameA, frameB}))
	assert.True(t, l.Record("Widget", frame.Stack{frameA}))

	assert.Equal(t, 2, l.Len("Widget"))
	assert.Equal(t, 1, l.Duplicates())

	report := l.Snapshot()
	require.Len(t, report.Classes, 1)
	stacks := report.Classes[0].Stacks
	require.Len(t, stacks, 2)
	assert.Equal(t, frame.Stack{frameA, frameB}, stacks[0].Frames)
	assert.Equal(t, frame.Stack{frameA}, stacks[1].Frames)
}

func TestRecord_EqualValueDistinctSlice(t *testing.T) {
	l := quietLedger()

	first := frame.Stack{frameA, frameB}
	second := frame.Stack{
		{File: "app/main.go", Line: "10", Context: "main.run"},
		{File: "app/repo.go", Line: "42", Context: "repo.SaveUser"},
	}

	assert.True(t, l.Record("Widget", first))
	assert.False(t, l.Record("Widget", second))
}

func TestRecord_EmptyStackIsRecordable(t *testing.T) {
	l := quietLedger()

	assert.True(t, l.Record("Widget", frame.Stack{}))
	assert.False(t, l.Record("Widget", frame.Stack{}))
	assert.Equal(t, 1, l.Len("Widget"))
}

func TestRecord_ClassesAreIndependent(t *testing.T) {
	l := quietLedger()

	assert.True(t, l.Record("Widget", frame.Stack{frameA}))
	assert.True(t, l.Record("Gadget", frame.Stack{frameA}))
	assert.Equal(t, 1, l.Len("Widget"))
	assert.Equal(t, 1, l.Len("Gadget"))
}

func TestClasses_FirstSeenOrder(t *testing.T) {
	l := quietLedger()

	l.Record("Zeta", frame.Stack{frameA})
	l.Record("Alpha", frame.Stack{frameA})
	l.Record("Zeta", frame.Stack{frameB})

	assert.Equal(t, []string{"Zeta", "Alpha"}, l.Classes())
}

func TestLen_UnobservedClassHasNoEntry(t *testing.T) {
	l := quietLedger()

	assert.Equal(t, 0, l.Len("Never"))
	assert.Empty(t, l.Classes())
}

func TestRecord_LogsNewStacksOnly(t *testing.T) {
	var buf bytes.Buffer
	l := New(
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		WithIDGenerator(NewFixedGenerator("cap-1")),
	)

	l.Record("Widget", frame.Stack{frameA})
	first := buf.String()
	assert.Contains(t, first, "recorded new call stack")
	assert.Contains(t, first, "Widget")
	assert.Contains(t, first, "cap-1")

	buf.Reset()
	l.Record("Widget", frame.Stack{frameA})
	assert.Empty(t, buf.String())
}

func TestSnapshot_IsACopy(t *testing.T) {
	l := quietLedger(WithIDGenerator(NewFixedGenerator("cap-1", "cap-2")))

	l.Record("Widget", frame.Stack{frameA})
	report := l.Snapshot()
	l.Record("Widget", frame.Stack{frameB})

	require.Len(t, report.Classes, 1)
	assert.Len(t, report.Classes[0].Stacks, 1)
	assert.Equal(t, "cap-1", report.Classes[0].Stacks[0].CaptureID)
	assert.Equal(t, 1, report.Stats.Stacks)
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	g := NewFixedGenerator("only")
	assert.Equal(t, "only", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestUUIDv7Generator_UniqueIDs(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
