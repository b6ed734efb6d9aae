package ledger

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/calltrace/internal/frame"
)

// Report is a point-in-time snapshot of the ledger, ordered for
// deterministic rendering: classes in first-seen order, stacks in first-seen
// order within each class.
type Report struct {
	Classes []ClassReport `json:"classes"`
	Stats   Stats         `json:"stats"`
}

// ClassReport holds the distinct stacks observed for one entity class.
type ClassReport struct {
	Class  string        `json:"class"`
	Stacks []StackRecord `json:"stacks"`
}

// StackRecord is one distinct stack with its diagnostic identifiers.
type StackRecord struct {
	CaptureID string      `json:"capture_id"`
	Hash      string      `json:"hash"`
	Frames    frame.Stack `json:"frames"`
}

// Stats summarizes ledger growth.
type Stats struct {
	Classes    int `json:"classes"`
	Stacks     int `json:"stacks"`
	Duplicates int `json:"duplicates"`
}

// Snapshot copies the ledger into a Report. The report shares no state with
// the ledger; recording may continue while the caller renders it.
func (l *Ledger) Snapshot() Report {
	l.mu.Lock()
	defer l.mu.Unlock()

	report := Report{Classes: []ClassReport{}}
	for _, classID := range l.order {
		entry := l.book[classID]
		cr := ClassReport{Class: classID, Stacks: make([]StackRecord, 0, len(entry))}
		for _, rec := range entry {
			stack := make(frame.Stack, len(rec.stack))
			copy(stack, rec.stack)
			cr.Stacks = append(cr.Stacks, StackRecord{
				CaptureID: rec.id,
				Hash:      rec.hash,
				Frames:    stack,
			})
		}
		report.Classes = append(report.Classes, cr)
		report.Stats.Stacks += len(entry)
	}
	report.Stats.Classes = len(l.order)
	report.Stats.Duplicates = l.dups
	return report
}

// WriteText renders the report for humans. Output is deterministic given a
// deterministic id generator, which is what the golden tests rely on.
func (r Report) WriteText(w io.Writer) {
	fmt.Fprintln(w, "Call Stack Ledger")
	fmt.Fprintln(w)

	if len(r.Classes) == 0 {
		fmt.Fprintln(w, "  (no classes observed)")
		fmt.Fprintln(w)
	}
	for _, cr := range r.Classes {
		fmt.Fprintf(w, "=== %s ===\n", cr.Class)
		for i, rec := range cr.Stacks {
			fmt.Fprintf(w, "  [%d] capture %s (hash %s)\n", i+1, rec.CaptureID, truncateHash(rec.Hash))
			if len(rec.Frames) == 0 {
				fmt.Fprintln(w, "      (no frames survived filtering)")
				continue
			}
			for _, f := range rec.Frames {
				fmt.Fprintf(w, "      %s:%s in %s\n", f.File, f.Line, f.Context)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Classes:    %d\n", r.Stats.Classes)
	fmt.Fprintf(w, "  Stacks:     %d\n", r.Stats.Stacks)
	fmt.Fprintf(w, "  Duplicates: %d\n", r.Stats.Duplicates)
}

// classSnapshot renders one class entry compactly for debug logging.
func classSnapshot(classID string, entry []recorded) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:", classID)
	for _, rec := range entry {
		fmt.Fprintf(&b, " [%s", truncateHash(rec.hash))
		for _, f := range rec.stack {
			fmt.Fprintf(&b, " %s:%s", f.File, f.Line)
		}
		b.WriteString("]")
	}
	return b.String()
}

// truncateHash shortens a content hash for display.
func truncateHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:8] + "..." + hash[len(hash)-8:]
}
