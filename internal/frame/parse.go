package frame

import (
	"fmt"
	"regexp"
	"strings"
)

// lineLayout is the fixed textual layout for one raw stack frame:
//
//	File "<path>", line <n>, in <context>
//
// The line number is captured as text, not parsed into an integer.
var lineLayout = regexp.MustCompile(`^File "(.*)", line (\d+), in (.*)$`)

// ParseError reports a raw frame line that does not match the fixed layout.
// This is a contract violation in the collaborator supplying the raw trace;
// callers log it and drop the capture attempt rather than propagating it.
type ParseError struct {
	Index int    // position of the bad line in the raw trace
	Line  string // the offending text
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("raw frame %d does not match layout %q: %q", e.Index, `File "<path>", line <n>, in <context>`, e.Line)
}

// ParseLine parses a single raw frame line into a Frame.
// The trailing newline, if any, must already be stripped.
func ParseLine(raw string) (Frame, bool) {
	m := lineLayout.FindStringSubmatch(raw)
	if m == nil {
		return Frame{}, false
	}
	return Frame{File: m[1], Line: m[2], Context: m[3]}, true
}

// Normalize converts a raw captured trace into a Stack, dropping every line
// the excluded predicate matches. Surviving lines are parsed in original
// order; a line that survives filtering but does not match the layout yields
// a ParseError.
//
// A trace whose every line is excluded normalizes to an empty Stack, which is
// valid and still participates in deduplication.
func Normalize(raw []string, excluded func(string) bool) (Stack, error) {
	stack := Stack{}
	for i, line := range raw {
		line = strings.TrimRight(line, "\n")
		if excluded != nil && excluded(line) {
			continue
		}
		f, ok := ParseLine(line)
		if !ok {
			return nil, &ParseError{Index: i, Line: line}
		}
		stack = append(stack, f)
	}
	return stack, nil
}
