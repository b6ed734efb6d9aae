// Package filter decides which raw stack-frame lines are noise.
//
// A frame is excluded when ANY pattern matches its full raw text. Everything
// not explicitly excluded is kept, so new noise sources are handled by adding
// a pattern, never by touching the normalizer or the ledger.
package filter

import (
	"fmt"
	"regexp"
)

// defaultExclude drops the three noise classes a capture always carries:
//
//   - Go runtime and test harness frames (src/runtime, src/testing)
//   - this module's own capture path (the tracer must not trace itself)
//   - frames with no stable file/line identity, which would defeat
//     deduplication
//
// The runtime patterns anchor on the stdlib package directories, not on a
// bare `/go/src/` prefix: a GOPATH-style checkout puts application code
// under a `go/src/` path too, and those frames must stay visible.
var defaultExclude = []string{
	`/src/runtime/`,
	`/src/testing/`,
	`internal/frame/capture\.go`,
	`internal/tracer/tracer\.go`,
	`internal/adapter/`,
	`<autogenerated>`,
	`_cgo_gotypes`,
}

// Filter is a fixed set of compiled exclusion patterns. It is stateless and
// safe for concurrent use.
type Filter struct {
	patterns []*regexp.Regexp
}

// Default returns a filter carrying only the built-in exclusion patterns.
func Default() *Filter {
	f, err := New()
	if err != nil {
		// Built-in patterns are compile-time constants.
		panic(err)
	}
	return f
}

// New compiles the built-in patterns plus any extra ones, typically supplied
// by configuration. An invalid extra pattern fails the whole construction so
// misconfiguration surfaces at load time, not mid-capture.
func New(extra ...string) (*Filter, error) {
	sources := make([]string, 0, len(defaultExclude)+len(extra))
	sources = append(sources, defaultExclude...)
	sources = append(sources, extra...)
	return Compile(sources...)
}

// Compile builds a filter from exactly the given patterns, without the
// built-in set. Tests use this to keep their own frames visible; production
// callers almost always want New instead.
func Compile(patterns ...string) (*Filter, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, src := range patterns {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compile exclusion pattern %q: %w", src, err)
		}
		compiled = append(compiled, re)
	}
	return &Filter{patterns: compiled}, nil
}

// Excluded reports whether the raw frame line should be dropped from a
// normalized stack. The match runs against the full line, so a pattern can
// key on the file path, the line number, or the function context.
func (f *Filter) Excluded(line string) bool {
	for _, re := range f.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Patterns returns the pattern sources in evaluation order, for diagnostics.
func (f *Filter) Patterns() []string {
	out := make([]string, len(f.patterns))
	for i, re := range f.patterns {
		out[i] = re.String()
	}
	return out
}
