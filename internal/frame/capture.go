package frame

import (
	"fmt"
	"runtime"
)

// DefaultCaptureDepth bounds how many program counters one capture walks.
// Deep enough for any realistic call path into a persistence layer.
const DefaultCaptureDepth = 64

// Capture walks the current goroutine's call stack and renders each frame
// into the fixed raw-trace layout, oldest caller first.
//
// skip counts frames to drop from the top of the walk before rendering,
// not counting Capture itself (skip 0 starts at Capture's caller). max
// bounds the walk; values < 1 fall back to DefaultCaptureDepth.
//
// The rendered lines feed Normalize, so filtering and parsing behave
// identically whether the trace came from this runtime or from an external
// collaborator handing over pre-rendered lines.
func Capture(skip, max int) []string {
	if max < 1 {
		max = DefaultCaptureDepth
	}
	pcs := make([]uintptr, max)
	// +2 skips runtime.Callers and Capture itself.
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	var newestFirst []string
	for {
		fr, more := frames.Next()
		newestFirst = append(newestFirst, fmt.Sprintf("File %q, line %d, in %s", fr.File, fr.Line, fr.Function))
		if !more {
			break
		}
	}

	// runtime yields innermost frame first; the raw-trace contract is
	// oldest caller first.
	oldestFirst := make([]string, len(newestFirst))
	for i, line := range newestFirst {
		oldestFirst[len(newestFirst)-1-i] = line
	}
	return oldestFirst
}
