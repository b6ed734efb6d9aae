package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ExcludesNoiseFrames(t *testing.T) {
	f := Default()

	excluded := []string{
		`File "/usr/local/go/src/runtime/proc.go", line 250, in runtime.main`,
		`File "/usr/local/go/src/testing/testing.go", line 1690, in testing.tRunner`,
		`File "/home/ci/project/internal/frame/capture.go", line 30, in github.com/roach88/calltrace/internal/frame.Capture`,
		`File "/home/ci/project/internal/tracer/tracer.go", line 150, in github.com/roach88/calltrace/internal/tracer.(*Tracer).CaptureCallStack`,
		`File "/home/ci/project/internal/adapter/persistence.go", line 40, in github.com/roach88/calltrace/internal/adapter.(*Persistence[...]).Save`,
		`File "<autogenerated>", line 1, in pkg.(*T).Method`,
		`File "/tmp/build/_cgo_gotypes.go", line 12, in pkg._Cfunc_call`,
	}
	for _, line := range excluded {
		assert.True(t, f.Excluded(line), "should be excluded: %q", line)
	}
}

func TestDefault_KeepsApplicationFrames(t *testing.T) {
	f := Default()

	kept := []string{
		`File "/home/ci/project/internal/cli/demo.go", line 120, in github.com/roach88/calltrace/internal/cli.ingest`,
		`File "/srv/app/orders/checkout.go", line 88, in orders.Checkout`,
		`File "/home/user/go/pkg/mod/github.com/some/dep@v1.0.0/client.go", line 10, in dep.Do`,
		// GOPATH-style checkout: application code under go/src must survive.
		`File "/home/user/go/src/app/orders/checkout.go", line 88, in orders.Checkout`,
	}
	for _, line := range kept {
		assert.False(t, f.Excluded(line), "should be kept: %q", line)
	}
}

func TestSelfExclusion_IgnoresLineAndContext(t *testing.T) {
	// The tracer's own capture path is excluded no matter what line or
	// context the frame carries.
	f := Default()

	lines := []string{
		`File "/x/internal/tracer/tracer.go", line 1, in whatever`,
		`File "/x/internal/tracer/tracer.go", line 99999, in main.main`,
		`File "/x/internal/frame/capture.go", line 7, in anything.at.all`,
	}
	for _, line := range lines {
		assert.True(t, f.Excluded(line), "should be excluded: %q", line)
	}
}

func TestNew_AppendsExtraPatterns(t *testing.T) {
	f, err := New(`vendor/legacy`)
	require.NoError(t, err)

	assert.True(t, f.Excluded(`File "/srv/app/vendor/legacy/db.go", line 10, in legacy.Save`))
	assert.False(t, f.Excluded(`File "/srv/app/orders/checkout.go", line 88, in orders.Checkout`))
	assert.Len(t, f.Patterns(), len(Default().Patterns())+1)
}

func TestNew_InvalidPatternFailsConstruction(t *testing.T) {
	_, err := New(`([unclosed`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "([unclosed")
}

func TestCompile_UsesOnlyGivenPatterns(t *testing.T) {
	f, err := Compile(`/src/runtime/`)
	require.NoError(t, err)

	assert.True(t, f.Excluded(`File "/usr/local/go/src/runtime/proc.go", line 250, in runtime.main`))
	// The built-in self-exclusion is absent on purpose.
	assert.False(t, f.Excluded(`File "/x/internal/tracer/tracer.go", line 1, in whatever`))
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile(`)(`)
	assert.Error(t, err)
}
