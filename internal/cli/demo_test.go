package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_TextReport(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "Call Stack Ledger")
	// The workload's entity class shows up with its distinct call sites.
	assert.Contains(t, out, "=== store.Record ===")
	assert.Contains(t, out, "=== Stats ===")
}

func TestDemo_DeduplicatesRepeatedCallSite(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)

	// The ingest loop saves twice from one call site; one duplicate is
	// suppressed. The suspended housekeeping save records nothing.
	assert.Contains(t, out, "Duplicates: 1")
}

func TestDemo_JSONReport(t *testing.T) {
	out, err := execute(t, "demo", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Classes []struct {
				Class  string `json:"class"`
				Stacks []struct {
					CaptureID string `json:"capture_id"`
					Hash      string `json:"hash"`
				} `json:"stacks"`
			} `json:"classes"`
			Stats struct {
				Classes    int `json:"classes"`
				Stacks     int `json:"stacks"`
				Duplicates int `json:"duplicates"`
			} `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotEmpty(t, resp.Data.Classes)
	assert.Equal(t, "store.Record", resp.Data.Classes[0].Class)
	assert.Equal(t, 1, resp.Data.Stats.Duplicates)
}

func TestDemo_OnDiskDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.db")

	_, err := execute(t, "demo", "--db", path)
	require.NoError(t, err)

	assert.FileExists(t, path)
}

func TestDemo_WithConfig(t *testing.T) {
	cfg := writeTempConfig(t, "exclude: ['internal/cli/demo\\.go']\n")

	out, err := execute(t, "demo", "--config", cfg)
	require.NoError(t, err)
	// With the demo's own call sites excluded, the surviving stacks have
	// no frames from demo.go.
	assert.NotContains(t, out, "demo.go:")
}

func TestDemo_ConfigDisablesTracking(t *testing.T) {
	cfg := writeTempConfig(t, "tracking: false\n")

	out, err := execute(t, "demo", "--config", cfg)
	require.NoError(t, err)
	// With the gate disabled from config, the workload runs but records
	// nothing: no classes, no suppressed duplicates.
	assert.Contains(t, out, "(no classes observed)")
	assert.Contains(t, out, "Duplicates: 0")
}

func TestDemo_BadConfig(t *testing.T) {
	cfg := writeTempConfig(t, "tracking: 3\n")

	_, err := execute(t, "demo", "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
