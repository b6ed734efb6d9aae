package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calltrace/internal/filter"
)

func TestPatterns_ListsBuiltins(t *testing.T) {
	out, err := execute(t, "patterns")
	require.NoError(t, err)

	for _, p := range filter.Default().Patterns() {
		assert.Contains(t, out, p)
	}
}

func TestPatterns_IncludesConfiguredExtras(t *testing.T) {
	path := writeTempConfig(t, "exclude: ['vendor/legacy']\n")

	out, err := execute(t, "patterns", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "vendor/legacy")
}

func TestPatterns_JSON(t *testing.T) {
	out, err := execute(t, "patterns", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Patterns []string `json:"patterns"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, filter.Default().Patterns(), resp.Data.Patterns)
}

func TestPatterns_BadConfig(t *testing.T) {
	path := writeTempConfig(t, "log_level: loud\n")

	_, err := execute(t, "patterns", "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
