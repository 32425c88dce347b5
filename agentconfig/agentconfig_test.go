package agentconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "configuration.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPreferredModel(t *testing.T) {
	path := writeConfig(t, `{"llm": {"provider": "openai", "model": "gpt-4o"}}`)
	t.Setenv("AGENT_CONFIG", path)

	cfg := Load()
	assert.Equal(t, "openai/gpt-4o", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 8192, cfg.MaxTokens)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	t.Setenv("AGENT_CONFIG", filepath.Join(t.TempDir(), "nope.json"))

	cfg := Load()
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoadIncompleteLLMFallsBack(t *testing.T) {
	path := writeConfig(t, `{"llm": {"provider": "openai"}}`)
	t.Setenv("AGENT_CONFIG", path)

	assert.Equal(t, DefaultModel, Load().Model)
}

func TestLoadInvalidJSONFallsBack(t *testing.T) {
	path := writeConfig(t, `{"llm": `)
	t.Setenv("AGENT_CONFIG", path)

	assert.Equal(t, DefaultModel, Load().Model)
}
