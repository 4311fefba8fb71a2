package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentmatch/talentmatch/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talentmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "openai", cfg.Oracle.Provider)
	assert.Equal(t, 2*time.Minute, cfg.Oracle.RequestTimeout)
	assert.Equal(t, 0, cfg.Oracle.MaxRetries)
	assert.Equal(t, 5, cfg.Matching.BatchSize)
	assert.Equal(t, 10, cfg.Matching.PageSize)
	assert.Equal(t, domain.DefaultWeights(), cfg.Matching.Weights)
	assert.False(t, cfg.Logging.Debug)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
oracle:
  provider: anthropic
  model: claude-3-5-haiku-20241022
  temperature: 0.3
matching:
  batch_size: 8
  weights:
    technical_skills: 50
    experience: 30
    training: 10
    context: 10
logging:
  debug: true
  json: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "anthropic", cfg.Oracle.Provider)
	assert.Equal(t, "claude-3-5-haiku-20241022", cfg.Oracle.Model)
	assert.InDelta(t, 0.3, cfg.Oracle.Temperature, 1e-9)
	assert.Equal(t, 8, cfg.Matching.BatchSize)
	assert.Equal(t, domain.WeightConfig{TechnicalSkills: 50, Experience: 30, Training: 10, Context: 10}, cfg.Matching.Weights)
	assert.True(t, cfg.Logging.Debug)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TALENTMATCH_ORACLE_API_KEY", "env-secret")
	t.Setenv("TALENTMATCH_SERVER_ADDR", ":7070")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Oracle.APIKey)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown provider",
			content: `
oracle:
  provider: internal-llm
`,
		},
		{
			name: "zero batch size",
			content: `
matching:
  batch_size: 0
`,
		},
		{
			name: "weights not summing to 100",
			content: `
matching:
  weights:
    technical_skills: 50
    experience: 30
    training: 10
    context: 5
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/talentmatch.yaml")
	assert.Error(t, err)
}
