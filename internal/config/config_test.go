package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "service:\n  name: credibility\n"))
	require.NoError(t, err)

	assert.Equal(t, "credibility", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "heuristic", cfg.Classifier.Mode)
	assert.Equal(t, 512, cfg.Classifier.MaxTextLength)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.FactCheck.CacheTTL)
	assert.InDelta(t, 0.5, cfg.Scoring.Weights.ModelConfidence, 1e-9)
	assert.InDelta(t, 0.3, cfg.Scoring.Weights.FactCheckEvidence, 1e-9)
	assert.InDelta(t, 0.2, cfg.Scoring.Weights.SourceReputation, 1e-9)
}

func TestLoad_YAMLValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
service:
  port: 9000
classifier:
  mode: remote
  sidecar_url: http://inference:9999
  max_text_length: 1024
scoring:
  weights:
    model_confidence: 0.6
    fact_check_evidence: 0.25
    source_reputation: 0.15
database:
  driver: postgres
  dsn: "host=db user=app dbname=credibility sslmode=disable"
`))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Service.Port)
	assert.Equal(t, "remote", cfg.Classifier.Mode)
	assert.Equal(t, "http://inference:9999", cfg.Classifier.SidecarURL)
	assert.Equal(t, 1024, cfg.Classifier.MaxTextLength)
	assert.InDelta(t, 0.6, cfg.Scoring.Weights.ModelConfidence, 1e-9)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CREDIBILITY_PORT", "7070")
	t.Setenv("CLASSIFIER_MODE", "remote")
	t.Setenv("FACTCHECK_API_KEY", "secret-key")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "service:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Service.Port, "env override wins over yaml")
	assert.Equal(t, "remote", cfg.Classifier.Mode)
	assert.Equal(t, "secret-key", cfg.FactCheck.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_InvalidMode(t *testing.T) {
	_, err := Load(writeConfig(t, "classifier:\n  mode: quantum\n"))
	assert.ErrorContains(t, err, "classifier mode")
}

func TestLoad_InvalidDriver(t *testing.T) {
	_, err := Load(writeConfig(t, "database:\n  driver: oracle\n"))
	assert.ErrorContains(t, err, "database driver")
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "config.yml", GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/credibility/config.yml")
	assert.Equal(t, "/etc/credibility/config.yml", GetConfigPath("config.yml"))
}
