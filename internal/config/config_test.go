package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "API_BASE_URL=http://localhost:8000/api\n" +
		"API_TOKEN=tok\n" +
		"POLL_INTERVAL_SECONDS=3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.PollInterval())
	assert.Equal(t, 15*time.Second, cfg.ActivityPollInterval())
	assert.Equal(t, 30*time.Second, cfg.BadgePollInterval())
}

func TestLoadMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://example.com")
	t.Setenv("API_TOKEN", "envtok")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "envtok", cfg.APIToken)
}

func TestValidateRejectsMissingFields(t *testing.T) {
	assert.Error(t, Config{APIToken: "x", PollIntervalSeconds: 5}.Validate())
	assert.Error(t, Config{APIBaseURL: "x", PollIntervalSeconds: 5}.Validate())
	assert.Error(t, Config{APIBaseURL: "x", APIToken: "y"}.Validate())
}

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: custom\nprimary: \"#ff0000\"\n"), 0o644))

	th, err := LoadTheme(path)
	require.NoError(t, err)
	require.NotNil(t, th)
	assert.Equal(t, "#ff0000", th.Primary)

	// Missing file is not an error
	th, err = LoadTheme(filepath.Join(dir, "nope.yml"))
	require.NoError(t, err)
	assert.Nil(t, th)
}

func TestLoadThemeRejectsBadColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yml")
	require.NoError(t, os.WriteFile(path, []byte("primary: red\n"), 0o644))

	_, err := LoadTheme(path)
	assert.Error(t, err)
}
