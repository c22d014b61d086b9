package config

import (
	"os"
	"path/filepath"
	"testing"

	"starred-catalog/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{EnvToken, EnvUsername, EnvAPIURL, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, " ghp_abc ")
	t.Setenv(EnvUsername, "octocat")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "ghp_abc", cfg.GitHub.Token)
	assert.Equal(t, "octocat", cfg.GitHub.Username)
	assert.Equal(t, "", cfg.GitHub.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MissingToken(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeConfig, common.CodeOf(err))
	assert.Contains(t, err.Error(), "missing GITHUB_TOKEN")
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvToken)
	os.Unsetenv(EnvUsername)
	t.Setenv(EnvLogLevel, "debug")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GITHUB_TOKEN=from_file\nGITHUB_USERNAME=filer\nLOG_LEVEL=error\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv(EnvToken)
		os.Unsetenv(EnvUsername)
	})

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.GitHub.Token)
	assert.Equal(t, "filer", cfg.GitHub.Username)
	assert.Equal(t, "debug", cfg.LogLevel, "process environment wins over the file")
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "tok")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.GitHub.Token)
}
