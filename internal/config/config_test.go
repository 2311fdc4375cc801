package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "GITREST_ADDR", "GITREST_PREFIX", "GITREST_DATA_ROOT", "GITREST_GIT",
		"GITREST_COMMAND_TIMEOUT", "GITREST_DEFAULT_BRANCH", "GITREST_MAX_UPLOAD", "GITREST_VERBOSE",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	clearEnv(t)

	c := DefaultConfig()
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "", c.Prefix)
	assert.Equal(t, filepath.Join(os.TempDir(), "git"), c.DataRoot)
	assert.Equal(t, "git", c.GitBinary)
	assert.Equal(t, 30*time.Second, c.CommandTimeout)
	assert.Equal(t, "master", c.DefaultBranch)
	assert.Equal(t, int64(32<<20), c.MaxUploadBytes)
	assert.False(t, c.Verbose)
	require.NoError(t, c.Validate())
}

func TestDefaultConfig_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("GITREST_PREFIX", "/git/")
	t.Setenv("GITREST_DATA_ROOT", "/srv/gitrest")
	t.Setenv("GITREST_GIT", "/usr/local/bin/git")
	t.Setenv("GITREST_COMMAND_TIMEOUT", "5s")
	t.Setenv("GITREST_DEFAULT_BRANCH", "main")
	t.Setenv("GITREST_MAX_UPLOAD", "1024")
	t.Setenv("GITREST_VERBOSE", "true")

	c := DefaultConfig()
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "/git", c.Prefix)
	assert.Equal(t, "/srv/gitrest", c.DataRoot)
	assert.Equal(t, "/usr/local/bin/git", c.GitBinary)
	assert.Equal(t, 5*time.Second, c.CommandTimeout)
	assert.Equal(t, "main", c.DefaultBranch)
	assert.Equal(t, int64(1024), c.MaxUploadBytes)
	assert.True(t, c.Verbose)

	t.Setenv("GITREST_ADDR", "127.0.0.1:7000")
	assert.Equal(t, "127.0.0.1:7000", DefaultConfig().Addr)
}

func TestDefaultConfig_BadNumbersKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITREST_COMMAND_TIMEOUT", "soon")
	t.Setenv("GITREST_MAX_UPLOAD", "lots")

	c := DefaultConfig()
	assert.Equal(t, 30*time.Second, c.CommandTimeout)
	assert.Equal(t, int64(32<<20), c.MaxUploadBytes)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty data root", func(c *Config) { c.DataRoot = "" }, "data root is empty"},
		{"empty git", func(c *Config) { c.GitBinary = "" }, "git binary is empty"},
		{"zero timeout", func(c *Config) { c.CommandTimeout = 0 }, "command timeout must be positive"},
		{"relative prefix", func(c *Config) { c.Prefix = "git" }, "must start with /"},
		{"zero upload", func(c *Config) { c.MaxUploadBytes = 0 }, "max upload must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
