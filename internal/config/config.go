// Package config provides centralized configuration for the gitrest server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds application-wide configuration.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// Prefix is prepended to every route, e.g. "/git".
	Prefix string
	// DataRoot is the base directory for session workspaces.
	DataRoot string
	// GitBinary is the git executable to run.
	GitBinary string
	// CommandTimeout bounds a single git invocation.
	CommandTimeout time.Duration
	// DefaultBranch is the initial branch of repositories created by init.
	DefaultBranch string
	// MaxUploadBytes caps the multipart body of a file upload.
	MaxUploadBytes int64
	// Verbose logs every git command line.
	Verbose bool
}

// DefaultConfig returns the default configuration, reading from environment variables.
// Unparsable numeric values fall back to the defaults; Validate reports what is left wrong.
func DefaultConfig() *Config {
	c := &Config{
		Addr:           ":8080",
		DataRoot:       filepath.Join(os.TempDir(), "git"),
		GitBinary:      "git",
		CommandTimeout: 30 * time.Second,
		DefaultBranch:  "master",
		MaxUploadBytes: 32 << 20,
	}

	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if addr := os.Getenv("GITREST_ADDR"); addr != "" {
		c.Addr = addr
	}
	c.Prefix = NormalizePrefix(os.Getenv("GITREST_PREFIX"))
	if root := os.Getenv("GITREST_DATA_ROOT"); root != "" {
		c.DataRoot = root
	}
	if bin := os.Getenv("GITREST_GIT"); bin != "" {
		c.GitBinary = bin
	}
	if v := os.Getenv("GITREST_COMMAND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CommandTimeout = d
		}
	}
	if branch := os.Getenv("GITREST_DEFAULT_BRANCH"); branch != "" {
		c.DefaultBranch = branch
	}
	if v := os.Getenv("GITREST_MAX_UPLOAD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("GITREST_VERBOSE"); v != "" {
		c.Verbose, _ = strconv.ParseBool(v)
	}
	return c
}

// NormalizePrefix drops trailing slashes, so "/git/" and "/git" mount the same routes.
func NormalizePrefix(p string) string {
	return strings.TrimRight(strings.TrimSpace(p), "/")
}

// Validate checks the values DefaultConfig and flag overrides produced.
func (c *Config) Validate() error {
	var errs []error
	if c.DataRoot == "" {
		errs = append(errs, errors.New("data root is empty"))
	}
	if c.GitBinary == "" {
		errs = append(errs, errors.New("git binary is empty"))
	}
	if c.CommandTimeout <= 0 {
		errs = append(errs, fmt.Errorf("command timeout must be positive, got %s", c.CommandTimeout))
	}
	if c.Prefix != "" && !strings.HasPrefix(c.Prefix, "/") {
		errs = append(errs, fmt.Errorf("prefix %q must start with /", c.Prefix))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max upload must be positive, got %d", c.MaxUploadBytes))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
