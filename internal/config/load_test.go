package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolated returns options that ignore any config or env file on the host.
func isolated(t *testing.T) LoadOptions {
	t.Helper()
	dir := t.TempDir()
	return LoadOptions{
		SearchPaths: []string{dir},
		EnvFile:     filepath.Join(dir, "missing.env"),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// TestLoadDefaults verifies the values used when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(isolated(t))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 0.5, cfg.Detect.Threshold)
	assert.Equal(t, []string{"tsv", "csv", "semicolon", "double_hash", "pipe"}, cfg.Detect.Candidates)
	assert.True(t, cfg.Parse.StripQuotes)
	assert.False(t, cfg.Parse.StripMarkup)
	assert.Equal(t, 100, cfg.Parse.MaxTermLength)
	assert.Equal(t, 500, cfg.Parse.MaxDefinitionLength)
	assert.Equal(t, "#", cfg.Parse.CommentPrefix)
	assert.Equal(t, "study", cfg.Session.Mode)
	assert.False(t, cfg.Session.Reverse)
	assert.Equal(t, int64(0), cfg.Session.Seed)
	assert.Equal(t, ":q", cfg.Session.QuitCommand)
	assert.Empty(t, cfg.File)
}

// TestLoadFromEnv verifies that CRABLANG_ variables are read.
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CRABLANG_LOG_LEVEL", "debug")
	t.Setenv("CRABLANG_DETECT_THRESHOLD", "0.75")
	t.Setenv("CRABLANG_DETECT_CANDIDATES", "pipe,csv")
	t.Setenv("CRABLANG_SESSION_MODE", "quiz")
	t.Setenv("CRABLANG_SESSION_SEED", "42")

	cfg, err := Load(isolated(t))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 0.75, cfg.Detect.Threshold)
	assert.Equal(t, []string{"pipe", "csv"}, cfg.Detect.Candidates)
	assert.Equal(t, "quiz", cfg.Session.Mode)
	assert.Equal(t, int64(42), cfg.Session.Seed)
}

// TestLoadFromFile verifies that a discovered crablang.yaml is read and that
// the environment overrides it.
func TestLoadFromFile(t *testing.T) {
	opts := isolated(t)
	path := filepath.Join(opts.SearchPaths[0], "crablang.yaml")
	writeFile(t, path, `
log:
  format: json
parse:
  strip_markup: true
  comment_prefix: "//"
session:
  mode: quiz
  reverse: true
`)
	t.Setenv("CRABLANG_SESSION_MODE", "study")

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Parse.StripMarkup)
	assert.Equal(t, "//", cfg.Parse.CommentPrefix)
	assert.True(t, cfg.Session.Reverse)
	assert.Equal(t, "study", cfg.Session.Mode, "env should override file")
}

func TestLoadExplicitFile(t *testing.T) {
	opts := isolated(t)
	opts.ConfigFile = filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, opts.ConfigFile, "detect:\n  threshold: 0.9\n")

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.Detect.Threshold)

	opts.ConfigFile = filepath.Join(t.TempDir(), "absent.yaml")
	_, err = Load(opts)
	assert.Error(t, err, "an explicit config file must exist")
}

func TestLoadEnvFile(t *testing.T) {
	opts := isolated(t)
	opts.EnvFile = filepath.Join(t.TempDir(), ".env")
	writeFile(t, opts.EnvFile, "CRABLANG_SESSION_QUIT_COMMAND=quit\n")
	t.Cleanup(func() { os.Unsetenv("CRABLANG_SESSION_QUIT_COMMAND") })

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "quit", cfg.Session.QuitCommand)
}

// TestLoadFlags verifies that only flags set on the command line win over
// the environment.
func TestLoadFlags(t *testing.T) {
	t.Setenv("CRABLANG_LOG_LEVEL", "error")
	t.Setenv("CRABLANG_SESSION_MODE", "quiz")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "warn", "")
	flags.String("mode", "study", "")
	flags.Bool("reverse", false, "")
	require.NoError(t, flags.Parse([]string{"--log-level", "info", "--reverse"}))

	opts := isolated(t)
	opts.Flags = flags
	opts.Bindings = map[string]string{
		"log.level":       "log-level",
		"session.mode":    "mode",
		"session.reverse": "reverse",
	}

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "quiz", cfg.Session.Mode, "unset flag must not override env")
	assert.True(t, cfg.Session.Reverse)

	opts.Bindings["session.shuffle"] = "shuffle"
	_, err = Load(opts)
	assert.Error(t, err, "binding an unknown flag should fail")
}

// TestLoadThresholdBounds verifies both ends of the accepted threshold range.
func TestLoadThresholdBounds(t *testing.T) {
	for _, value := range []string{"1", "0.01"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("CRABLANG_DETECT_THRESHOLD", value)
			_, err := Load(isolated(t))
			assert.NoError(t, err)
		})
	}
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad log level", env: map[string]string{"CRABLANG_LOG_LEVEL": "loud"}},
		{name: "bad log format", env: map[string]string{"CRABLANG_LOG_FORMAT": "xml"}},
		{name: "zero threshold", env: map[string]string{"CRABLANG_DETECT_THRESHOLD": "0"}},
		{name: "threshold above one", env: map[string]string{"CRABLANG_DETECT_THRESHOLD": "1.5"}},
		{name: "unknown candidate", env: map[string]string{"CRABLANG_DETECT_CANDIDATES": "tsv,xml"}},
		{name: "bad mode", env: map[string]string{"CRABLANG_SESSION_MODE": "flash"}},
		{name: "negative limit", env: map[string]string{"CRABLANG_PARSE_MAX_TERM_LENGTH": "-1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(isolated(t))
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
