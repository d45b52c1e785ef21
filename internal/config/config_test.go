package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/levelcheck/internal/difficulty"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDB, EnvBank, EnvLogFile, EnvLogLevel, EnvLLMProvider, EnvSeed} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
quiz:
  math_target: 6
  english_target: 4
  policy: immediate
  grade: 5
  seed: 99
bank:
  path: /tmp/bank.json
store:
  path: /tmp/lc.db
logging:
  level: debug
  file: /tmp/lc.log
llm:
  provider: mock
  timeout: 45s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Quiz.MathTarget)
	assert.Equal(t, 4, cfg.Quiz.EnglishTarget)
	assert.Equal(t, 4, cfg.Quiz.Strengths, "unset keys keep defaults")
	assert.Equal(t, difficulty.PolicyImmediate, cfg.Quiz.Policy)
	assert.Equal(t, uint64(99), cfg.Quiz.Seed)
	assert.Equal(t, 5, cfg.Quiz.Grade)
	assert.Equal(t, "/tmp/bank.json", cfg.Bank.Path)
	assert.Equal(t, "/tmp/lc.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)

	ec := cfg.Engine()
	assert.Equal(t, 6, ec.MathTarget)
	assert.Equal(t, difficulty.PolicyImmediate, ec.Policy)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "store:\n  path: /from/file.db\n")
	t.Setenv(EnvDB, "/from/env.db")
	t.Setenv(EnvLLMProvider, "gemini")
	t.Setenv(EnvSeed, "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.Store.Path)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, uint64(7), cfg.Quiz.Seed)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"unknown key", "quiz:\n  rounds: 3\n", nil},
		{"negative target", "quiz:\n  math_target: -1\n", nil},
		{"zero targets", "quiz:\n  math_target: 0\n  english_target: 0\n", nil},
		{"bad policy", "quiz:\n  policy: random\n", nil},
		{"grade out of range", "quiz:\n  grade: 12\n", nil},
		{"bad yaml", "quiz: [\n", nil},
		{"bad seed env", "", map[string]string{EnvSeed: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadBank(t *testing.T) {
	cfg := Default()
	b, err := cfg.LoadBank()
	require.NoError(t, err)
	assert.NotEmpty(t, b.All())

	cfg.Bank.Path = filepath.Join(t.TempDir(), "missing.json")
	_, err = cfg.LoadBank()
	assert.Error(t, err)
}
