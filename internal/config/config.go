// Package config loads levelcheck settings from a YAML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/levelcheck/internal/difficulty"
	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/logging"
	"github.com/abhisek/levelcheck/internal/report"
	"github.com/abhisek/levelcheck/internal/session"
)

// Environment overrides.
const (
	EnvDB          = "LEVELCHECK_DB"
	EnvBank        = "LEVELCHECK_BANK"
	EnvLogFile     = "LEVELCHECK_LOG_FILE"
	EnvLogLevel    = "LEVELCHECK_LOG_LEVEL"
	EnvLLMProvider = "LEVELCHECK_LLM_PROVIDER"
	EnvSeed        = "LEVELCHECK_SEED"
)

// Config is the full settings tree.
type Config struct {
	Quiz    Quiz           `yaml:"quiz"`
	Bank    Bank           `yaml:"bank"`
	Store   Store          `yaml:"store"`
	Logging logging.Config `yaml:"logging"`
	LLM     LLM            `yaml:"llm"`
}

// Quiz holds run parameters.
type Quiz struct {
	MathTarget    int    `yaml:"math_target"`
	EnglishTarget int    `yaml:"english_target"`
	Strengths     int    `yaml:"strengths"`
	Policy        string `yaml:"policy"`

	// Grade preselects the learner's grade; zero means unset.
	Grade int `yaml:"grade"`

	// Seed fixes the engine's random source when non-zero.
	Seed uint64 `yaml:"seed"`
}

// Bank selects the item bank.
type Bank struct {
	// Path is a JSON bank file. Empty uses the built-in bank.
	Path string `yaml:"path"`

	// Seed drives the built-in generators.
	Seed uint64 `yaml:"seed"`
}

// Store locates the SQLite database.
type Store struct {
	Path string `yaml:"path"`
}

// LLM selects the narrative provider. API keys come from the environment.
type LLM struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Quiz: Quiz{
			MathTarget:    session.DefaultPhaseTarget,
			EnglishTarget: session.DefaultPhaseTarget,
			Strengths:     report.DefaultStrengths,
			Policy:        difficulty.PolicyHysteresis,
		},
		Bank:    Bank{Seed: itembank.DefaultSeed},
		Logging: logging.Config{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/levelcheck/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "levelcheck", "config.yaml"), nil
}

// Load reads path over the defaults and applies environment overrides.
// An empty path means DefaultPath, which may be absent; an explicit path
// must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvBank); v != "" {
		c.Bank.Path = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLLMProvider); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Quiz.Seed = n
	}
	return nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Quiz.MathTarget < 0 || c.Quiz.EnglishTarget < 0 {
		return fmt.Errorf("quiz targets must not be negative")
	}
	if c.Quiz.MathTarget+c.Quiz.EnglishTarget == 0 {
		return fmt.Errorf("quiz targets are both zero")
	}
	if g := c.Quiz.Grade; g != 0 && (g < itembank.MinGrade || g > itembank.MaxGrade) {
		return fmt.Errorf("quiz grade %d outside %d-%d", g, itembank.MinGrade, itembank.MaxGrade)
	}
	if _, err := difficulty.New(c.Quiz.Policy); err != nil {
		return err
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm timeout must not be negative")
	}
	return nil
}

// Engine returns the engine settings for the quiz section.
func (c Config) Engine() session.Config {
	return session.Config{
		MathTarget:    c.Quiz.MathTarget,
		EnglishTarget: c.Quiz.EnglishTarget,
		Policy:        c.Quiz.Policy,
		Strengths:     c.Quiz.Strengths,
	}
}

// LoadBank returns the configured bank: the JSON file when a path is set,
// otherwise the built-in bank.
func (c Config) LoadBank() (*itembank.MemoryBank, error) {
	if c.Bank.Path != "" {
		return itembank.LoadFile(c.Bank.Path)
	}
	return itembank.NewBuiltin(c.Bank.Seed), nil
}
