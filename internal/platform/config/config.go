package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FileName    = "laprun.yaml"
	DefaultLaps = 1
	MaxLaps     = 999
)

type Config struct {
	DataDir     string
	DBPath      string
	JournalDir  string
	DefaultLaps int
	Journal     bool
	Log         LogConfig
}

type LogConfig struct {
	Level   string
	File    string
	Console bool
}

// fileConfig mirrors laprun.yaml; every field is optional.
type fileConfig struct {
	DefaultLaps int  `yaml:"default_laps"`
	Journal     bool `yaml:"journal"`
	Log         struct {
		Level   string `yaml:"level"`
		File    string `yaml:"file"`
		Console *bool  `yaml:"console"`
	} `yaml:"log"`
}

func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:     dataDir,
		DBPath:      filepath.Join(dataDir, "laprun.db"),
		JournalDir:  filepath.Join(dataDir, "journal"),
		DefaultLaps: DefaultLaps,
		Log: LogConfig{
			Level:   "info",
			File:    filepath.Join(dataDir, "laprun.log"),
			Console: true,
		},
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if fc.DefaultLaps != 0 {
		if fc.DefaultLaps < 1 || fc.DefaultLaps > MaxLaps {
			return Config{}, fmt.Errorf("default_laps must be between 1 and %d", MaxLaps)
		}
		cfg.DefaultLaps = fc.DefaultLaps
	}
	cfg.Journal = fc.Journal
	if level := strings.TrimSpace(fc.Log.Level); level != "" {
		cfg.Log.Level = level
	}
	if file := strings.TrimSpace(fc.Log.File); file != "" {
		if !filepath.IsAbs(file) {
			file = filepath.Join(dataDir, file)
		}
		cfg.Log.File = file
	}
	if fc.Log.Console != nil {
		cfg.Log.Console = *fc.Log.Console
	}
	return cfg, nil
}

// DefaultDataDir resolves ~/.laprun, falling back to the working directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".laprun")
}
