package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	tuning "github.com/tomz197/omega/internal/loop/config"
)

// Settings holds the runtime configuration shared by every binary.
type Settings struct {
	MaxEntities int           `yaml:"max_entities"`
	SpawnPeriod time.Duration `yaml:"spawn_period"`
	DataDir     string        `yaml:"data_dir"`
	DevMode     bool          `yaml:"dev_mode"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
}

// Default returns the settings used when no file or environment overrides exist.
func Default() Settings {
	return Settings{
		MaxEntities: tuning.DefaultMaxEntities,
		SpawnPeriod: tuning.DefaultSpawnPeriod,
		DataDir:     defaultDataDir(),
		LogLevel:    "info",
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "omega")
	}
	return ".omega"
}

// Load reads settings from the YAML file at path on top of the defaults and
// then applies environment overrides. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	s.ApplyEnv()
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// ApplyEnv overrides fields from OMEGA_* environment variables.
func (s *Settings) ApplyEnv() {
	s.MaxEntities = GetEnvInt("OMEGA_MAX_ENTITIES", s.MaxEntities)
	s.SpawnPeriod = GetEnvDuration("OMEGA_SPAWN_PERIOD", s.SpawnPeriod)
	s.DataDir = GetEnv("OMEGA_DATA_DIR", s.DataDir)
	s.DevMode = GetEnvBool("OMEGA_DEV_MODE", s.DevMode)
	s.LogLevel = GetEnv("OMEGA_LOG_LEVEL", s.LogLevel)
	s.LogFile = GetEnv("OMEGA_LOG_FILE", s.LogFile)
}

// Validate rejects settings the game cannot run with.
func (s Settings) Validate() error {
	if s.MaxEntities < tuning.MinMaxEntities || s.MaxEntities > tuning.MaxMaxEntities {
		return fmt.Errorf("max_entities %d outside [%d, %d]", s.MaxEntities, tuning.MinMaxEntities, tuning.MaxMaxEntities)
	}
	if s.SpawnPeriod < tuning.MinSpawnPeriod || s.SpawnPeriod > tuning.MaxSpawnPeriod {
		return fmt.Errorf("spawn_period %s outside [%s, %s]", s.SpawnPeriod, tuning.MinSpawnPeriod, tuning.MaxSpawnPeriod)
	}
	if s.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	return nil
}
