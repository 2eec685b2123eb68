package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"ccse-study-service/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Identity struct {
		Secret string `yaml:"secret"`
	} `yaml:"identity"`
	Exam struct {
		Distribution domain.Distribution `yaml:"distribution"`
	} `yaml:"exam"`
	Sync struct {
		// Backend selects the remote progress mirror: "redis", "postgres" or "" (local only).
		Backend string `yaml:"backend"`
		Timeout string `yaml:"timeout"`
	} `yaml:"sync"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the zero config.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
