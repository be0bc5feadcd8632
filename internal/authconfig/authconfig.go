// Package authconfig holds the small set of externally-tunable knobs the
// CLI and spawn binaries take. pkg/auth itself is unconfigurable by
// design: a deterministic dispatcher has nothing to tune.
package authconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultMaxSpawnSignatureHex caps the spawn entry's signature argv field at
// 1024*64*2 hex characters.
const defaultMaxSpawnSignatureHex = 1024 * 64 * 2

// Logger holds the validated encoding and level fields consumed by
// internal/applog.
type Logger struct {
	LogEncoding string `yaml:"LogEncoding"`
	LogLevel    string `yaml:"LogLevel"`
}

// Validate returns an error if the Logger configuration is not valid.
func (l Logger) Validate() error {
	if l.LogEncoding != "" && l.LogEncoding != "console" && l.LogEncoding != "json" {
		return fmt.Errorf("invalid LogEncoding: %s", l.LogEncoding)
	}
	return nil
}

// Config is the CLI/spawn binaries' YAML-loaded configuration.
type Config struct {
	Logger               Logger `yaml:"Logger"`
	MaxSpawnSignatureHex int    `yaml:"MaxSpawnSignatureHex"`
}

// Default returns a Config with the spawn entry's built-in defaults.
func Default() Config {
	return Config{
		Logger:               Logger{LogEncoding: "console", LogLevel: "info"},
		MaxSpawnSignatureHex: defaultMaxSpawnSignatureHex,
	}
}

// Load reads and validates a YAML config file at path, falling back to
// Default() for any field left unset by the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("authconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("authconfig: parsing %s: %w", path, err)
	}
	if err := cfg.Logger.Validate(); err != nil {
		return Config{}, fmt.Errorf("authconfig: %w", err)
	}
	if cfg.MaxSpawnSignatureHex <= 0 {
		return Config{}, fmt.Errorf("authconfig: MaxSpawnSignatureHex must be positive, got %d", cfg.MaxSpawnSignatureHex)
	}
	return cfg, nil
}
