package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "http://localhost:8001/api"
	defaultTimeout = 10 * time.Second
)

// Duration is a time.Duration that decodes from the "10s"/"2m" string
// form in both TOML and environment variables.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the client settings. Values come from three layers, each
// overriding the previous one: built-in defaults, the TOML config file,
// and SKILLSMATCH_* environment variables.
type Config struct {
	BaseURL  string   `toml:"base_url" env:"SKILLSMATCH_BASE_URL"`
	Timeout  Duration `toml:"timeout" env:"SKILLSMATCH_TIMEOUT"`
	DataDir  string   `toml:"data_dir" env:"SKILLSMATCH_DATA_DIR"`
	LogLevel string   `toml:"log_level" env:"SKILLSMATCH_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:  defaultBaseURL,
		Timeout:  Duration(defaultTimeout),
		DataDir:  defaultDataDir(),
		LogLevel: "warn",
	}
}

// Load builds the configuration from defaults, the TOML file at path (if
// it exists) and environment variable overrides, in that order. An empty
// path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, errors.Wrapf(err, "[config.Load] decode %s", path)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "[config.Load] stat %s", path)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "[config.Load] parse environment")
	}

	if cfg.BaseURL == "" {
		return Config{}, errors.New("[config.Load] base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = Duration(defaultTimeout)
	}

	return cfg, nil
}

// DefaultPath returns the conventional location of the config file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skillsmatch", "config.toml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".skillsmatch")
}
