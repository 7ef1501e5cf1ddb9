package style

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/johnconnor-sec/menukit-go/internal/errors"
)

// Config is the YAML-configurable behaviour of the toolkit.
type Config struct {
	// Theme names a built-in theme: default, dark, high-contrast.
	Theme string `yaml:"theme"`
	// CloseDelay is how long a delayed menu close waits, e.g. "300ms".
	CloseDelay string `yaml:"close_delay"`
	// TypeaheadTimeout is how long the typeahead buffer survives between
	// keystrokes, e.g. "1s".
	TypeaheadTimeout string `yaml:"typeahead_timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Theme:            "default",
		CloseDelay:       "300ms",
		TypeaheadTimeout: "1s",
	}
}

// Load reads and validates a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(err, errors.ConfigNotFound, "Toolkit config file not found").
				WithDetails("Looking for config at: " + path)
		}
		return Config{}, errors.Wrap(err, errors.ConfigInvalid, "Cannot read toolkit config file")
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data. Absent fields fall back to
// the defaults.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.ConfigInvalid, "Malformed YAML in toolkit config")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, ok := Named(c.Theme); !ok {
		return errors.ConfigInvalidError("unknown theme name: " + c.Theme)
	}
	if _, err := time.ParseDuration(c.CloseDelay); err != nil {
		return errors.ConfigInvalidError("close_delay is not a valid duration: " + c.CloseDelay)
	}
	if _, err := time.ParseDuration(c.TypeaheadTimeout); err != nil {
		return errors.ConfigInvalidError("typeahead_timeout is not a valid duration: " + c.TypeaheadTimeout)
	}
	return nil
}

// ResolveTheme returns the configured theme.
func (c Config) ResolveTheme() Theme {
	theme, _ := Named(c.Theme)
	return theme
}

// ResolveCloseDelay returns the configured close delay.
func (c Config) ResolveCloseDelay() time.Duration {
	d, _ := time.ParseDuration(c.CloseDelay)
	return d
}

// ResolveTypeaheadTimeout returns the configured typeahead timeout.
func (c Config) ResolveTypeaheadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.TypeaheadTimeout)
	return d
}
