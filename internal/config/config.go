package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"NotePDF/internal/render"
	"NotePDF/internal/stroke"
)

// Config holds everything a conversion run can be tuned with.
type Config struct {
	Tuning       render.Tuning
	Decoder      stroke.Decoder
	Strict       bool    // fail a note on missing page data
	Preview      bool    // also write PNG pages
	PreviewScale float64 // pixels per point
}

type fileConfig struct {
	WidthScale       *float64 `toml:"width_scale"`
	MinWidth         *float64 `toml:"min_width"`
	SmoothingWindow  *int     `toml:"smoothing_window"`
	Subsample        *int     `toml:"subsample"`
	PressureShape    *int     `toml:"pressure_shape"`
	Pressure         *bool    `toml:"pressure"`
	PressureNorm     *float64 `toml:"pressure_norm"`
	PressureExponent *float64 `toml:"pressure_exponent"`
	Strict           *bool    `toml:"strict"`
	Preview          *bool    `toml:"preview"`
	PreviewScale     *float64 `toml:"preview_scale"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tuning:       render.DefaultTuning(),
		Decoder:      stroke.DefaultDecoder(),
		PreviewScale: 1,
	}
}

// Load reads the config file at path, or the default location when path is
// empty, then applies environment overrides. A missing default file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FilePath()
	}
	if path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
		} else {
			fc.apply(cfg)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Decoder.PressureNorm <= 0:
		return fmt.Errorf("pressure_norm must be positive")
	case c.Tuning.WidthScale <= 0:
		return fmt.Errorf("width_scale must be positive")
	case c.Tuning.MinWidth < 0:
		return fmt.Errorf("min_width must not be negative")
	case c.PreviewScale <= 0:
		return fmt.Errorf("preview_scale must be positive")
	}
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	set(&cfg.Tuning.WidthScale, fc.WidthScale)
	set(&cfg.Tuning.MinWidth, fc.MinWidth)
	set(&cfg.Tuning.Window, fc.SmoothingWindow)
	set(&cfg.Tuning.Subsample, fc.Subsample)
	set(&cfg.Tuning.PressureShape, fc.PressureShape)
	set(&cfg.Tuning.Pressure, fc.Pressure)
	set(&cfg.Decoder.PressureNorm, fc.PressureNorm)
	set(&cfg.Decoder.PressureExponent, fc.PressureExponent)
	set(&cfg.Strict, fc.Strict)
	set(&cfg.Preview, fc.Preview)
	set(&cfg.PreviewScale, fc.PreviewScale)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("NOTEPDF_PRESSURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NOTEPDF_PRESSURE: %w", err)
		}
		cfg.Tuning.Pressure = b
	}
	if v := os.Getenv("NOTEPDF_STRICT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NOTEPDF_STRICT: %w", err)
		}
		cfg.Strict = b
	}
	if v := os.Getenv("NOTEPDF_WIDTH_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("NOTEPDF_WIDTH_SCALE: %w", err)
		}
		cfg.Tuning.WidthScale = f
	}
	return nil
}

// FilePath returns the default config file location, or "" when no home
// directory is known.
func FilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "notepdf")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "notepdf")
	} else {
		return ""
	}
	return filepath.Join(configDir, "config.toml")
}
