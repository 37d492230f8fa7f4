// Package config holds the typed configuration and its defaults.
// Precedence, highest first: flags, SPISTORY_* environment, config file,
// defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"spistory/internal/logger"
	"spistory/internal/scene"
)

// EnvPrefix is the prefix of environment overrides, SPISTORY_DATA_WORLD etc.
const EnvPrefix = "SPISTORY"

// DefaultWorld is the world-atlas 110m country topology.
const DefaultWorld = "https://cdn.jsdelivr.net/npm/world-atlas@2/countries-110m.json"

const (
	MinTopN = 1
	MaxTopN = 10
)

type Config struct {
	Data DataConfig `mapstructure:"data" yaml:"data"`
	View ViewConfig `mapstructure:"view" yaml:"view"`
	Log  LogConfig  `mapstructure:"log" yaml:"log"`
}

type DataConfig struct {
	Countries   string        `mapstructure:"countries" yaml:"countries"`
	World       string        `mapstructure:"world" yaml:"world"`
	WorldObject string        `mapstructure:"world_object" yaml:"world_object"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// MarshalYAML writes the timeout as a duration string.
func (d DataConfig) MarshalYAML() (any, error) {
	return struct {
		Countries   string `yaml:"countries"`
		World       string `yaml:"world"`
		WorldObject string `yaml:"world_object"`
		Timeout     string `yaml:"timeout"`
	}{d.Countries, d.World, d.WorldObject, d.Timeout.String()}, nil
}

type ViewConfig struct {
	TopN           int    `mapstructure:"top_n" yaml:"top_n"`
	Palette        string `mapstructure:"palette" yaml:"palette"`
	SortComponents bool   `mapstructure:"sort_components" yaml:"sort_components"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Data: DataConfig{
			Countries:   "spi.csv",
			World:       DefaultWorld,
			WorldObject: "countries",
			Timeout:     30 * time.Second,
		},
		View: ViewConfig{TopN: 5, Palette: "plasma", SortComponents: true},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// SetDefaults registers every key with viper so environment overrides work
// for keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("data.countries", d.Data.Countries)
	v.SetDefault("data.world", d.Data.World)
	v.SetDefault("data.world_object", d.Data.WorldObject)
	v.SetDefault("data.timeout", d.Data.Timeout)
	v.SetDefault("view.top_n", d.View.TopN)
	v.SetDefault("view.palette", d.View.Palette)
	v.SetDefault("view.sort_components", d.View.SortComponents)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

// BindEnv enables SPISTORY_* overrides for nested keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Data.Countries == "" {
		errs = append(errs, errors.New("data.countries must be set"))
	}
	if c.Data.World == "" {
		errs = append(errs, errors.New("data.world must be set"))
	}
	if c.Data.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("data.timeout must be positive, got %s", c.Data.Timeout))
	}
	if c.View.TopN < MinTopN || c.View.TopN > MaxTopN {
		errs = append(errs, fmt.Errorf("view.top_n must be within %d..%d, got %d", MinTopN, MaxTopN, c.View.TopN))
	}
	if _, err := scene.NewScale(c.View.Palette); err != nil {
		errs = append(errs, fmt.Errorf("view.palette: %w (known: %s)", err, strings.Join(scene.Palettes(), ", ")))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
