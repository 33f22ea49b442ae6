// Package config loads FlowLift's settings from flowlift.yaml, FLOWLIFT_*
// environment variables and command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lowaak/flowlift/internal/catalog"
	"github.com/lowaak/flowlift/internal/store"
	"github.com/lowaak/flowlift/internal/workout"
)

const (
	configName = "flowlift"
	envPrefix  = "FLOWLIFT"
)

type Config struct {
	Breathing workout.BreathingPattern `mapstructure:"breathing"`
	Player    PlayerConfig             `mapstructure:"player"`
	Store     StoreConfig              `mapstructure:"store"`
	Catalog   CatalogConfig            `mapstructure:"catalog"`
	Location  string                   `mapstructure:"location"`
	Equipment []string                 `mapstructure:"equipment"`
	Log       LogConfig                `mapstructure:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type PlayerConfig struct {
	Mode             string `mapstructure:"mode"`
	CountdownSeconds int    `mapstructure:"countdown_seconds"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type CatalogConfig struct {
	// Path of a YAML catalog replacing the built-in programs.
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"mode":       "player.mode",
	"countdown":  "player.countdown_seconds",
	"store":      "store.backend",
	"state-path": "store.path",
	"catalog":    "catalog.path",
	"log-file":   "log.file",
}

// NewFlagSet declares the command line flags Load understands.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to flowlift.yaml")
	fs.String("mode", string(workout.ModeTimed), "workout mode: timed or manual")
	fs.Int("countdown", workout.DefaultCountdownSeconds, "get-ready countdown in seconds, 0 to start immediately")
	fs.String("store", string(store.BackendJSON), "snapshot store backend: json or sqlite")
	fs.String("state-path", "", "snapshot file or database path")
	fs.String("catalog", "", "YAML catalog to use instead of the built-in programs")
	fs.String("log-file", "", "log file path")
	return fs
}

// Load parses args and loads the configuration.
func Load(args []string) (*Config, error) {
	fs := NewFlagSet(configName)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}
	return LoadWithFlags(fs)
}

// LoadWithFlags loads the configuration using already parsed flags.
func LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for flagName, key := range flagKeys {
		if f := fs.Lookup(flagName); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", flagName, err)
			}
		}
	}

	explicit, _ := fs.GetString("config")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(store.DefaultDir())
		v.AddConfigPath(".")
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(store.DefaultDir(), "flowlift.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	p := workout.DefaultBreathingPattern
	v.SetDefault("breathing.inhale", p.Inhale)
	v.SetDefault("breathing.hold_in", p.HoldIn)
	v.SetDefault("breathing.exhale", p.Exhale)
	v.SetDefault("breathing.hold_out", p.HoldOut)

	v.SetDefault("player.mode", string(workout.ModeTimed))
	v.SetDefault("player.countdown_seconds", workout.DefaultCountdownSeconds)

	v.SetDefault("store.backend", string(store.BackendJSON))
	v.SetDefault("store.path", "")
	v.SetDefault("catalog.path", "")

	v.SetDefault("location", string(catalog.LocationHome))
	v.SetDefault("equipment", []string{})

	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Validate checks every enumerated value and range.
func (c *Config) Validate() error {
	if _, err := workout.ParseMode(c.Player.Mode); err != nil {
		return fmt.Errorf("player.mode: %w", err)
	}
	if c.Player.CountdownSeconds < 0 {
		return fmt.Errorf("player.countdown_seconds: must not be negative, got %d", c.Player.CountdownSeconds)
	}
	if _, err := store.ParseBackend(c.Store.Backend); err != nil {
		return fmt.Errorf("store.backend: %w", err)
	}
	if _, err := catalog.ParseLocation(c.Location); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	for _, eq := range c.Equipment {
		if !knownEquipment(workout.Equipment(eq)) {
			return fmt.Errorf("equipment: unknown tag %q", eq)
		}
	}
	if err := c.Breathing.Validate(); err != nil {
		return fmt.Errorf("breathing: %w", err)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log: rotation limits must not be negative")
	}
	return nil
}

// Mode returns the validated workout mode.
func (c *Config) Mode() workout.Mode {
	m, _ := workout.ParseMode(c.Player.Mode)
	return m
}

// StoreBackend returns the validated store backend.
func (c *Config) StoreBackend() store.Backend {
	b, _ := store.ParseBackend(c.Store.Backend)
	return b
}

// StartLocation returns the validated location.
func (c *Config) StartLocation() catalog.Location {
	l, _ := catalog.ParseLocation(c.Location)
	return l
}

// StartEquipment is the configured equipment filter, or the location's
// default when none is configured.
func (c *Config) StartEquipment() []workout.Equipment {
	if len(c.Equipment) == 0 {
		return c.StartLocation().DefaultEquipment()
	}
	out := make([]workout.Equipment, 0, len(c.Equipment))
	for _, eq := range c.Equipment {
		out = append(out, workout.Equipment(eq))
	}
	return out
}

func knownEquipment(eq workout.Equipment) bool {
	for _, known := range workout.AllEquipment {
		if eq == known {
			return true
		}
	}
	return false
}
