package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Catalog   CatalogConfig       `mapstructure:"catalog"`
	Companion CompanionConfig     `mapstructure:"companion"`
	Player    PlayerConfig        `mapstructure:"player"`
	Log       LogConfig           `mapstructure:"log"`
	Keys      map[string][]string `mapstructure:"keys"`
}

// CatalogConfig selects the content catalog.
type CatalogConfig struct {
	Schema string `mapstructure:"schema"`
	// Path overrides the embedded catalog with an external TOML file.
	Path string `mapstructure:"path"`
}

// CompanionConfig holds overlay behavior.
type CompanionConfig struct {
	VoiceOnReopen string `mapstructure:"voice_on_reopen"`
}

// PlayerConfig describes the simulated media source.
type PlayerConfig struct {
	Title    string        `mapstructure:"title"`
	Duration time.Duration `mapstructure:"duration"`
	Tick     time.Duration `mapstructure:"tick"`
}

// LogConfig holds logging settings. File "-" discards logs.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

const envPrefix = "COMPANION"

// New returns a viper instance with defaults and COMPANION_ env overrides
// registered. Callers may bind flags onto it before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("catalog.schema", "rich")
	v.SetDefault("catalog.path", "")
	v.SetDefault("companion.voice_on_reopen", "reset")
	v.SetDefault("player.title", "La La Land - Griffith Observatory")
	v.SetDefault("player.duration", "2m30s")
	v.SetDefault("player.tick", "250ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", defaultLogFile())

	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result. An explicit
// path (argument or COMPANION_CONFIG) must exist; the default location is
// optional.
func Load(v *viper.Viper, path string) (Config, error) {
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultConfigDir())
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Resolve(v)
}

// Resolve decodes and validates what v currently holds without reading a
// config file.
func Resolve(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(defaultConfigDir(), "config.toml")
}

// Validate rejects values the rest of the program cannot interpret.
func (c Config) Validate() error {
	var errs []error
	switch c.Catalog.Schema {
	case "rich", "legacy":
	default:
		errs = append(errs, fmt.Errorf("catalog.schema: unsupported value %q", c.Catalog.Schema))
	}
	switch c.Companion.VoiceOnReopen {
	case "reset", "retain":
	default:
		errs = append(errs, fmt.Errorf("companion.voice_on_reopen: unsupported value %q", c.Companion.VoiceOnReopen))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unsupported value %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unsupported value %q", c.Log.Format))
	}
	if c.Player.Duration <= 0 {
		errs = append(errs, fmt.Errorf("player.duration: must be positive"))
	}
	if c.Player.Tick <= 0 {
		errs = append(errs, fmt.Errorf("player.tick: must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("catalog.schema", cfg.Catalog.Schema)
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("companion.voice_on_reopen", cfg.Companion.VoiceOnReopen)
	v.Set("player.title", cfg.Player.Title)
	v.Set("player.duration", cfg.Player.Duration.String())
	v.Set("player.tick", cfg.Player.Tick.String())
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.file", cfg.Log.File)
	for action, keys := range cfg.Keys {
		v.Set("keys."+action, keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.Getenv("HOME"), ".config", "companion")
	}
	return filepath.Join(dir, "companion")
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "-"
	}
	return filepath.Join(dir, "companion", "companion.log")
}
