// Package config resolves demo settings from defaults, an optional YAML
// file, LINEBAR_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/schmitthub/linebar/internal/logger"
)

const (
	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "LINEBAR"
	// ConfigFileName is the file looked up in the user config directory.
	ConfigFileName = "config.yaml"
)

// Demo holds everything the demo loop needs.
type Demo struct {
	Count        int           `mapstructure:"count"`
	Delay        time.Duration `mapstructure:"delay"`
	Style        int           `mapstructure:"style"`
	Width        int           `mapstructure:"width"`
	HideCounters bool          `mapstructure:"hide_counters"`
	Clear        bool          `mapstructure:"clear"`
	Debug        bool          `mapstructure:"debug"`
	Log          Log           `mapstructure:"log"`
}

// Log configures the optional rotating log file.
type Log struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// LoggingConfig converts the file settings for logger.InitWithFile.
func (l Log) LoggingConfig() *logger.LoggingConfig {
	return &logger.LoggingConfig{
		MaxSizeMB:  l.MaxSizeMB,
		MaxAgeDays: l.MaxAgeDays,
		MaxBackups: l.MaxBackups,
	}
}

// Default returns the built-in settings.
func Default() *Demo {
	return &Demo{
		Count: 10,
		Delay: time.Second,
		Style: 0,
		Width: 80,
	}
}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"count":         "count",
	"delay":         "delay",
	"style":         "style",
	"width":         "width",
	"hide-counters": "hide_counters",
	"clear":         "clear",
	"debug":         "debug",
	"log-file":      "log.file",
}

// FlagKey returns the config key a command-line flag is bound to.
func FlagKey(flag string) (string, bool) {
	key, ok := flagKeys[flag]
	return key, ok
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(envKeyReplacer.Replace(key))
}

// SetDefaults registers the built-in values with v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("count", d.Count)
	v.SetDefault("delay", d.Delay.Seconds())
	v.SetDefault("style", d.Style)
	v.SetDefault("width", d.Width)
	v.SetDefault("hide_counters", d.HideCounters)
	v.SetDefault("clear", d.Clear)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 0)
	v.SetDefault("log.max_age_days", 0)
	v.SetDefault("log.max_backups", 0)
}

// DefaultPath returns the config file consulted when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "linebar", ConfigFileName)
}

// Load resolves settings. An explicit path must exist; when path is empty
// the file at DefaultPath is read if present. Only flags that were set on
// fs override lower layers. fs may be nil.
func Load(fs *pflag.FlagSet, path string) (*Demo, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	SetDefaults(v)

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to stat config file: %w", err)
			}
			if explicit {
				return nil, &NotFoundError{Path: path}
			}
			path = ""
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Demo
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the demo loop cannot run with. Style and width
// are not checked; the renderer falls back for those.
func (d *Demo) Validate() error {
	if d.Count < 1 {
		return &ValidationError{Field: "count", Message: fmt.Sprintf("must be at least 1, got %d", d.Count)}
	}
	if d.Delay < 0 {
		return &ValidationError{Field: "delay", Message: fmt.Sprintf("must not be negative, got %s", d.Delay)}
	}
	return nil
}

// secondsToDurationHookFunc decodes plain numbers, and strings holding
// plain numbers, as seconds. Other strings are left for
// StringToTimeDurationHookFunc, so "250ms" also works.
func secondsToDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch x := data.(type) {
		case float64:
			return secondsToDuration(x), nil
		case float32:
			return secondsToDuration(float64(x)), nil
		case int:
			return secondsToDuration(float64(x)), nil
		case int64:
			return secondsToDuration(float64(x)), nil
		case string:
			s, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return data, nil
			}
			return secondsToDuration(s), nil
		}
		return data, nil
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// NotFoundError is returned when an explicitly named config file is missing.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError describes a setting outside its allowed range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
