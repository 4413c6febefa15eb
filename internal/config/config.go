package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	rlerrors "runlike/internal/errors"
)

const (
	EngineCLI = "cli"
	EngineAPI = "api"

	EnvPrefix      = "RUNLIKE"
	ConfigFileName = "config"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config holds settings that change how runlike reaches the container
// runtime and where it logs. Values come from, in increasing priority:
// defaults, the config file, RUNLIKE_* environment variables and flags.
type Config struct {
	Engine        string    `mapstructure:"engine" validate:"required,oneof=cli api"`
	DockerCommand string    `mapstructure:"docker_command" validate:"required"`
	Pretty        bool      `mapstructure:"pretty"`
	Log           LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

// Options converts the log section for the error handler.
func (l LogConfig) Options() rlerrors.LogOptions {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}
	return rlerrors.LogOptions{
		Dir:        l.Dir,
		Level:      level,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Engine:        EngineCLI,
		DockerCommand: "docker",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"engine":         "engine",
	"docker_command": "docker-command",
	"pretty":         "pretty",
}

// Load resolves the configuration. An explicit path must exist; otherwise
// config.yaml in the user config directory is read when present.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("engine", defaults.Engine)
	v.SetDefault("docker_command", defaults.DockerCommand)
	v.SetDefault("pretty", defaults.Pretty)
	v.SetDefault("log.dir", defaults.Log.Dir)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, rlerrors.NewConfigError("Cannot bind flag --"+name, err.Error(), "", err)
				}
			}
		}
	}

	if err := readConfigFile(v, path); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, rlerrors.NewConfigError("Cannot decode configuration", err.Error(),
			"Check the types of the values in your config file", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, formatValidationError(err)
	}

	return &cfg, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return rlerrors.NewConfigError("Config file not found: "+path, "", "Pass an existing file to --config", err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return rlerrors.NewConfigError("Cannot read config file "+path, err.Error(), "Fix the YAML syntax", err)
		}
		return nil
	}

	dir, err := DefaultDir()
	if err != nil {
		return nil
	}
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return rlerrors.NewConfigError("Cannot read config file in "+dir, err.Error(), "Fix the YAML syntax", err)
	}
	return nil
}

// DefaultDir is the per-user directory searched for config.yaml.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "runlike"), nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return rlerrors.NewConfigError("Configuration validation failed", err.Error(), "", err)
	}

	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}

	return rlerrors.NewConfigError("Invalid configuration", strings.Join(messages, "; "),
		"Check flags, RUNLIKE_* variables and the config file", err)
}

// formatFieldError formats a single validation error into a user-friendly message.
func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required but missing", field)
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("field '%s' must be at least %s", field, e.Param())
	default:
		return fmt.Sprintf("field '%s' failed validation (%s)", field, e.Tag())
	}
}
