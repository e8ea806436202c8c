package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/zlovtnik/gshell/pkg/fp"
)

// EnvPrefix is prepended to every environment override, e.g. GSHELL_API_TOKEN.
const EnvPrefix = "GSHELL"

// EnvDevelopment selects the development API base URL.
const EnvDevelopment = "development"

// Config holds all configuration for the shell
type Config struct {
	Env     string        `mapstructure:"env"`
	API     APIConfig     `mapstructure:"api"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	SSH     SSHConfig     `mapstructure:"ssh"`
	Log     LogConfig     `mapstructure:"log"`
	Options OptionsConfig `mapstructure:"options"`
}

// APIConfig holds backend API settings
type APIConfig struct {
	DevURL     string        `mapstructure:"dev_url"`
	ProdURL    string        `mapstructure:"prod_url"`
	Token      string        `mapstructure:"token"`
	Timeout    time.Duration `mapstructure:"timeout"`
	DeviceType string        `mapstructure:"device_type"`
	TokenID    string        `mapstructure:"token_id"`
}

// JWTConfig holds token verification settings. An empty secret means tokens
// are only decoded for display.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// SSHConfig holds settings for serving the shell over SSH
type SSHConfig struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	KeyPath string `mapstructure:"key_path"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// OptionsConfig controls how selector option lists are checked
type OptionsConfig struct {
	// Strict turns dropped malformed options into an error status. They are
	// logged either way.
	Strict bool `mapstructure:"strict"`
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("api.dev_url", "http://localhost:8080")
	v.SetDefault("api.prod_url", "http://localhost:8080")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.device_type", "web")
	v.SetDefault("api.token_id", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("ssh.host", "0.0.0.0")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.key_path", ".ssh/gshell_ed25519")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "gshell.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("options.strict", false)
}

// Load reads .env if present, then the optional config file at path, then
// GSHELL_* environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later and far away.
func (c *Config) Validate() error {
	var errs fp.ValidationErrors
	if !logLevels[c.Log.Level] {
		errs = append(errs, fp.ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fp.ValidationError{Field: "api.timeout", Message: "must be positive"})
	}
	if p, err := strconv.Atoi(c.SSH.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fp.ValidationError{Field: "ssh.port", Message: fmt.Sprintf("invalid port %q", c.SSH.Port)})
	}
	if c.BaseURL() == "" {
		errs = append(errs, fp.ValidationError{Field: "api", Message: "base URL is empty"})
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// BaseURL returns the API base URL for the configured environment.
func (c *Config) BaseURL() string {
	if c.Env == EnvDevelopment {
		return c.API.DevURL
	}
	return c.API.ProdURL
}
