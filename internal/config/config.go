// Package config handles configuration for collegechat.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	apierrors "github.com/rvrjc/collegechat/internal/errors"
	"github.com/rvrjc/collegechat/internal/models"
)

// EnvPrefix prefixes environment overrides, e.g. COLLEGECHAT_ENDPOINT
const EnvPrefix = "COLLEGECHAT"

// MarkdownConfig configures how bot replies are rendered
type MarkdownConfig struct {
	EnableEmoji      bool `mapstructure:"enable_emoji"`
	PreserveNewLines bool `mapstructure:"preserve_newlines"`
}

// Config represents the user configuration
type Config struct {
	Endpoint string `mapstructure:"endpoint"`
	Theme    string `mapstructure:"theme"`
	// ReplyDelay is the minimum pause between a reply arriving and it being shown.
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
	// RequestTimeout bounds a single request at the transport.
	RequestTimeout  time.Duration  `mapstructure:"request_timeout"`
	LogLevel        string         `mapstructure:"log_level"`
	LogFile         string         `mapstructure:"log_file"`
	CopyToClipboard bool           `mapstructure:"copy_to_clipboard"`
	Markdown        MarkdownConfig `mapstructure:"markdown"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Endpoint:        models.EndpointChat,
		Theme:           string(models.DefaultTheme),
		ReplyDelay:      1500 * time.Millisecond,
		RequestTimeout:  300 * time.Second,
		LogLevel:        "info",
		LogFile:         filepath.Join(homeDir, ".collegechat", "collegechat.log"),
		CopyToClipboard: false,
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".collegechat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the configuration from path, layering environment
// overrides on top. A missing file yields the defaults.
func LoadConfigFrom(path string) (Config, error) {
	return load(newViper(true), path)
}

// LoadStoredConfig loads the configuration file at the default path
// without environment overrides. Use it for anything that saves back.
func LoadStoredConfig() (Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadStoredConfigFrom(configPath)
}

// LoadStoredConfigFrom is LoadConfigFrom without environment overrides.
func LoadStoredConfigFrom(path string) (Config, error) {
	return load(newViper(false), path)
}

func load(v *viper.Viper, path string) (Config, error) {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the default path
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}
	return SaveConfigTo(cfg, filepath.Join(configDir, "config.json"))
}

// SaveConfigTo writes cfg as JSON to path
func SaveConfigTo(cfg Config, path string) error {
	v := viper.New()
	v.SetConfigType("json")
	v.Set("endpoint", cfg.Endpoint)
	v.Set("theme", cfg.Theme)
	v.Set("reply_delay", cfg.ReplyDelay.String())
	v.Set("request_timeout", cfg.RequestTimeout.String())
	v.Set("log_level", cfg.LogLevel)
	v.Set("log_file", cfg.LogFile)
	v.Set("copy_to_clipboard", cfg.CopyToClipboard)
	v.Set("markdown.enable_emoji", cfg.Markdown.EnableEmoji)
	v.Set("markdown.preserve_newlines", cfg.Markdown.PreserveNewLines)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Chmod(path, 0o600)
}

// newViper returns a viper instance carrying defaults, plus env bindings
// when env is set
func newViper(env bool) *viper.Viper {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("endpoint", def.Endpoint)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("reply_delay", def.ReplyDelay)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("copy_to_clipboard", def.CopyToClipboard)
	v.SetDefault("markdown.enable_emoji", def.Markdown.EnableEmoji)
	v.SetDefault("markdown.preserve_newlines", def.Markdown.PreserveNewLines)

	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	return v
}

// Validate checks values that would otherwise fail later at runtime
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return apierrors.NewConfigError("endpoint", fmt.Sprintf("%q is not an absolute http(s) URL", c.Endpoint))
	}
	if _, ok := models.ParseTheme(c.Theme); !ok {
		return apierrors.NewConfigError("theme", fmt.Sprintf("unknown theme %q", c.Theme))
	}
	if c.ReplyDelay < 0 {
		return apierrors.NewConfigError("reply_delay", "must not be negative")
	}
	if c.RequestTimeout < 0 {
		return apierrors.NewConfigError("request_timeout", "must not be negative")
	}
	return nil
}

// ThemeOrDefault returns the configured theme, falling back to the default
func (c Config) ThemeOrDefault() models.Theme {
	if t, ok := models.ParseTheme(c.Theme); ok {
		return t
	}
	return models.DefaultTheme
}
