package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/rvrjc/collegechat/internal/errors"
	"github.com/rvrjc/collegechat/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, models.EndpointChat, cfg.Endpoint)
	assert.Equal(t, "college", cfg.Theme)
	assert.Equal(t, 1500*time.Millisecond, cfg.ReplyDelay)
	assert.Equal(t, 300*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.CopyToClipboard)
	assert.True(t, cfg.Markdown.EnableEmoji)
	require.NoError(t, cfg.Validate())
}

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".collegechat", "config.json"), path)
}

func TestLoadConfigFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Endpoint, cfg.Endpoint)
	assert.Equal(t, DefaultConfig().ReplyDelay, cfg.ReplyDelay)
}

func TestLoadConfigFrom_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "endpoint": "http://localhost:5000/chat",
  "theme": "dark",
  "reply_delay": "250ms",
  "markdown": {"enable_emoji": false}
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/chat", cfg.Endpoint)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 250*time.Millisecond, cfg.ReplyDelay)
	assert.False(t, cfg.Markdown.EnableEmoji)
	// untouched keys keep their defaults
	assert.True(t, cfg.Markdown.PreserveNewLines)
	assert.Equal(t, 300*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigFrom_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark"}`), 0o600))

	t.Setenv("COLLEGECHAT_THEME", "light")
	t.Setenv("COLLEGECHAT_REPLY_DELAY", "0s")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, time.Duration(0), cfg.ReplyDelay)
}

func TestLoadStoredConfigFrom_IgnoresEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, SaveConfigTo(DefaultConfig(), path))

	t.Setenv("COLLEGECHAT_ENDPOINT", "http://localhost:9999/chat")
	t.Setenv("COLLEGECHAT_THEME", "light")

	cfg, err := LoadStoredConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, models.EndpointChat, cfg.Endpoint)

	// an edit saved back must not capture the override
	cfg.CopyToClipboard = true
	require.NoError(t, SaveConfigTo(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "localhost:9999")
	assert.Contains(t, string(data), models.EndpointChat)

	stored, err := LoadStoredConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "college", stored.Theme)
	assert.True(t, stored.CopyToClipboard)

	// the runtime view still sees the override
	effective, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/chat", effective.Endpoint)
}

func TestLoadStoredConfigUsesHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COLLEGECHAT_THEME", "dark")

	cfg, err := LoadStoredConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	cfg, err := LoadConfigFrom(path)
	require.Error(t, err)
	assert.Equal(t, DefaultConfig().Endpoint, cfg.Endpoint)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Theme = "light"
	cfg.ReplyDelay = 2 * time.Second
	cfg.CopyToClipboard = true
	require.NoError(t, SaveConfigTo(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfigUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, SaveConfig(DefaultConfig()))
	_, err := os.Stat(filepath.Join(home, ".collegechat", "config.json"))
	require.NoError(t, err)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"relative endpoint", func(c *Config) { c.Endpoint = "/chat" }, "endpoint"},
		{"bad scheme", func(c *Config) { c.Endpoint = "ftp://host/chat" }, "endpoint"},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }, "theme"},
		{"negative delay", func(c *Config) { c.ReplyDelay = -time.Second }, "reply_delay"},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, "request_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			var cfgErr *apierrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}
}

func TestThemeOrDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "DARK"
	assert.Equal(t, models.ThemeDark, cfg.ThemeOrDefault())

	cfg.Theme = "bogus"
	assert.Equal(t, models.DefaultTheme, cfg.ThemeOrDefault())
}
