package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"

	"github.com/rvrjc/collegechat/internal/chat"
	"github.com/rvrjc/collegechat/internal/config"
	"github.com/rvrjc/collegechat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, fetcher *chat.Fetcher, cfg config.Config) error
	RunConfig(cfg config.Config, configPath string, save func(config.Config) error) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client overrides the HTTP reply client when set.
	Client chat.ReplyClient

	// TUI is the terminal user interface.
	TUI TUIInterface

	// LoadConfig reads the user configuration.
	LoadConfig func() (config.Config, error)

	// LoadStoredConfig reads the config file alone, without env overrides.
	LoadStoredConfig func() (config.Config, error)

	// SaveConfig persists the user configuration.
	SaveConfig func(config.Config) error

	// Clipboard copies text to the system clipboard.
	Clipboard func(string) error

	// Now is the wall clock used for the greeting.
	Now func() time.Time

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, fetcher *chat.Fetcher, cfg config.Config) error {
	return tui.RunChat(ctx, fetcher, cfg)
}

func (d *DefaultTUI) RunConfig(cfg config.Config, configPath string, save func(config.Config) error) error {
	return tui.RunConfig(cfg, configPath, save)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:              &DefaultTUI{},
		LoadConfig:       config.LoadConfig,
		LoadStoredConfig: config.LoadStoredConfig,
		SaveConfig:       config.SaveConfig,
		Clipboard:        clipboard.WriteAll,
		Now:              time.Now,
		In:               os.Stdin,
		Out:              os.Stdout,
		ErrOut:           os.Stderr,
	}
}
