package commands

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/foliochat/folio/internal/backend"
	"github.com/foliochat/folio/internal/core/chat"
	"github.com/foliochat/folio/internal/core/config"
	"github.com/foliochat/folio/internal/render"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	BaseURL    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Client talks to the portfolio backend
	Client *backend.Client
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "folio", "config.yaml")
}

// newConversation builds a fresh session and its dispatcher from the loaded
// configuration.
func (f *Flags) newConversation(chatter chat.Chatter, log zerolog.Logger) (*chat.Session, *chat.Dispatcher) {
	cfg := f.config()

	session := chat.NewSession(cfg.Chat.Greeting)
	dispatcher := chat.NewDispatcher(session, chatter, chat.Options{
		Apology: cfg.Chat.Apology,
		Timeout: cfg.Chat.Timeout,
		Logger:  log,
	})
	return session, dispatcher
}

func (f *Flags) newRenderer() *render.Renderer {
	cfg := f.config()
	return render.New(render.Options{
		Style:    cfg.Render.Style,
		WordWrap: cfg.Render.WordWrap,
	})
}

func (f *Flags) config() *config.Config {
	if f.Config == nil {
		cfg := config.DefaultConfig()
		f.Config = &cfg
	}
	return f.Config
}
