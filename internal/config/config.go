// Package config loads the portfolio settings from defaults, an optional
// config file and PORTFOLIO_ environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/tomz197/portfolio/internal/theme"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// PrefsConfig selects the preference store.
type PrefsConfig struct {
	Backend string `json:"backend" mapstructure:"backend"`
	Path    string `json:"path" mapstructure:"path"`
}

// SSHConfig holds the SSH server settings.
type SSHConfig struct {
	Host        string        `json:"host" mapstructure:"host"`
	Port        string        `json:"port" mapstructure:"port"`
	HostKey     string        `json:"hostKey" mapstructure:"hostKey"`
	IdleTimeout time.Duration `json:"idleTimeout" mapstructure:"idleTimeout"`
}

// WebConfig holds the landing page settings.
type WebConfig struct {
	Host           string `json:"host" mapstructure:"host"`
	Port           string `json:"port" mapstructure:"port"`
	SSHDisplayHost string `json:"sshDisplayHost" mapstructure:"sshDisplayHost"`
}

// Config is the full configuration.
type Config struct {
	LogLevel          string      `json:"logLevel" mapstructure:"logLevel"`
	LogFile           string      `json:"logFile" mapstructure:"logFile"`
	FPS               int         `json:"fps" mapstructure:"fps"`
	Stars             int         `json:"stars" mapstructure:"stars"`
	Nebulas           int         `json:"nebulas" mapstructure:"nebulas"`
	FloatingParticles int         `json:"floatingParticles" mapstructure:"floatingParticles"`
	Audio             bool        `json:"audio" mapstructure:"audio"`
	Mouse             bool        `json:"mouse" mapstructure:"mouse"`
	Theme             string      `json:"theme" mapstructure:"theme"`
	Prefs             PrefsConfig `json:"prefs" mapstructure:"prefs"`
	SSH               SSHConfig   `json:"ssh" mapstructure:"ssh"`
	Web               WebConfig   `json:"web" mapstructure:"web"`
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "portfolio.log")
	viper.SetDefault("fps", 60)
	viper.SetDefault("stars", 200)
	viper.SetDefault("nebulas", 5)
	viper.SetDefault("floatingParticles", 30)
	viper.SetDefault("audio", true)
	viper.SetDefault("mouse", true)
	viper.SetDefault("theme", string(theme.Default))

	viper.SetDefault("prefs.backend", "sqlite")
	viper.SetDefault("prefs.path", "portfolio.db")

	viper.SetDefault("ssh.host", "::")
	viper.SetDefault("ssh.port", "2222")
	viper.SetDefault("ssh.hostKey", ".ssh/portfolio_ed25519")
	viper.SetDefault("ssh.idleTimeout", "10m")

	viper.SetDefault("web.host", "0.0.0.0")
	viper.SetDefault("web.port", "8080")
	viper.SetDefault("web.sshDisplayHost", "your-server.com")
}

// Load reads the configuration. With an empty path a portfolio.yaml or
// portfolio.json in the working directory is used when present; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	SetDefaults()
	bindEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("portfolio")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot enforce by type.
func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case c.Stars < 0 || c.Nebulas < 0 || c.FloatingParticles < 0:
		return fmt.Errorf("%w: particle counts must not be negative", ErrInvalid)
	case c.SSH.Port == "":
		return fmt.Errorf("%w: ssh.port is empty", ErrInvalid)
	case c.Web.Port == "":
		return fmt.Errorf("%w: web.port is empty", ErrInvalid)
	case c.SSH.IdleTimeout < 0:
		return fmt.Errorf("%w: ssh.idleTimeout must not be negative", ErrInvalid)
	}
	if _, err := theme.Parse(c.Theme); err != nil {
		return fmt.Errorf("%w: theme: %w", ErrInvalid, err)
	}
	switch c.Prefs.Backend {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("%w: unknown prefs.backend %q", ErrInvalid, c.Prefs.Backend)
	}
	return nil
}

// FrameInterval returns the time between frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
