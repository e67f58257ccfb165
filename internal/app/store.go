package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tomz197/portfolio/internal/config"
	"github.com/tomz197/portfolio/internal/prefs"
	"github.com/tomz197/portfolio/internal/prefs/sqlite"
)

// OpenStore opens the preference store the config selects.
func OpenStore(cfg config.PrefsConfig, logger *log.Logger) (prefs.Store, error) {
	switch cfg.Backend {
	case "memory":
		logger.Info("Using memory preference store")
		return prefs.NewMemory(), nil
	case "sqlite":
		return sqlite.Open(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("%w: unknown prefs.backend %q", config.ErrInvalid, cfg.Backend)
	}
}
