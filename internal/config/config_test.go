package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "portfolio.log", cfg.LogFile)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, 200, cfg.Stars)
	assert.Equal(t, 5, cfg.Nebulas)
	assert.Equal(t, 30, cfg.FloatingParticles)
	assert.True(t, cfg.Audio)
	assert.True(t, cfg.Mouse)
	assert.Equal(t, "alien", cfg.Theme)
	assert.Equal(t, "sqlite", cfg.Prefs.Backend)
	assert.Equal(t, "portfolio.db", cfg.Prefs.Path)
	assert.Equal(t, "::", cfg.SSH.Host)
	assert.Equal(t, "2222", cfg.SSH.Port)
	assert.Equal(t, 10*time.Minute, cfg.SSH.IdleTimeout)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, "8080", cfg.Web.Port)
	assert.Equal(t, "your-server.com", cfg.Web.SSHDisplayHost)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.json")
	cfg := `{
		"logLevel": "debug",
		"stars": 50,
		"theme": "matrix",
		"prefs": { "backend": "memory" },
		"ssh": { "port": "2323", "idleTimeout": "90s" }
	}`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", got.LogLevel)
	assert.Equal(t, 50, got.Stars)
	assert.Equal(t, "matrix", got.Theme)
	assert.Equal(t, "memory", got.Prefs.Backend)
	assert.Equal(t, "2323", got.SSH.Port)
	assert.Equal(t, 90*time.Second, got.SSH.IdleTimeout)
	assert.Equal(t, 5, got.Nebulas, "unset keys keep defaults")
}

func TestLoad_DiscoversFileInWorkingDir(t *testing.T) {
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portfolio.yaml"), []byte("fps: 30\nmouse: false\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FPS)
	assert.False(t, cfg.Mouse)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("PORTFOLIO_SSH_PORT", "2424")
	t.Setenv("PORTFOLIO_SSH_IDLETIMEOUT", "30s")
	t.Setenv("PORTFOLIO_AUDIO", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "2424", cfg.SSH.Port)
	assert.Equal(t, 30*time.Second, cfg.SSH.IdleTimeout)
	assert.False(t, cfg.Audio)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load("/nonexistent/path/portfolio.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Invalid(t *testing.T) {
	for name, env := range map[string][2]string{
		"fps":     {"PORTFOLIO_FPS", "0"},
		"stars":   {"PORTFOLIO_STARS", "-1"},
		"theme":   {"PORTFOLIO_THEME", "neon"},
		"backend": {"PORTFOLIO_PREFS_BACKEND", "postgres"},
		"idle":    {"PORTFOLIO_SSH_IDLETIMEOUT", "-5s"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			t.Chdir(t.TempDir())
			t.Setenv(env[0], env[1])

			_, err := Load("")
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := Config{FPS: 50}
	assert.Equal(t, 20*time.Millisecond, cfg.FrameInterval())
}
