package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/portfolio/internal/config"
)

func TestLandingPage(t *testing.T) {
	cfg := &config.Config{
		SSH: config.SSHConfig{Port: "2222"},
		Web: config.WebConfig{SSHDisplayHost: "stars.example.com"},
	}
	srv := httptest.NewServer(newHandler(cfg, log.New(io.Discard)))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "ssh -p 2222 stars.example.com")
	assert.NotContains(t, string(body), "{{.")

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSSHPortFlag(t *testing.T) {
	assert.Equal(t, "", sshPortFlag("22"))
	assert.Equal(t, " -p 2323", sshPortFlag("2323"))
}
