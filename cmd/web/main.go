package main

import (
	_ "embed"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/portfolio/internal/config"
	"github.com/tomz197/portfolio/internal/logging"
)

//go:embed index.html
var htmlPage string

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "portfolio-web: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, newHandler(cfg, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page with the SSH address filled in.
func newHandler(cfg *config.Config, logger *log.Logger) http.Handler {
	page := strings.NewReplacer(
		"{{.SSHHost}}", cfg.Web.SSHDisplayHost,
		"{{.SSHPort}}", sshPortFlag(cfg.SSH.Port),
	).Replace(htmlPage)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		logger.Debug("landing page", "remote", r.RemoteAddr)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	return mux
}

// sshPortFlag is the -p option of the ssh command, empty for port 22.
func sshPortFlag(port string) string {
	if port == "" || port == "22" {
		return ""
	}
	return " -p " + port
}
