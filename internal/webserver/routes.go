package webserver

import (
	_ "embed"
	"net/http"

	"github.com/embrylab/blastograde/internal/webapi"
)

//go:embed index.html
var indexHTML []byte

// registerRoutes sets up API routes and the dashboard page on the mux.
func registerRoutes(mux *http.ServeMux, cfg Config) {
	webapi.RegisterRoutes(mux, cfg.Service)

	// Single embedded page; unknown paths fall back to it so bookmarked
	// dashboard URLs keep working.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML) //nolint:errcheck
	})
}
