package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/embrylab/blastograde/internal/history"
	"github.com/embrylab/blastograde/internal/interpret"
	"github.com/embrylab/blastograde/internal/projectconfig"
	"github.com/embrylab/blastograde/internal/webapi"
	"github.com/embrylab/blastograde/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		port      int
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the grading dashboard and REST API",
		Long: `Start the grading dashboard and REST API.

The server binds to loopback and keeps analyses in a bounded history store:
in memory by default, or in SQLite when history.sqlite_path is configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			policy, err := cfg.ScoringPolicy()
			if err != nil {
				return err
			}
			if port == 0 {
				port = cfg.Server.Port
			}
			if !noBrowser && cfg.Server.NoBrowser != nil {
				noBrowser = *cfg.Server.NoBrowser
			}

			interp, err := interpret.New(policy)
			if err != nil {
				return err
			}

			var store history.Store
			if cfg.History.SQLitePath != "" {
				sqlStore, err := history.NewSQLiteStore(cfg.History.SQLitePath, cfg.History.Capacity)
				if err != nil {
					return err
				}
				defer sqlStore.Close() //nolint:errcheck
				store = sqlStore
				slog.Info("using SQLite history", "path", cfg.History.SQLitePath, "capacity", cfg.History.Capacity)
			} else {
				store = history.NewMemoryStore(cfg.History.Capacity)
				slog.Info("using in-memory history", "capacity", cfg.History.Capacity)
			}

			server, err := webserver.New(webserver.Config{
				Port:      port,
				NoBrowser: noBrowser,
				Service:   webapi.NewAnalysisService(interp, store),
				Logger:    slog.Default(),
			})
			if err != nil {
				return err
			}
			return server.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default: server.port from config)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the dashboard in a browser")

	return cmd
}
