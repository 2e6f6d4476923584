package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/embrylab/blastograde/internal/history"
	"github.com/embrylab/blastograde/internal/projectconfig"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the persistent analysis history",
	}
	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryClearCommand())
	return cmd
}

func openConfiguredStore() (*history.SQLiteStore, error) {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return nil, err
	}
	if cfg.History.SQLitePath == "" {
		return nil, fmt.Errorf("history commands need history.sqlite_path set in %s", projectconfig.ConfigFileName)
	}
	return history.NewSQLiteStore(cfg.History.SQLitePath, cfg.History.Capacity)
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent analyses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openConfiguredStore()
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no analyses recorded")
				return nil
			}
			for _, a := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  avg=%.2f  p=%.1f%%  %s\n",
					a.Timestamp.Format(time.RFC3339), a.ID, a.Grades, a.Average,
					a.SuccessProbability, a.Band)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum entries to show")
	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openConfiguredStore()
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		},
	}
}
