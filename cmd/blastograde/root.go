package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blastograde",
		Short: "Blastograde - decision support for blastocyst grading",
		Long: `Blastograde is a decision-support tool for blastocyst-stage embryo grading.

It interprets the three graded parameters (Inner Cell Mass, Trophectoderm,
Expansion), derives a quality band and success-probability estimate, and
renders reports in text, JSON, CSV, PDF, and HTML.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newGradeCommand())
	cmd.AddCommand(newBatchCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newHistoryCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
