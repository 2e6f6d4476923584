package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/embrylab/blastograde/internal/bundle"
	"github.com/embrylab/blastograde/internal/interpret"
	"github.com/embrylab/blastograde/internal/models"
	"github.com/embrylab/blastograde/internal/projectconfig"
	"github.com/embrylab/blastograde/internal/report"
)

const defaultBatchWorkers = 4

// batchRow is one parsed input line.
type batchRow struct {
	line    int
	grades  models.GradeSet
	patient models.PatientInfo
}

func newBatchCommand() *cobra.Command {
	var (
		formatFlag  string
		outDir      string
		bundlePath  string
		workerCount int
	)

	cmd := &cobra.Command{
		Use:   "batch <grades.csv>",
		Short: "Render reports for a CSV of grade sets",
		Long: `Render reports for a CSV of grade sets.

The input file needs an icm,te,exp header; an optional patient_id column is
carried into each report. One report file per row is written to the output
directory, named by row number and patient ID.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			policy, err := cfg.ScoringPolicy()
			if err != nil {
				return err
			}
			format, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.ReportsDir
			}

			rows, err := readBatchFile(args[0])
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("no grade rows in %s", args[0])
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			interp, err := interpret.New(policy)
			if err != nil {
				return err
			}

			// SetLimit(0) would block the first Go call forever.
			if workerCount <= 0 {
				workerCount = defaultBatchWorkers
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(workerCount)
			for _, row := range rows {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					analysis, err := interp.Analyze(row.grades, row.patient)
					if err != nil {
						return fmt.Errorf("row %d: %w", row.line, err)
					}
					payload, err := report.Render(analysis, format)
					if err != nil {
						return fmt.Errorf("row %d: %w", row.line, err)
					}
					name := fmt.Sprintf("row-%03d", row.line)
					if id := row.patient["Patient ID"]; id != "" {
						name = fmt.Sprintf("%s-%s", name, id)
					}
					path := filepath.Join(outDir, name+"."+format.Extension())
					if err := os.WriteFile(path, payload, 0o644); err != nil {
						return fmt.Errorf("row %d: writing report: %w", row.line, err)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d reports written to %s\n", len(rows), outDir)

			if bundlePath != "" {
				if err := bundle.WriteFile(bundlePath, outDir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "archive written to %s\n", bundlePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "pdf", "Report format: text, json, csv, pdf, html")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: reports_dir from config)")
	cmd.Flags().StringVar(&bundlePath, "bundle", "", "Also write a .tar.gz archive of the output directory")
	cmd.Flags().IntVar(&workerCount, "workers", defaultBatchWorkers, "Concurrent render workers")

	return cmd
}

// readBatchFile parses the input CSV. The header names columns; icm, te,
// and exp are required, patient_id is optional.
func readBatchFile(path string) ([]batchRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading batch header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"icm", "te", "exp"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("batch file is missing the %q column", required)
		}
	}

	var rows []batchRow
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading batch file: %w", err)
		}
		line++

		grades := models.GradeSet{}
		for name, dst := range map[string]*int{"icm": &grades.ICM, "te": &grades.TE, "exp": &grades.Exp} {
			v, err := strconv.Atoi(strings.TrimSpace(record[col[name]]))
			if err != nil {
				return nil, fmt.Errorf("line %d: %s is not a number: %w", line, name, err)
			}
			*dst = v
		}
		if err := grades.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := batchRow{line: line, grades: grades}
		if i, ok := col["patient_id"]; ok && i < len(record) && strings.TrimSpace(record[i]) != "" {
			row.patient = models.PatientInfo{"Patient ID": strings.TrimSpace(record[i])}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
