package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/embrylab/blastograde/internal/classifier"
	"github.com/embrylab/blastograde/internal/interpret"
	"github.com/embrylab/blastograde/internal/models"
	"github.com/embrylab/blastograde/internal/projectconfig"
	"github.com/embrylab/blastograde/internal/publish"
	"github.com/embrylab/blastograde/internal/report"
	"github.com/embrylab/blastograde/internal/wizard"
)

func newGradeCommand() *cobra.Command {
	var (
		icm, te, exp     int
		imagePath        string
		formatFlag       string
		outputPath       string
		patientID        string
		publishURL       string
		publishContainer string
	)

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Interpret one grade set and render a report",
		Long: `Interpret one grade set and render a report.

Grades can be supplied three ways:
  - directly with --icm, --te, and --exp
  - from an image with --image, sent to the configured inference service
  - interactively, when neither is given and stdin is a terminal`,
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

			grades, patient, err := resolveGrades(cmd, cfg, icm, te, exp, imagePath)
			if err != nil {
				return err
			}
			if patientID != "" {
				if patient == nil {
					patient = models.PatientInfo{}
				}
				patient["Patient ID"] = patientID
			}

			interp, err := interpret.New(policy)
			if err != nil {
				return err
			}
			analysis, err := interp.Analyze(grades, patient)
			if err != nil {
				return err
			}

			payload, err := report.Render(analysis, format)
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", outputPath)
			} else {
				cmd.OutOrStdout().Write(payload) //nolint:errcheck
			}

			if publishURL != "" {
				uploader, err := publish.NewUploader(publishURL, publishContainer, nil)
				if err != nil {
					return err
				}
				name := fmt.Sprintf("%s.%s", analysis.ID, format.Extension())
				if err := uploader.Upload(cmd.Context(), name, payload, format); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report published as %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&icm, "icm", 0, "Inner Cell Mass grade (1-5)")
	cmd.Flags().IntVar(&te, "te", 0, "Trophectoderm grade (1-5)")
	cmd.Flags().IntVar(&exp, "exp", 0, "Expansion grade (1-5)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Embryo image to classify via the configured inference service")
	cmd.Flags().StringVar(&formatFlag, "format", "text", "Report format: text, json, csv, pdf, html")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&patientID, "patient", "", "Patient identifier for the report header")
	cmd.Flags().StringVar(&publishURL, "publish", "", "Azure storage account URL to publish the report to")
	cmd.Flags().StringVar(&publishContainer, "container", "reports", "Blob container used with --publish")

	return cmd
}

// resolveGrades picks the grade source: explicit flags, remote
// classification of an image, or the interactive wizard.
func resolveGrades(cmd *cobra.Command, cfg *projectconfig.ProjectConfig, icm, te, exp int, imagePath string) (models.GradeSet, models.PatientInfo, error) {
	switch {
	case imagePath != "":
		image, err := os.ReadFile(imagePath)
		if err != nil {
			return models.GradeSet{}, nil, fmt.Errorf("reading image: %w", err)
		}
		c, err := classifier.NewHTTPClassifier(classifier.HTTPOptions{
			Endpoint:   cfg.Classifier.Endpoint,
			TimeoutSec: cfg.Classifier.TimeoutSeconds,
		})
		if err != nil {
			return models.GradeSet{}, nil, err
		}
		grades, err := c.Classify(cmd.Context(), image)
		if err != nil {
			return models.GradeSet{}, nil, err
		}
		return grades, models.PatientInfo{"Image": filepath.Base(imagePath)}, nil

	case icm != 0 || te != 0 || exp != 0:
		grades := models.GradeSet{ICM: icm, TE: te, Exp: exp}
		if err := grades.Validate(); err != nil {
			return models.GradeSet{}, nil, err
		}
		return grades, nil, nil

	default:
		entry, err := wizard.RunGradeWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return models.GradeSet{}, nil, err
		}
		return entry.Grades, entry.Patient, nil
	}
}
