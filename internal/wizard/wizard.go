// Package wizard collects a grade set and patient metadata interactively
// when the CLI is run without grade flags.
package wizard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/embrylab/blastograde/internal/models"
)

// GradeEntry holds all fields collected during the interactive form.
type GradeEntry struct {
	Grades  models.GradeSet
	Patient models.PatientInfo
}

// RunGradeWizard collects a grade set and optional patient metadata. On a
// terminal it runs a huh form; piped input (tests, scripts) is read as one
// answer per line in the same field order.
func RunGradeWizard(in io.Reader, out io.Writer) (*GradeEntry, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return runForm(in, out)
	}
	return runScripted(in, out)
}

func gradeOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, models.GradeMax)
	for v := models.GradeMin; v <= models.GradeMax; v++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d", v), v))
	}
	return opts
}

func runForm(in io.Reader, out io.Writer) (*GradeEntry, error) {
	var (
		icm       = 3
		te        = 3
		exp       = 3
		patientID string
		clinician string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Inner Cell Mass (ICM)").
				Description("1 = very few cells, 5 = many tightly packed cells").
				Options(gradeOptions()...).
				Value(&icm),
			huh.NewSelect[int]().
				Title("Trophectoderm (TE)").
				Description("1 = sparse large cells, 5 = cohesive epithelium").
				Options(gradeOptions()...).
				Value(&te),
			huh.NewSelect[int]().
				Title("Expansion (EXP)").
				Description("1 = early blastocyst, 5 = hatching").
				Options(gradeOptions()...).
				Value(&exp),
			huh.NewInput().
				Title("Patient ID").
				Description("Optional identifier for the report header").
				Placeholder("e.g. case-0142").
				Value(&patientID),
			huh.NewInput().
				Title("Clinician").
				Description("Optional name of the grading embryologist").
				Value(&clinician),
		),
	).
		WithInput(in).
		WithOutput(out)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("grade entry failed: %w", err)
	}
	return newEntry(models.GradeSet{ICM: icm, TE: te, Exp: exp}, patientID, clinician)
}

// runScripted reads one answer per line: the three grades, then the two
// optional patient fields. Input may end after the grades.
func runScripted(in io.Reader, out io.Writer) (*GradeEntry, error) {
	scanner := bufio.NewScanner(in)

	readLine := func(prompt string) (string, bool) {
		fmt.Fprintf(out, "%s: ", prompt)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	grades := models.GradeSet{}
	for _, p := range models.Parameters {
		line, ok := readLine(fmt.Sprintf("%s grade (%d-%d)", p.DisplayName(), models.GradeMin, models.GradeMax))
		if !ok {
			return nil, fmt.Errorf("unexpected end of input: %s grade is required", p)
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("%s grade is not a number: %q", p, line)
		}
		switch p {
		case models.ParameterICM:
			grades.ICM = v
		case models.ParameterTE:
			grades.TE = v
		case models.ParameterExp:
			grades.Exp = v
		}
	}
	if err := grades.Validate(); err != nil {
		return nil, err
	}

	patientID, _ := readLine("Patient ID (optional)")
	clinician, _ := readLine("Clinician (optional)")
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading grade entry: %w", err)
	}
	return newEntry(grades, patientID, clinician)
}

func newEntry(grades models.GradeSet, patientID, clinician string) (*GradeEntry, error) {
	entry := &GradeEntry{Grades: grades}

	patient := models.PatientInfo{}
	if v := strings.TrimSpace(patientID); v != "" {
		patient["Patient ID"] = v
	}
	if v := strings.TrimSpace(clinician); v != "" {
		patient["Clinician"] = v
	}
	if len(patient) > 0 {
		entry.Patient = patient
	}
	return entry, nil
}
