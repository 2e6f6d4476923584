package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/embrylab/blastograde/internal/models"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Command completed
	ExitUsage   = 1 // Invalid input (bad grades, unknown format)
	ExitError   = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Invalid user input gets its own exit code so scripts can
		// distinguish bad grades from runtime failures.
		var gradeErr *models.InvalidGradeError
		var formatErr *models.UnsupportedFormatError
		if errors.As(err, &gradeErr) || errors.As(err, &formatErr) {
			os.Exit(ExitUsage)
		}

		os.Exit(ExitError)
	}
}
