package models

import "fmt"

// InvalidGradeError reports a grade outside [GradeMin, GradeMax]. It is
// raised at the boundary, before any derived value is computed.
type InvalidGradeError struct {
	Parameter Parameter
	Value     int
}

func (e *InvalidGradeError) Error() string {
	return fmt.Sprintf("invalid grade for %s: %d (must be between %d and %d)",
		e.Parameter, e.Value, GradeMin, GradeMax)
}

// UnsupportedFormatError reports a report encoding this module does not
// produce.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported report format: %q", e.Format)
}
