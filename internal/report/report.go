// Package report serializes a single analysis into its output encodings.
// Every encoding carries the same underlying facts — grades, band, average,
// success probability, summary, notes, recommendation blocks, the grading
// criteria reference, and the disclaimer. Only layout differs.
package report

import (
	"fmt"
	"strings"

	"github.com/embrylab/blastograde/internal/models"
)

// Format is a supported report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// Formats lists every supported encoding.
var Formats = []Format{FormatText, FormatJSON, FormatCSV, FormatPDF, FormatHTML}

// ParseFormat converts a string flag or query value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", &models.UnsupportedFormatError{Format: s}
	}
}

// ContentType returns the MIME type for a format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for a format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Render serializes an analysis in the requested encoding. Deterministic:
// the same analysis renders to byte-identical output. It never fails for a
// valid analysis and a known format.
func Render(a *models.Analysis, format Format) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("nil analysis")
	}
	switch format {
	case FormatText:
		return renderText(a), nil
	case FormatJSON:
		return renderJSON(a)
	case FormatCSV:
		return renderCSV(a)
	case FormatPDF:
		return renderPDF(a)
	case FormatHTML:
		return renderHTML(a)
	default:
		return nil, &models.UnsupportedFormatError{Format: string(format)}
	}
}
