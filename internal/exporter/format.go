package exporter

import (
	"fmt"
	"strconv"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// Report formats accepted by WriterFor.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// TextSeparator joins fields in the canonical text report.
const TextSeparator = ", "

// Header is the column header shared by every format.
var Header = []string{"Student ID", "Student Name", "Course Code", "Final Grade"}

// FormatGrade renders a grade with exactly one decimal place. Negative
// zero prints as 0.0.
func FormatGrade(g float64) string {
	if g == 0 {
		g = 0
	}
	return strconv.FormatFloat(g, 'f', 1, 64)
}

// RowFields returns the string form of a row in header order.
func RowFields(row domain.ReportRow) []string {
	return []string{row.StudentID, row.StudentName, row.CourseCode, FormatGrade(row.FinalGrade)}
}

// WriterFor returns the writer for format. An empty format means text.
func WriterFor(format string) (ReportWriter, error) {
	switch format {
	case FormatText, "":
		return TextWriter{}, nil
	case FormatCSV:
		return CSVWriter{}, nil
	case FormatXLSX:
		return XLSXWriter{}, nil
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("unsupported report format %q", format), nil)
	}
}
