// Package dataprocessing turns roster and score files into a graded report.
//
// # Pipeline
//
//	roster lines → ParseRoster  → domain.Roster ┐
//	                                            ├→ BuildReport → sorted []ReportRow + warnings
//	score lines  → ParseScores  → []CourseScore ┘
//
// Both parsers split on commas, trim every field and skip blank lines.
// They fail fast: the first malformed line aborts the parse with a
// FormatError or ValidationError naming the line.
//
// BuildReport never fails. Scores whose student id is missing from the
// roster are skipped and reported as unresolved_reference warnings.
//
// # Inputs
//
// OpenInput accepts plain text files and .xlsx workbooks; a workbook's
// first non-empty sheet is read as comma joined lines.
//
// # Usage
//
//	in, err := dataprocessing.OpenInput("NameFile.txt")
//	if err != nil {
//	    return err
//	}
//	defer in.Close()
//	roster, err := dataprocessing.ParseRoster(in)
package dataprocessing
