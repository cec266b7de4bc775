package dataprocessing

import (
	"fmt"
	"sort"

	"gradecli/internal/grading"
	"gradecli/pkg/contracts/domain"
)

// UnresolvedWarning describes a score whose student is not in the roster.
func UnresolvedWarning(studentID string) domain.Warning {
	return domain.Warning{
		Kind:      domain.WarningUnresolvedReference,
		StudentID: studentID,
		Message:   fmt.Sprintf("Student ID %s not found in name file. Skipping...", studentID),
	}
}

// BuildReport joins scores to the roster and grades every resolved score.
// Scores for unknown students are skipped with a warning. Rows come back
// stably sorted by student id, so one student's courses keep input order.
// The roster is only read.
func BuildReport(roster domain.Roster, scores []domain.CourseScore) *domain.Report {
	report := &domain.Report{
		Rows: make([]domain.ReportRow, 0, len(scores)),
	}

	for _, score := range scores {
		student, ok := roster.Lookup(score.StudentID)
		if !ok {
			report.Warnings = append(report.Warnings, UnresolvedWarning(score.StudentID))
			continue
		}
		report.Rows = append(report.Rows,
			domain.NewReportRow(student, score.CourseCode, grading.ScoreGrade(score)))
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].StudentID < report.Rows[j].StudentID
	})

	return report
}
