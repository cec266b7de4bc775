package domain

import (
	"math"
)

// Student is a single roster entry.
type Student struct {
	ID   string `json:"student_id" validate:"required"`
	Name string `json:"student_name" validate:"required"`
}

// CourseScore holds the raw marks one student earned in one course.
// StudentID is not resolved against any roster at construction time.
type CourseScore struct {
	StudentID  string  `json:"student_id" validate:"required"`
	CourseCode string  `json:"course_code" validate:"required"`
	Test1      float64 `json:"test1" validate:"gte=0,lte=100"`
	Test2      float64 `json:"test2" validate:"gte=0,lte=100"`
	Test3      float64 `json:"test3" validate:"gte=0,lte=100"`
	FinalExam  float64 `json:"final_exam" validate:"gte=0,lte=100"`
}

// ReportRow is one line of the final grades report.
type ReportRow struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	CourseCode  string  `json:"course_code"`
	FinalGrade  float64 `json:"final_grade"`
}

// RoundGrade rounds v to one decimal place using math.Round on the scaled
// value, so halves go up for non-negative grades: 70.05 -> 70.1, 70.15 -> 70.2.
// A zero result is always +0.
func RoundGrade(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}

// NewReportRow builds a row around a grade that is already rounded.
// The stored grade is never rounded again.
func NewReportRow(student Student, courseCode string, grade float64) ReportRow {
	return ReportRow{
		StudentID:   student.ID,
		StudentName: student.Name,
		CourseCode:  courseCode,
		FinalGrade:  grade,
	}
}

// Roster maps student id to student. It is built once by the roster parser
// and treated as read-only afterwards.
type Roster map[string]Student

// Lookup returns the student registered under id.
func (r Roster) Lookup(id string) (Student, bool) {
	s, ok := r[id]
	return s, ok
}

// WarningKind classifies a non-fatal condition found during a run.
type WarningKind string

const (
	WarningUnresolvedReference WarningKind = "unresolved_reference"
	WarningDuplicateStudent    WarningKind = "duplicate_student"
)

// Warning is a recoverable condition collected alongside normal results.
type Warning struct {
	Kind      WarningKind `json:"kind"`
	StudentID string      `json:"student_id"`
	Line      int         `json:"line,omitempty"`
	Message   string      `json:"message"`
}

// Report is the output of the report builder.
type Report struct {
	Rows     []ReportRow `json:"rows"`
	Warnings []Warning   `json:"warnings,omitempty"`
}

// SkippedRows counts scores dropped because their student was unknown.
func (r *Report) SkippedRows() int {
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == WarningUnresolvedReference {
			n++
		}
	}
	return n
}
