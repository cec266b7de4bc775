// Package grading computes weighted final grades.
package grading

import (
	"gradecli/pkg/contracts/domain"
)

// Weights of the fixed grading formula. The three tests share 60% and the
// final exam carries 40%.
const (
	TestWeight      = 0.2
	FinalExamWeight = 0.4
)

// FinalGrade returns (test1+test2+test3)*0.2 + finalExam*0.4 rounded to one
// decimal place. Inputs in [0,100] always yield a grade in [0,100].
func FinalGrade(test1, test2, test3, finalExam float64) float64 {
	return RoundGrade((test1+test2+test3)*TestWeight + finalExam*FinalExamWeight)
}

// ScoreGrade is FinalGrade applied to a parsed score record.
func ScoreGrade(s domain.CourseScore) float64 {
	return FinalGrade(s.Test1, s.Test2, s.Test3, s.FinalExam)
}

// RoundGrade rounds half away from zero on the value scaled by ten, which
// is half-up for grades: 70.05 -> 70.1 and 70.15 -> 70.2.
func RoundGrade(v float64) float64 {
	return domain.RoundGrade(v)
}
