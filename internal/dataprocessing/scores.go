package dataprocessing

import (
	"fmt"
	"io"
	"math"
	"strconv"

	apperrors "gradecli/internal/errors"
	"gradecli/internal/validation"
	"gradecli/pkg/contracts/domain"
)

const (
	scoresSource = "scores"
	scoreFields  = 6
)

var scoreFieldNames = [...]string{"test1", "test2", "test3", "final_exam"}

func parseScoreLine(lineNo int, line string) (domain.CourseScore, error) {
	fields, err := splitFields(scoresSource, lineNo, line, scoreFields)
	if err != nil {
		return domain.CourseScore{}, err
	}

	var marks [4]float64
	for i, raw := range fields[2:] {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.CourseScore{}, apperrors.NewFormatError(scoresSource, lineNo, line,
				fmt.Sprintf("%s is not a number: %q", scoreFieldNames[i], raw))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.CourseScore{}, apperrors.NewFormatError(scoresSource, lineNo, line,
				fmt.Sprintf("%s is not a finite number: %q", scoreFieldNames[i], raw))
		}
		marks[i] = v
	}

	score := domain.CourseScore{
		StudentID:  fields[0],
		CourseCode: fields[1],
		Test1:      marks[0],
		Test2:      marks[1],
		Test3:      marks[2],
		FinalExam:  marks[3],
	}

	// Empty ids and out of range marks are rejected, never clamped.
	if err := validation.Record(scoresSource, lineNo, line, score); err != nil {
		return domain.CourseScore{}, err
	}
	return score, nil
}

// ParseScores reads "id, course, t1, t2, t3, final" lines from r. Student
// ids are not resolved here.
func ParseScores(r io.Reader) ([]domain.CourseScore, error) {
	var scores []domain.CourseScore
	err := scanLines(r, scoresSource, func(lineNo int, line string) error {
		s, err := parseScoreLine(lineNo, line)
		if err != nil {
			return err
		}
		scores = append(scores, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// ParseScoreLines is ParseScores for lines already in memory.
func ParseScoreLines(lines []string) ([]domain.CourseScore, error) {
	scores := make([]domain.CourseScore, 0, len(lines))
	err := eachLine(lines, func(lineNo int, line string) error {
		s, err := parseScoreLine(lineNo, line)
		if err != nil {
			return err
		}
		scores = append(scores, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}
