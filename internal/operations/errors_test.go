package operations

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "gradecli/internal/errors"
)

func TestDescribeError(t *testing.T) {
	formatErr := apperrors.NewFormatError("NameFile.txt", 3, "123", "expected 2 fields, got 1")

	tests := []struct {
		name    string
		err     error
		want    Failure
		message string
	}{
		{
			name: "nil",
			err:  nil,
			want: Failure{},
		},
		{
			name: "stage wrapped format error",
			err:  &StageError{Stage: StageParseRoster, Err: formatErr},
			want: Failure{Kind: apperrors.KindFormat, Stage: StageParseRoster, Message: formatErr.Error()},
		},
		{
			name: "validation",
			err:  apperrors.NewFieldValidationError("scores", 2, "raw", "test1", "must be at most 100 (got 101)"),
			want: Failure{Kind: apperrors.KindValidation, Message: "scores: invalid line 2: test1 must be at most 100 (got 101): \"raw\""},
		},
		{
			name: "io",
			err:  fmt.Errorf("reading: %w", apperrors.NewIOError("open", "x.txt", os.ErrNotExist)),
			want: Failure{Kind: apperrors.KindIO, Message: "reading: open x.txt: file does not exist"},
		},
		{
			name: "config",
			err:  apperrors.NewConfigError("bad format", nil),
			want: Failure{Kind: apperrors.KindConfig, Message: "[CONFIG] bad format"},
		},
		{
			name: "unknown",
			err:  errors.New("boom"),
			want: Failure{Kind: apperrors.KindInternal, Message: "boom"},
		},
		{
			name: "cancelled",
			err:  &StageError{Stage: StageWrite, Err: context.Canceled},
			want: Failure{Kind: apperrors.KindInternal, Stage: StageWrite, Message: "run cancelled: context canceled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeError(tt.err))
		})
	}
}

func TestFailureString(t *testing.T) {
	f := Failure{Kind: apperrors.KindFormat, Message: "bad line"}
	assert.Equal(t, "format error: bad line", f.String())
}

func TestStageErrorUnwrap(t *testing.T) {
	inner := apperrors.NewIOError("read", "scores", errors.New("eof"))
	err := &StageError{Stage: StageParseScores, Err: inner}

	var ioErr *apperrors.IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "parse_scores failed: read scores: eof", err.Error())
}

func TestAttachPath(t *testing.T) {
	f := apperrors.NewFormatError("roster", 1, "x", "r")
	_ = attachPath(&StageError{Stage: StageParseRoster, Err: f}, "/in/NameFile.txt")
	assert.Equal(t, "/in/NameFile.txt", f.Source)

	v := apperrors.NewFieldValidationError("scores", 1, "x", "test1", "r")
	_ = attachPath(v, "/in/CourseFile.txt")
	assert.Equal(t, "/in/CourseFile.txt", v.Source)

	ioErr := &apperrors.IOError{Op: "read", Path: "scores", Err: errors.New("token too long")}
	_ = attachPath(ioErr, "/in/CourseFile.txt")
	assert.Equal(t, "/in/CourseFile.txt", ioErr.Path)

	other := errors.New("plain")
	assert.Same(t, other, attachPath(other, "ignored"))
}
