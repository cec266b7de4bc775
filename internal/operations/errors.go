package operations

import (
	"context"
	"errors"
	"fmt"

	apperrors "gradecli/internal/errors"
)

// StageError ties a fatal error to the stage that raised it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Failure is the user-facing form of a fatal run error.
type Failure struct {
	Kind    apperrors.Kind `json:"kind"`
	Stage   string         `json:"stage,omitempty"`
	Message string         `json:"message"`
}

func (f Failure) String() string {
	return fmt.Sprintf("%s error: %s", f.Kind, f.Message)
}

// DescribeError classifies err for display. Cancellation counts as an
// internal failure.
func DescribeError(err error) Failure {
	if err == nil {
		return Failure{}
	}

	f := Failure{Kind: apperrors.KindOf(err), Message: err.Error()}

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		f.Stage = stageErr.Stage
		f.Message = stageErr.Err.Error()
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		f.Kind = apperrors.KindInternal
		f.Message = "run cancelled: " + f.Message
	}

	return f
}

// attachPath replaces the logical source name on parse and read errors
// with the file involved.
func attachPath(err error, path string) error {
	var formatErr *apperrors.FormatError
	if errors.As(err, &formatErr) {
		formatErr.Source = path
		return err
	}
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		validationErr.Source = path
		return err
	}
	var ioErr *apperrors.IOError
	if errors.As(err, &ioErr) {
		ioErr.Path = path
	}
	return err
}
