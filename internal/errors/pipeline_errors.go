package errors

import (
	"errors"
	"fmt"
)

// Kind is the user-facing classification of a pipeline failure.
type Kind string

const (
	KindFormat     Kind = "format"
	KindValidation Kind = "validation"
	KindIO         Kind = "io"
	KindConfig     Kind = "config"
	KindInternal   Kind = "internal"
)

// FormatError reports a line that could not be split or parsed.
type FormatError struct {
	Source string // "roster", "scores" or a file path
	Line   int    // 1-based; 0 when unknown
	Raw    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: malformed line %d: %s: %q", e.Source, e.Line, e.Reason, e.Raw)
}

// NewFormatError creates a format error for the given raw line
func NewFormatError(source string, line int, raw, reason string) *FormatError {
	return &FormatError{Source: source, Line: line, Raw: raw, Reason: reason}
}

// ValidationError reports a parsed value that breaks a domain constraint.
type ValidationError struct {
	Source string
	Line   int
	Raw    string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: invalid line %d: %s: %q", e.Source, e.Line, e.Reason, e.Raw)
	}
	return fmt.Sprintf("%s: invalid line %d: %s %s: %q", e.Source, e.Line, e.Field, e.Reason, e.Raw)
}

// NewFieldValidationError creates a validation error naming the offending field
func NewFieldValidationError(source string, line int, raw, field, reason string) *ValidationError {
	return &ValidationError{Source: source, Line: line, Raw: raw, Field: field, Reason: reason}
}

// IOError wraps an underlying read or write failure with the path involved.
type IOError struct {
	Op   string // "open", "read", "write", "rename", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError wraps err; it returns nil when err is nil.
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// KindOf classifies err for display. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	var (
		formatErr     *FormatError
		validationErr *ValidationError
		ioErr         *IOError
		appErr        *AppError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &formatErr):
		return KindFormat
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &ioErr):
		return KindIO
	case errors.As(err, &appErr):
		switch appErr.Type {
		case ErrTypeConfig:
			return KindConfig
		case ErrTypeValidation:
			return KindValidation
		case ErrTypeParsing:
			return KindFormat
		case ErrTypeStorage, ErrTypeNotFound, ErrTypePermission:
			return KindIO
		}
	}
	return KindInternal
}
