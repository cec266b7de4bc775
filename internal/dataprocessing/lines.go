package dataprocessing

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	apperrors "gradecli/internal/errors"
)

const (
	fieldDelimiter = ","
	maxLineBytes   = 1 << 20
	utf8BOM        = "\ufeff"
)

// lineFunc receives every non-blank line with its 1-based number.
type lineFunc func(lineNo int, line string) error

// scanLines streams r line by line. Blank lines are skipped but still
// counted so reported line numbers match the file. A UTF-8 BOM on the first
// line is dropped.
func scanLines(r io.Reader, source string, fn lineFunc) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return apperrors.NewIOError("read", source, err)
	}
	return nil
}

// eachLine is scanLines for an in-memory slice.
func eachLine(lines []string, fn lineFunc) error {
	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(i+1, line); err != nil {
			return err
		}
	}
	return nil
}

// splitFields splits line on the delimiter and trims each field. It fails
// with a FormatError unless exactly want fields are present.
func splitFields(source string, lineNo int, line string, want int) ([]string, error) {
	fields := strings.Split(line, fieldDelimiter)
	if len(fields) != want {
		return nil, apperrors.NewFormatError(source, lineNo, line,
			fieldCountReason(want, len(fields)))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

func fieldCountReason(want, got int) string {
	return fmt.Sprintf("expected %d fields, got %d", want, got)
}
