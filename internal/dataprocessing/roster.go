package dataprocessing

import (
	"fmt"
	"io"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

const (
	rosterSource = "roster"
	rosterFields = 2
)

// RosterResult is a parsed roster plus the warnings raised while building it.
type RosterResult struct {
	Roster   domain.Roster
	Warnings []domain.Warning
}

type rosterBuilder struct {
	result *RosterResult
	seenAt map[string]int
}

func newRosterBuilder() *rosterBuilder {
	return &rosterBuilder{
		result: &RosterResult{Roster: make(domain.Roster)},
		seenAt: make(map[string]int),
	}
}

func (b *rosterBuilder) add(lineNo int, line string) error {
	fields, err := splitFields(rosterSource, lineNo, line, rosterFields)
	if err != nil {
		return err
	}

	id, name := fields[0], fields[1]
	if id == "" {
		return apperrors.NewFormatError(rosterSource, lineNo, line, "empty student id")
	}
	if name == "" {
		return apperrors.NewFormatError(rosterSource, lineNo, line, "empty student name")
	}

	// Last occurrence wins.
	if prev, dup := b.seenAt[id]; dup {
		b.result.Warnings = append(b.result.Warnings, domain.Warning{
			Kind:      domain.WarningDuplicateStudent,
			StudentID: id,
			Line:      lineNo,
			Message: fmt.Sprintf("Student ID %s on line %d replaces the entry from line %d",
				id, lineNo, prev),
		})
	}
	b.seenAt[id] = lineNo
	b.result.Roster[id] = domain.Student{ID: id, Name: name}
	return nil
}

// ParseRoster reads "id, name" lines from r. It stops at the first malformed
// line and returns a FormatError carrying that line.
func ParseRoster(r io.Reader) (*RosterResult, error) {
	b := newRosterBuilder()
	if err := scanLines(r, rosterSource, b.add); err != nil {
		return nil, err
	}
	return b.result, nil
}

// ParseRosterLines is ParseRoster for lines already in memory.
func ParseRosterLines(lines []string) (*RosterResult, error) {
	b := newRosterBuilder()
	if err := eachLine(lines, b.add); err != nil {
		return nil, err
	}
	return b.result, nil
}
