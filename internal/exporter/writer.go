package exporter

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"gradecli/pkg/contracts/domain"
)

// ReportWriter encodes report rows in one output format. Rows are written
// in the order given.
type ReportWriter interface {
	Write(w io.Writer, rows []domain.ReportRow) error
}

// TextWriter writes the canonical report: a header line followed by one
// "id, name, course, grade" line per row, each ending in "\n".
type TextWriter struct{}

func (TextWriter) Write(w io.Writer, rows []domain.ReportRow) error {
	bw := bufio.NewWriter(w)

	if err := writeTextLine(bw, Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeTextLine(bw, RowFields(row)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeTextLine(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, TextSeparator)); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// CSVWriter writes RFC 4180 CSV with a "," separator. Names containing
// commas or quotes are quoted.
type CSVWriter struct{}

func (CSVWriter) Write(w io.Writer, rows []domain.ReportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(RowFields(row)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
