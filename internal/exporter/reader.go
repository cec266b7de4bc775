package exporter

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "gradecli/internal/errors"
	"gradecli/internal/validation"
)

const reportSource = "report"

// Table is a report read back from disk.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// ReadReport parses a text or csv report. Both the ", " and "," separators
// are accepted. Every row must have as many fields as the header.
func ReadReport(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, apperrors.NewFormatError(reportSource, parseErr.Line, "", parseErr.Err.Error())
		}
		return nil, apperrors.NewIOError("read", reportSource, err)
	}

	return toTable(records)
}

// ReadReportFile loads a report from path in any supported format.
func ReadReportFile(path string) (*Table, error) {
	if validation.IsWorkbook(path) {
		return readWorkbookReport(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIOError("open", path, err)
	}
	defer f.Close()

	table, err := ReadReport(f)
	if err != nil {
		var formatErr *apperrors.FormatError
		if errors.As(err, &formatErr) {
			formatErr.Source = path
		}
		return nil, err
	}
	return table, nil
}

func readWorkbookReport(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewIOError("open", path, err)
	}
	defer f.Close()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewIOError("read", path, err)
	}

	var records [][]string
	for _, row := range rows {
		if len(row) > 0 {
			records = append(records, row)
		}
	}
	return toTable(records)
}

func toTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, apperrors.NewFormatError(reportSource, 0, "", "report has no header")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := &Table{Header: header, Rows: make([][]string, 0, len(records)-1)}
	for _, rec := range records[1:] {
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}
