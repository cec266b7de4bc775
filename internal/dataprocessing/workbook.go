package dataprocessing

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "gradecli/internal/errors"
	"gradecli/internal/validation"
)

// OpenInput opens a roster or score file. Plain files are streamed as-is;
// .xlsx workbooks are flattened to comma separated lines first so the same
// parsers apply.
func OpenInput(path string) (io.ReadCloser, error) {
	if validation.IsWorkbook(path) {
		lines, err := ReadWorkbookLines(path)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(strings.NewReader(strings.Join(lines, "\n"))), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIOError("open", path, err)
	}
	return f, nil
}

// ReadWorkbookLines returns the rows of the first sheet that holds data,
// one comma joined line per row. Empty rows become empty lines so line
// numbers in errors match spreadsheet row numbers.
func ReadWorkbookLines(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewIOError("open", path, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, apperrors.NewIOError("read", path, err)
		}
		if !hasData(rows) {
			continue
		}

		slog.Debug("Reading workbook sheet",
			slog.String("file", path),
			slog.String("sheet_name", sheet),
			slog.Int("total_rows", len(rows)))

		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = strings.Join(row, fieldDelimiter)
		}
		return lines, nil
	}

	return nil, nil
}

func hasData(rows [][]string) bool {
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return true
			}
		}
	}
	return false
}
