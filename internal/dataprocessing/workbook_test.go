package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "gradecli/internal/errors"
)

// buildWorkbook writes rows into the given sheet of a new workbook.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != f.GetSheetName(0) {
		// Keep an empty first sheet so the reader has to skip it.
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbookLines(t *testing.T) {
	path := buildWorkbook(t, "Scores", [][]interface{}{
		{"S1", "CS101", 80, 90, 70, 85},
		{},
		{"S2", "CS101", 60, 60, 60, 60},
	})

	lines, err := ReadWorkbookLines(path)
	require.NoError(t, err)

	require.Len(t, lines, 3)
	assert.Equal(t, "S1,CS101,80,90,70,85", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "S2,CS101,60,60,60,60", lines[2])
}

func TestOpenInputWorkbookFeedsParsers(t *testing.T) {
	path := buildWorkbook(t, "Sheet1", [][]interface{}{
		{"S1", "Alice"},
		{"S2", "Bob"},
	})

	in, err := OpenInput(path)
	require.NoError(t, err)
	defer in.Close()

	res, err := ParseRoster(in)
	require.NoError(t, err)
	assert.Equal(t, "Bob", res.Roster["S2"].Name)
}

func TestOpenInputMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "NameFile.txt")
	_, err := OpenInput(path)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindIO, apperrors.KindOf(err))
}

func TestOpenInputBrokenWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := OpenInput(path)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindIO, apperrors.KindOf(err))
}
