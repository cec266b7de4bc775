package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sample inputs shared by pipeline, CLI and viewer tests. Lines are
// deliberately unsorted.
var (
	SampleRosterLines = []string{
		"S003, Carol Diaz",
		"S001, Ann Lee",
		"S002, Bob Stone",
	}

	SampleScoreLines = []string{
		"S002, CS101, 80, 90, 70, 85",
		"S001, CS101, 60, 60, 60, 60",
		"S009, CS101, 50, 50, 50, 50",
		"S001, MA201, 100, 100, 100, 100",
		"S003, CS101, 75, 80, 85, 90",
	}

	// SampleReport is the canonical text report for the two inputs above.
	SampleReport = "Student ID, Student Name, Course Code, Final Grade\n" +
		"S001, Ann Lee, CS101, 60.0\n" +
		"S001, Ann Lee, MA201, 100.0\n" +
		"S002, Bob Stone, CS101, 82.0\n" +
		"S003, Carol Diaz, CS101, 84.0\n"

	// SampleUnresolvedID is the score id absent from the roster.
	SampleUnresolvedID = "S009"
)

// SampleInputs holds paths to fixture files in a temp directory.
type SampleInputs struct {
	Dir        string
	RosterPath string
	ScoresPath string
	OutputPath string
}

// WriteLines writes lines joined by newlines to dir/name and returns the path.
func WriteLines(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// WriteSampleInputs writes the sample roster and score files into a fresh
// temp directory. OutputPath points at a file that does not exist yet.
func WriteSampleInputs(t *testing.T) SampleInputs {
	t.Helper()
	return WriteInputs(t, SampleRosterLines, SampleScoreLines)
}

// WriteInputs is WriteSampleInputs with caller supplied lines.
func WriteInputs(t *testing.T, roster, scores []string) SampleInputs {
	t.Helper()
	dir := t.TempDir()
	return SampleInputs{
		Dir:        dir,
		RosterPath: WriteLines(t, dir, "NameFile.txt", roster),
		ScoresPath: WriteLines(t, dir, "CourseFile.txt", scores),
		OutputPath: filepath.Join(dir, "FinalGrades.txt"),
	}
}

// ReadFile returns the file content or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// WriteWorkbook saves rows as the first sheet of a new xlsx file at path.
func WriteWorkbook(t *testing.T, path string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("bad cell for row %d: %v", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			t.Fatalf("failed to write row %d: %v", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook %s: %v", path, err)
	}
}
