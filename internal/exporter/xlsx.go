package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gradecli/pkg/contracts/domain"
)

// SheetName is the worksheet XLSXWriter fills.
const SheetName = "Final Grades"

const gradeNumFmt = "0.0"

// XLSXWriter writes the report as a workbook with one sheet. Grades are
// numeric cells shown with one decimal place.
type XLSXWriter struct{}

func (XLSXWriter) Write(w io.Writer, rows []domain.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.StudentID, row.StudentName, row.CourseCode, row.FinalGrade}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := styleSheet(f, len(rows)); err != nil {
		return err
	}

	return f.Write(w)
}

func styleSheet(f *excelize.File, rowCount int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", bold); err != nil {
		return err
	}

	if rowCount > 0 {
		numFmt := gradeNumFmt
		grade, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, "D2", fmt.Sprintf("D%d", rowCount+1), grade); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetName, "A", "D", 18)
}
