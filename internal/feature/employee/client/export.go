package client

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"employee_directory/internal/feature/employee/transport/http/dto"
)

// exportHeader is the header row of both export formats. Column visibility
// never changes it.
var exportHeader = []string{"Name", "Email", "Position", "Created At"}

const xlsxSheet = "Employees"

// ExportFilename returns employees_YYYY-MM-DD.<ext> for the UTC date of now.
func ExportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("employees_%s.%s", now.UTC().Format(time.DateOnly), ext)
}

// ExportCSV writes the current view as CSV. Every data field is quoted and
// embedded quotes are doubled. It makes no network call.
func (d *Directory) ExportCSV(w io.Writer) error {
	lines := []string{strings.Join(exportHeader, ",")}
	for _, e := range d.View() {
		row := exportRow(e)
		for i, v := range row {
			row[i] = quoteCSV(v)
		}
		lines = append(lines, strings.Join(row, ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// ExportXLSX writes the current view as a single-sheet workbook.
func (d *Directory) ExportXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetColWidth(xlsxSheet, "A", "D", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, e := range d.View() {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(e)
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func exportRow(e dto.Employee) []string {
	return []string{e.Name, e.Email, e.Position, e.CreatedAt.UTC().Format(time.RFC3339)}
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
