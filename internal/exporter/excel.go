package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/javipalanca/burrocracia/internal/model"
)

// ExcelExporter renders the solved sheet as an XLSX workbook with a
// per-row totals column, for review before the CSV is sent off.
type ExcelExporter struct{}

// NewExcelExporter creates an Excel exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export builds the workbook. The caller owns saving or streaming it.
func (e *ExcelExporter) Export(ts *model.Timesheet) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Horas"
	f.SetSheetName("Sheet1", sheetName)

	headers := make([]string, 0, len(model.ColumnHeaders)+1+len(ts.DayLabels))
	headers = append(headers, model.ColumnHeaders...)
	headers = append(headers, "Horas Totales")
	headers = append(headers, ts.DayLabels...)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheetName, 1, 1, headerStyle)

	for i, r := range ts.Rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.DNI)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.SpecificKey)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Project)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.ActivityCode)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Activity)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.WorkPackage)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.Total())

		for j, label := range ts.DayLabels {
			cell, _ := excelize.CoordinatesToCellName(9+j, row)
			if v := r.Hours[label]; v != 0 {
				f.SetCellValue(sheetName, cell, v)
			}
		}
	}

	f.SetColWidth(sheetName, "B", "B", 25)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "F", "F", 25)

	return f, nil
}
