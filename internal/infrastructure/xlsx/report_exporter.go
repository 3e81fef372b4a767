// Package xlsx exporta el reporte de gasto por categoría como libro de Excel.
package xlsx

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/apskaita-api/internal/application/reporting"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
)

// SheetName hoja donde se escribe el reporte.
const SheetName = "Categories"

var _ reporting.Exporter = (*ReportExporter)(nil)

// ReportExporter implementa reporting.Exporter con excelize.
type ReportExporter struct{}

// NewReportExporter construye el exportador.
func NewReportExporter() *ReportExporter { return &ReportExporter{} }

// CategoryReport escribe una fila por categoría y una fila final con el total del período.
// Los montos se escriben como texto decimal para no pasar por float.
func (e *ReportExporter) CategoryReport(period entity.DateRange, rows []entity.CategorySpend, total decimal.Decimal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(SheetName, cell, v)
	}

	write(1, 1, "Period")
	write(2, 1, entity.FormatDate(period.From))
	write(3, 1, entity.FormatDate(period.To))

	headers := []string{"Category", "Items", "Total"}
	for i, h := range headers {
		write(i+1, 3, h)
	}
	_ = f.SetCellStyle(SheetName, "A3", "C3", bold)

	row := 4
	for _, r := range rows {
		write(1, row, r.CategoryName)
		write(2, row, r.Count)
		write(3, row, r.Total.StringFixed(2))
		row++
	}

	write(1, row, "Total")
	write(3, row, total.StringFixed(2))
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(3, row)
	_ = f.SetCellStyle(SheetName, first, last, bold)

	_ = f.SetColWidth(SheetName, "A", "A", 28)
	_ = f.SetColWidth(SheetName, "B", "C", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
