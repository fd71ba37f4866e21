// Package xlsx exports employee rows as a spreadsheet.
package xlsx

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

// SheetName is the worksheet holding the rows.
const SheetName = "Employees"

// ContentType is the MIME type of the written workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Write renders a header row followed by one row per employee, numbered from
// 1, and writes the workbook to w.
func Write(w io.Writer, employees []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	header := []any{"#", "ID"}
	for _, name := range domain.EditableFields {
		header = append(header, domain.FieldLabels[name])
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "write header")
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0F2FE"}},
	})
	if err != nil {
		return errors.Wrap(err, "create header style")
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return errors.Wrap(err, "header range")
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return errors.Wrap(err, "style header")
	}

	for i, e := range employees {
		row := []any{i + 1, e.ID.String()}
		for _, name := range domain.EditableFields {
			row = append(row, e.Field(name))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "row coordinates")
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d", i+1)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "I", 18); err != nil {
		return errors.Wrap(err, "set column width")
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.Wrap(err, "freeze header")
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

// Filename is the download name for an export.
func Filename() string { return "employees.xlsx" }
