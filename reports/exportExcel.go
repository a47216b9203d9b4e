package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter is one row of a sheet.
type ExcelExporter interface {
	GetCellValues() []interface{}
}

// Sheet is a titled table ready to be written as xlsx.
type Sheet struct {
	Name     string
	Headings []string
	Rows     []ExcelExporter
}

func (s Sheet) build() (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := s.Name
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	// Add headers
	for i, h := range s.Headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}
	if len(s.Headings) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			f.Close()
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(s.Headings), 1)
		if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
			f.Close()
			return nil, err
		}
	}

	// Add data
	rowNo := 2
	for _, d := range s.Rows {
		for i, value := range d.GetCellValues() {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNo)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("row %d: %w", rowNo, err)
			}
		}
		rowNo++
	}
	return f, nil
}

// Write encodes the sheet as xlsx into w.
func (s Sheet) Write(w io.Writer) error {
	f, err := s.build()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func (s Sheet) SaveAs(filename string) error {
	f, err := s.build()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(filename)
}
