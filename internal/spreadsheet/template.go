package spreadsheet

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Shipments"

// sampleRow documents the expected units: grams and cubic centimeters.
var sampleRow = []string{
	"1001",
	"501",
	"Miami",
	"GUY",
	"5000",
	"2000000",
	"FEDEX",
	"air",
	"intransit",
	"2024-01-02",
	"2024-01-05",
	"",
}

// WriteTemplate writes an upload template. Feeds carry no header row, so
// the template holds a single sample row; xlsx cells name their column in a
// comment.
func WriteTemplate(w io.Writer, format Format) error {
	switch format {
	case FormatXLSX:
		return writeXLSXTemplate(w)
	case FormatCSV, "":
		writer := csv.NewWriter(w)
		if err := writer.Write(sampleRow); err != nil {
			return err
		}
		writer.Flush()
		return writer.Error()
	default:
		return ErrInvalidFormat
	}
}

func writeXLSXTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return err
	}

	for i, value := range sampleRow {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(templateSheet, cell, value); err != nil {
			return err
		}
		if err := f.AddComment(templateSheet, excelize.Comment{
			Cell:   cell,
			Author: "shipping-management",
			Text:   Columns[i],
		}); err != nil {
			return err
		}

		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(templateSheet, colName, colName, 16); err != nil {
			return err
		}
	}

	return f.Write(w)
}
