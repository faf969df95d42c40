package spreadsheet

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Shipments"

var exportHeader = []string{
	"Shipment ID",
	"Customer ID",
	"Origin",
	"Destination",
	"Destination Name",
	"Weight (kg)",
	"Volume (m³)",
	"Carrier",
	"Mode",
	"Status",
	"Arrival Date",
	"Departure Date",
	"Delivered Date",
}

// ExportWriter renders shipments in display units.
type ExportWriter interface {
	Write(domain.Shipment) error
	Close() error
}

// ContentType returns the MIME type and file extension of format.
func ContentType(format Format) (string, string) {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	}
	return "text/csv", "csv"
}

func NewExportWriter(w io.Writer, format Format) (ExportWriter, error) {
	switch format {
	case FormatXLSX:
		return newXLSXExport(w)
	case FormatCSV, "":
		writer := csv.NewWriter(w)
		if err := writer.Write(exportHeader); err != nil {
			return nil, err
		}
		return &csvExport{writer: writer}, nil
	default:
		return nil, ErrInvalidFormat
	}
}

func exportRecord(s domain.Shipment) []string {
	return []string{
		strconv.FormatInt(s.ShipmentID, 10),
		strconv.FormatInt(s.CustomerID, 10),
		s.OriginOr(""),
		string(s.Destination),
		s.Destination.Name(),
		strconv.FormatFloat(domain.Kilograms(s.Weight), 'f', -1, 64),
		strconv.FormatFloat(domain.CubicMeters(s.Volume), 'f', -1, 64),
		string(s.Carrier),
		string(s.Mode),
		string(s.Status),
		s.ArrivalDate,
		s.Departure(),
		s.Delivered(),
	}
}

type csvExport struct {
	writer *csv.Writer
}

func (e *csvExport) Write(s domain.Shipment) error {
	return e.writer.Write(exportRecord(s))
}

func (e *csvExport) Close() error {
	e.writer.Flush()
	return e.writer.Error()
}

type xlsxExport struct {
	out    io.Writer
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
}

func newXLSXExport(w io.Writer) (*xlsxExport, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	stream, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := stream.SetColWidth(1, len(exportHeader), 16); err != nil {
		_ = f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, title := range exportHeader {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: title}
	}
	if err := stream.SetRow("A1", header); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &xlsxExport{out: w, file: f, stream: stream, row: 1}, nil
}

func (e *xlsxExport) Write(s domain.Shipment) error {
	e.row++
	cell, err := excelize.CoordinatesToCellName(1, e.row)
	if err != nil {
		return err
	}
	return e.stream.SetRow(cell, []interface{}{
		s.ShipmentID,
		s.CustomerID,
		s.OriginOr(""),
		string(s.Destination),
		s.Destination.Name(),
		domain.Kilograms(s.Weight),
		domain.CubicMeters(s.Volume),
		string(s.Carrier),
		string(s.Mode),
		string(s.Status),
		s.ArrivalDate,
		s.Departure(),
		s.Delivered(),
	})
}

func (e *xlsxExport) Close() error {
	defer e.file.Close()
	if err := e.stream.Flush(); err != nil {
		return err
	}
	return e.file.Write(e.out)
}
