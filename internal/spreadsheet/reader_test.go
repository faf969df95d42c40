package spreadsheet

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readAll(t *testing.T, r RowReader) [][]string {
	t.Helper()
	var out [][]string
	for {
		row, err := r.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, row)
	}
}

func TestCSVReaderPositional(t *testing.T) {
	input := "1,2,Miami,GUY,5000,2000000,FEDEX,air,received,2024-01-01\n" +
		"shipment_id,customer_id\n"
	rows := readAll(t, NewCSVReader(strings.NewReader(input), DefaultMaxRowBytes))

	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 10)
	assert.Equal(t, "GUY", rows[0][3])
	assert.Equal(t, []string{"shipment_id", "customer_id"}, rows[1])
}

func TestCSVReaderRowTooLarge(t *testing.T) {
	input := "1,2,Miami\n" + "2," + strings.Repeat("x", 200) + "\n"
	r := NewCSVReader(strings.NewReader(input), 64)

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, ErrRowTooLarge)
}

func TestXLSXReaderSkipsBlankRows(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"1", "2", "Miami", "GUY"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2", "3", "Tampa", "BIM"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	r, err := NewRowReader(&buf, FormatXLSX)
	require.NoError(t, err)
	defer r.Close()

	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tampa", rows[1][2])
}

func TestXLSXReaderRejectsGarbage(t *testing.T) {
	_, err := NewXLSXReader(strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, FormatXLSX, FormatFromFileName("feed.XLSX"))
	assert.Equal(t, FormatCSV, FormatFromFileName("feed.txt"))

	format, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTemplateRoundTripsThroughReader(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatXLSX} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteTemplate(&buf, format))

			r, err := NewRowReader(&buf, format)
			require.NoError(t, err)
			defer r.Close()

			rows := readAll(t, r)
			require.Len(t, rows, 1)
			assert.Equal(t, "1001", rows[0][0])
			assert.Equal(t, "FEDEX", rows[0][6])
		})
	}
}

func TestCSVExportUsesDisplayUnits(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewExportWriter(&buf, FormatCSV)
	require.NoError(t, err)

	departure := "2024-01-05"
	require.NoError(t, w.Write(domain.Shipment{
		ShipmentID:    7,
		CustomerID:    8,
		Destination:   domain.DestinationSLU,
		Weight:        5000,
		Volume:        2_000_000,
		Carrier:       domain.CarrierDHL,
		Mode:          domain.ModeSea,
		Status:        domain.StatusInTransit,
		ArrivalDate:   "2024-01-02",
		DepartureDate: &departure,
	}))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "7,8,,SLU,Saint Lucia,5,2,DHL,sea,intransit,2024-01-02,2024-01-05,", lines[1])
}

func TestXLSXExport(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewExportWriter(&buf, FormatXLSX)
	require.NoError(t, err)
	require.NoError(t, w.Write(domain.Shipment{ShipmentID: 1, CustomerID: 2, Destination: domain.DestinationGUY, Weight: 1500}))
	require.NoError(t, w.Close())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(exportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Shipment ID", header)

	weight, err := f.GetCellValue(exportSheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "1.5", weight)
}
