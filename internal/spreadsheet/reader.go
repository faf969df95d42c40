package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DefaultMaxRowBytes bounds a single CSV record.
const DefaultMaxRowBytes = 10_000

var (
	ErrMalformed     = errors.New("malformed_file")
	ErrRowTooLarge   = errors.New("row_too_large")
	ErrInvalidFormat = errors.New("invalid_format")
)

// Columns is the positional layout of a shipment feed.
var Columns = []string{
	"shipment_id",
	"customer_id",
	"origin",
	"destination",
	"weight",
	"volume",
	"carrier",
	"mode",
	"status",
	"arrival_date",
	"departure_date",
	"delivered_date",
}

// FormatFromFileName picks xlsx for .xlsx files and csv for anything else.
func FormatFromFileName(name string) Format {
	if strings.EqualFold(filepath.Ext(strings.TrimSpace(name)), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(FormatCSV):
		return FormatCSV, nil
	case string(FormatXLSX):
		return FormatXLSX, nil
	default:
		return "", ErrInvalidFormat
	}
}

// RowReader yields raw positional records. Next returns io.EOF after the
// last record.
type RowReader interface {
	Next() ([]string, error)
	Close() error
}

// NewRowReader opens r according to format.
func NewRowReader(r io.Reader, format Format) (RowReader, error) {
	switch format {
	case FormatXLSX:
		return NewXLSXReader(r)
	case FormatCSV, "":
		return NewCSVReader(r, DefaultMaxRowBytes), nil
	default:
		return nil, ErrInvalidFormat
	}
}

type csvReader struct {
	reader      *csv.Reader
	maxRowBytes int64
	offset      int64
	line        int
}

func NewCSVReader(r io.Reader, maxRowBytes int) RowReader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false
	return &csvReader{
		reader:      reader,
		maxRowBytes: int64(maxRowBytes),
	}
}

func (c *csvReader) Next() ([]string, error) {
	record, err := c.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	c.line++
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, c.line, err)
	}

	end := c.reader.InputOffset()
	size := end - c.offset
	c.offset = end
	if c.maxRowBytes > 0 && size > c.maxRowBytes {
		return nil, fmt.Errorf("%w: line %d: %w (%d bytes)", ErrMalformed, c.line, ErrRowTooLarge, size)
	}
	return record, nil
}

func (c *csvReader) Close() error {
	return nil
}

type xlsxReader struct {
	file *excelize.File
	rows *excelize.Rows
	line int
}

// NewXLSXReader streams the first sheet of a workbook.
func NewXLSXReader(r io.Reader) (RowReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %w", ErrMalformed, err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: no sheets found", ErrMalformed)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: read sheet: %w", ErrMalformed, err)
	}

	return &xlsxReader{file: f, rows: rows}, nil
}

func (x *xlsxReader) Next() ([]string, error) {
	for x.rows.Next() {
		x.line++
		cols, err := x.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, x.line, err)
		}
		if isBlank(cols) {
			continue
		}
		return cols, nil
	}
	if err := x.rows.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil, io.EOF
}

func (x *xlsxReader) Close() error {
	if x.rows != nil {
		_ = x.rows.Close()
	}
	return x.file.Close()
}

func isBlank(cols []string) bool {
	for _, col := range cols {
		if strings.TrimSpace(col) != "" {
			return false
		}
	}
	return true
}
