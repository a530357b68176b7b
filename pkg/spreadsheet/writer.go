package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	minColumnWidth = 12
	maxColumnWidth = 40
)

// DocumentProperties are embedded into the generated workbook metadata.
type DocumentProperties struct {
	Title       string
	Subject     string
	Creator     string
	Description string
}

// Writer produces an xlsx sheet row by row through the excelize stream
// writer, which keeps memory flat for large exports. Rows must be appended
// in order; the header row is written on creation.
type Writer struct {
	file    *excelize.File
	stream  *excelize.StreamWriter
	columns int
	next    int
}

// NewWriter creates a single-sheet workbook with a styled header row.
// Column widths are sized from the header text; the stream writer requires
// widths to be set before any row is written.
func NewWriter(sheet string, headers []string, props DocumentProperties) (*Writer, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       props.Title,
		Subject:     props.Subject,
		Creator:     props.Creator,
		Description: props.Description,
	}); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}

	stream, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}

	for i, header := range headers {
		if err := stream.SetColWidth(i+1, i+1, headerWidth(header)); err != nil {
			return nil, err
		}
	}

	headerRow := make([]any, len(headers))
	for i, header := range headers {
		headerRow[i] = excelize.Cell{StyleID: headerStyle, Value: header}
	}
	if err := stream.SetRow("A1", headerRow); err != nil {
		return nil, err
	}

	return &Writer{file: f, stream: stream, columns: len(headers), next: 2}, nil
}

// Append writes one data row. Values beyond the header width are dropped.
func (w *Writer) Append(values []any) error {
	if len(values) > w.columns {
		values = values[:w.columns]
	}
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		return err
	}
	if err := w.stream.SetRow(cell, values); err != nil {
		return err
	}
	w.next++
	return nil
}

// AppendStrings writes one data row of string cells.
func (w *Writer) AppendStrings(values []string) error {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return w.Append(row)
}

// SaveAs flushes the stream and writes the workbook to the given path.
func (w *Writer) SaveAs(path string) error {
	if err := w.stream.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	defer w.file.Close()
	return w.file.SaveAs(path)
}

// WriteTo flushes the stream and writes the workbook to the given writer.
func (w *Writer) WriteTo(out io.Writer) error {
	if err := w.stream.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	defer w.file.Close()
	return w.file.Write(out)
}

func headerWidth(header string) float64 {
	width := len(header) + 5
	if width < minColumnWidth {
		width = minColumnWidth
	}
	if width > maxColumnWidth {
		width = maxColumnWidth
	}
	return float64(width)
}
