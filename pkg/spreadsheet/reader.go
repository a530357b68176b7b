package spreadsheet

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one data row of a sheet, keyed by the header text of each column.
// Line is the 1-based sheet line the row came from, for error reporting.
type Row struct {
	Line  int
	Cells map[string]string
}

// Get returns the trimmed cell value under the given header, or the empty
// string when the column is absent.
func (r Row) Get(header string) string {
	return r.Cells[header]
}

// ReadFile reads the first sheet of an xlsx file into header-keyed rows.
func ReadFile(path string) ([]string, []Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return readSheet(f)
}

// Read reads the first sheet of an xlsx stream into header-keyed rows.
func Read(r io.Reader) ([]string, []Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return readSheet(f)
}

func readSheet(f *excelize.File) ([]string, []Row, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, nil
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 {
		return nil, nil, nil
	}

	headers := make([]string, 0, len(raw[0]))
	for _, h := range raw[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	var rows []Row
	for i, cells := range raw[1:] {
		row := Row{Line: i + 2, Cells: make(map[string]string, len(headers))}
		empty := true
		for col, header := range headers {
			if header == "" {
				continue
			}
			var value string
			if col < len(cells) {
				value = strings.TrimSpace(cells[col])
			}
			if value != "" {
				empty = false
			}
			row.Cells[header] = value
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
