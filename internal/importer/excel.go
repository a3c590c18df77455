package importer

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"barpulse/pkg/contracts/domain"
)

// ReadXLSX reads the first sheet of an Excel workbook as a table: first
// row is the header, remaining rows are data, every cell as displayed
// text. Workbooks that cannot be opened or have no usable sheet yield a
// domain.FormatError.
func ReadXLSX(r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewFormatError("could not open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewFormatError("workbook has no sheets", nil)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, domain.NewFormatError("could not read sheet", err)
	}
	if len(rows) == 0 {
		return nil, domain.NewFormatError("sheet is empty", nil)
	}

	slog.Debug("reading workbook sheet",
		slog.String("sheet", sheet),
		slog.Int("rows", len(rows)))

	header := rows[0]
	table := &domain.Table{Header: header}
	for _, row := range rows[1:] {
		if blankRecord(row) {
			continue
		}
		table.Records = append(table.Records, padRecord(row, len(header)))
	}
	return table, nil
}

// ReadTable dispatches on the uploaded filename's extension. Anything that
// is not .xlsx is treated as CSV, matching the upload form's accept list.
func ReadTable(filename string, r io.Reader) (*domain.Table, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return ReadXLSX(r)
	}
	return ReadCSV(r)
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
