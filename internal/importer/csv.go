// Package importer reads uploaded CSV and Excel files into raw tables for
// the ingestion normalizer. Reading stops at the structural level: cells
// come back as strings and all cleanup happens downstream.
package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"

	"barpulse/pkg/contracts/domain"
)

// ReadCSV parses comma-delimited UTF-8 text with a required header row.
// A UTF-8 BOM is tolerated, and ragged rows are padded to the header width
// rather than rejected. A stream that cannot be read as a table at all
// yields a domain.FormatError.
func ReadCSV(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewFormatError("file is empty", nil)
	}
	if err != nil {
		return nil, domain.NewFormatError("could not read header row", err)
	}

	table := &domain.Table{Header: header}
	line := 1
	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Best-effort import: a mangled line is skipped, not fatal.
			slog.Warn("skipping unreadable CSV line",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		table.Records = append(table.Records, padRecord(record, len(header)))
	}
	return table, nil
}

// padRecord pads or truncates a record to the header width.
func padRecord(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	if len(record) > width {
		return record[:width]
	}
	out := make([]string, width)
	copy(out, record)
	return out
}

// skipBOM strips a leading UTF-8 byte order mark, common in spreadsheet
// exports saved on Windows.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peeked, err := br.Peek(3)
	if err == nil && peeked[0] == 0xEF && peeked[1] == 0xBB && peeked[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
