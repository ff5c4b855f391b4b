package ioload

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// readCSV reads one delimiter-separated export file. The header row is
// skipped; columns are positional in the source's declared order.
// Records with the wrong field count are logged and skipped, matching
// the tolerance of the desktop export this mirrors.
func readCSV(dir string, src source) ([][]*string, error) {
	path := filepath.Join(dir, src.csvFile)

	file, err := os.Open(path)
	if err != nil {
		return nil, SourceNotFoundError(src.table, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, CSVReadError(path, err)
	}

	var records [][]*string
	skipped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, CSVReadError(path, err)
		}

		if len(record) != len(src.columns) {
			skipped++
			continue
		}

		records = append(records, coerceRecord(record))
	}

	if skipped > 0 {
		slog.Warn("Skipped malformed records",
			"file", src.csvFile,
			"skipped", skipped,
		)
	}

	return records, nil
}

// coerceRecord converts CSV fields to nullable staging values: an empty
// field becomes NULL, everything else stays verbatim text.
func coerceRecord(record []string) []*string {
	res := make([]*string, len(record))
	for i, v := range record {
		if strings.TrimSpace(v) == "" {
			continue
		}
		res[i] = &record[i]
	}
	return res
}
