package ioload

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// readSQLite reads one export table from a SQLite rendition of the
// legacy desktop database. Column names in the SQLite file match the
// staging column names.
func readSQLite(path string, src source) ([][]*string, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, SQLiteReadError(path, err)
	}
	defer sqlDB.Close()

	query := fmt.Sprintf(
		"SELECT %s FROM %s",
		strings.Join(src.columns, ", "),
		src.sqlite,
	)

	rows, err := sqlDB.Query(query)
	if err != nil {
		return nil, SQLiteReadError(path, err)
	}
	defer rows.Close()

	var records [][]*string

	for rows.Next() {
		scanned := make([]sql.NullString, len(src.columns))
		dest := make([]any, len(src.columns))
		for i := range scanned {
			dest[i] = &scanned[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, SQLiteReadError(path, err)
		}

		rec := make([]*string, len(src.columns))
		for i, v := range scanned {
			if v.Valid && strings.TrimSpace(v.String) != "" {
				s := v.String
				rec[i] = &s
			}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, SQLiteReadError(path, err)
	}

	return records, nil
}
