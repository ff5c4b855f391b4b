package iomigrate

import (
	"context"
	"fmt"
	"strings"
)

// postgres caps bind parameters per statement at 65535.
const maxParams = 65_000

// insertRows writes rows into table with batched multi-row INSERT
// statements. Duplicate-key violations surface as database errors;
// the pipeline treats them as fatal by design.
func (m *migrator) insertRows(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) error {
	if len(rows) == 0 {
		return nil
	}
	pool := m.operator.Pool()
	perRow := len(columns)
	batchSize := m.cfg.Database.BatchSize
	if batchSize*perRow > maxParams {
		batchSize = maxParams / perRow
	}

	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		batch := rows[start:end]

		var sb strings.Builder
		sb.WriteString("INSERT INTO ")
		sb.WriteString(table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(columns, ", "))
		sb.WriteString(") VALUES ")

		args := make([]any, 0, len(batch)*perRow)
		for i, row := range batch {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('(')
			for j := range row {
				if j > 0 {
					sb.WriteByte(',')
				}
				fmt.Fprintf(&sb, "$%d", len(args)+j+1)
			}
			sb.WriteByte(')')
			args = append(args, row...)
		}

		if _, err := pool.Exec(ctx, sb.String(), args...); err != nil {
			return err
		}
	}
	return nil
}
