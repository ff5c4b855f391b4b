package iomigrate

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

const addrStagingQuery = `
SELECT street, city, province, postal_code FROM stg_companies
UNION ALL
SELECT street, city, province, postal_code FROM stg_stores
`

const addrUpsertQuery = `
INSERT INTO addresses (street, city, province, postal_code)
  VALUES ($1, $2, $3, $4)
  ON CONFLICT (street, city, province, postal_code)
  DO UPDATE SET street = EXCLUDED.street
  RETURNING id
`

// dedupAddresses collapses the address components embedded in the
// company and store staging rows into distinct address rows, and
// builds the in-memory key-to-id map every later step resolves
// against. Incomplete tuples are discarded, not stored partially.
func (m *migrator) dedupAddresses(ctx context.Context) error {
	pool := m.operator.Pool()

	rows, err := pool.Query(ctx, addrStagingQuery)
	if err != nil {
		return DedupError(err)
	}
	defer rows.Close()

	var keys []addrKey
	seen := make(map[addrKey]struct{})
	var total, discarded int
	for rows.Next() {
		var street, city, province, postal *string
		if err := rows.Scan(&street, &city, &province, &postal); err != nil {
			return DedupError(err)
		}
		total++
		key, ok := normalizeAddr(street, city, province, postal)
		if !ok {
			discarded++
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return DedupError(err)
	}
	rows.Close()

	for _, key := range keys {
		var id int64
		err := pool.QueryRow(ctx, addrUpsertQuery,
			key.street, key.city, key.province, key.postalCode,
		).Scan(&id)
		if err != nil {
			return DedupError(err)
		}
		m.addrLookup[key] = id
	}

	slog.Info("Deduplicated addresses",
		"source_tuples", total,
		"distinct", len(m.addrLookup),
		"discarded", discarded,
	)
	if discarded > 0 {
		slog.Warn("Discarded incomplete address tuples", "count", discarded)
	}
	gn.Info("Stored <em>%s</em> distinct addresses",
		humanize.Comma(int64(len(m.addrLookup))))

	return nil
}

// addressID resolves raw staging components to a stored address id, or
// nil when the tuple is incomplete or unknown.
func (m *migrator) addressID(street, city, province, postal *string) *int64 {
	key, ok := normalizeAddr(street, city, province, postal)
	if !ok {
		return nil
	}
	id, ok := m.addrLookup[key]
	if !ok {
		return nil
	}
	return &id
}
