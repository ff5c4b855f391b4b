package iomigrate

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// materializeCompanies projects stg_companies into the companies table.
// The source-assigned identifier is preserved as the primary key; a
// missing or malformed identifier is fatal because every downstream
// entity joins on it.
func (m *migrator) materializeCompanies(ctx context.Context) error {
	pool := m.operator.Pool()

	q := `SELECT company_id, name, email, street, city, province, postal_code
FROM stg_companies`
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return MaterializeError("companies", err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		var id, name, email, street, city, province, postal *string
		err := rows.Scan(&id, &name, &email, &street, &city, &province, &postal)
		if err != nil {
			return MaterializeError("companies", err)
		}
		companyID, ok := parseID(id)
		if !ok {
			return MaterializeError("companies",
				fmt.Errorf("row %d: bad company identifier %q",
					len(out)+1, trimmed(id)))
		}
		out = append(out, []any{
			companyID,
			trimmed(name),
			textOrNil(email),
			m.addressID(street, city, province, postal),
		})
	}
	if err := rows.Err(); err != nil {
		return MaterializeError("companies", err)
	}
	rows.Close()

	cols := []string{"id", "name", "email", "address_id"}
	if err := m.insertRows(ctx, "companies", cols, out); err != nil {
		return MaterializeError("companies", err)
	}

	gn.Info("Stored <em>%s</em> companies", humanize.Comma(int64(len(out))))
	return nil
}

// materializeStores projects stg_stores. The company reference is
// required; the foreign key rejects values that do not resolve.
func (m *migrator) materializeStores(ctx context.Context) error {
	pool := m.operator.Pool()

	q := `SELECT store_id, company_id, name, street, city, province, postal_code
FROM stg_stores`
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return MaterializeError("stores", err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		var id, companyID, name, street, city, province, postal *string
		err := rows.Scan(&id, &companyID, &name, &street, &city, &province, &postal)
		if err != nil {
			return MaterializeError("stores", err)
		}
		storeID, ok := parseID(id)
		if !ok {
			return MaterializeError("stores",
				fmt.Errorf("row %d: bad store identifier %q",
					len(out)+1, trimmed(id)))
		}
		ownerID, ok := parseID(companyID)
		if !ok {
			return MaterializeError("stores",
				fmt.Errorf("store %d: bad company reference %q",
					storeID, trimmed(companyID)))
		}
		out = append(out, []any{
			storeID,
			ownerID,
			trimmed(name),
			m.addressID(street, city, province, postal),
		})
	}
	if err := rows.Err(); err != nil {
		return MaterializeError("stores", err)
	}
	rows.Close()

	cols := []string{"id", "company_id", "name", "address_id"}
	if err := m.insertRows(ctx, "stores", cols, out); err != nil {
		return MaterializeError("stores", err)
	}

	gn.Info("Stored <em>%s</em> stores", humanize.Comma(int64(len(out))))
	return nil
}

// materializeCaseModels projects the catalog. Width and depth pass
// through as text; PostgreSQL coerces them to numeric and computes the
// generated area columns from them.
func (m *migrator) materializeCaseModels(ctx context.Context) error {
	pool := m.operator.Pool()

	q := `SELECT case_model_id, name, width, depth, warehouse_area
FROM stg_case_models`
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return MaterializeError("case_models", err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		var id, name, width, depth, area *string
		if err := rows.Scan(&id, &name, &width, &depth, &area); err != nil {
			return MaterializeError("case_models", err)
		}
		modelID, ok := parseID(id)
		if !ok {
			return MaterializeError("case_models",
				fmt.Errorf("row %d: bad case model identifier %q",
					len(out)+1, trimmed(id)))
		}
		// a blank name would capture every inventory line whose model
		// field is empty, lines without a model must stay unlinked
		if trimmed(name) == "" {
			return MaterializeError("case_models",
				fmt.Errorf("case model %d has an empty name", modelID))
		}
		out = append(out, []any{
			modelID,
			trimmed(name),
			textOrNil(width),
			textOrNil(depth),
			numOrZero(area),
		})
	}
	if err := rows.Err(); err != nil {
		return MaterializeError("case_models", err)
	}
	rows.Close()

	cols := []string{"id", "name", "width", "depth", "declared_warehouse_area"}
	if err := m.insertRows(ctx, "case_models", cols, out); err != nil {
		return MaterializeError("case_models", err)
	}

	gn.Info("Stored <em>%s</em> case models", humanize.Comma(int64(len(out))))
	return nil
}

// numOrZero passes a numeric text value through, defaulting blanks to
// zero for columns read back into non-nullable Go types.
func numOrZero(s *string) string {
	if v := trimmed(s); v != "" {
		return v
	}
	return "0"
}
