package ioweb

import (
	"log/slog"
	"net/http"
	"time"
)

// customer is the API projection of a company row.
type customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: "whdb-api",
	})
}

// handleCustomers returns the most recently migrated companies,
// newest first, capped at 200 rows.
func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	q := `SELECT id, name, email, created_at FROM companies
ORDER BY created_at DESC, id DESC LIMIT 200`

	rows, err := s.operator.Pool().Query(r.Context(), q)
	if err != nil {
		slog.Error("Cannot query companies", "error", err)
		writeJSON(w, http.StatusInternalServerError,
			errorResponse{Error: "database query failed"})
		return
	}
	defer rows.Close()

	customers := []customer{}
	for rows.Next() {
		var c customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
			slog.Error("Cannot scan company row", "error", err)
			writeJSON(w, http.StatusInternalServerError,
				errorResponse{Error: "database scan failed"})
			return
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("Cannot read company rows", "error", err)
		writeJSON(w, http.StatusInternalServerError,
			errorResponse{Error: "database read failed"})
		return
	}

	writeJSON(w, http.StatusOK, customers)
}
