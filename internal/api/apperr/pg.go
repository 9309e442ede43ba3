package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// constraint name -> field reported to the client
var constraintField = map[string]string{
	"strength_daily_tally_pkey":        "day",
	"strength_daily_tally_label_check": "label",
	"strength_daily_tally_total_check": "total",
}

func fieldFor(pg *pgconn.PgError, def string) string {
	if f, ok := constraintField[pg.ConstraintName]; ok {
		return f
	}
	if pg.ColumnName != "" {
		return pg.ColumnName
	}
	return def
}

// FromPG maps a pgconn.PgError to a Problem. Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{Title: "Database error", Status: http.StatusInternalServerError}

	switch pg.Code {
	case "23505": // unique_violation
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.FieldErrors = []FieldError{{Field: fieldFor(pg, "resource"), Code: "unique", Message: "value already exists"}}
	case "23502": // not_null_violation
		p.Status, p.Title = http.StatusBadRequest, "Bad Request"
		p.FieldErrors = []FieldError{{Field: fieldFor(pg, "field"), Code: "not_null", Message: "required field is missing"}}
	case "23514": // check_violation
		p.Status, p.Title = http.StatusUnprocessableEntity, "Unprocessable Entity"
		p.FieldErrors = []FieldError{{Field: fieldFor(pg, "field"), Code: "check", Message: "constraint failed"}}
	case "22P02", "22007", "22008": // invalid text / datetime
		p.Status, p.Title = http.StatusBadRequest, "Bad Request"
		p.FieldErrors = []FieldError{{Field: fieldFor(pg, "day"), Code: "invalid", Message: "invalid format"}}
	case "40001", "40P01": // serialization_failure, deadlock_detected
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.Detail = "transaction conflict, please retry"
		p.Retryable = true
	case "57014": // query_canceled
		p.Status, p.Title = http.StatusServiceUnavailable, "Service Unavailable"
		p.Detail = strings.TrimSpace(pg.Message)
		p.Retryable = true
	}
	return p, true
}

// HandleDBError maps err to a Problem and writes it. Returns true if handled.
func HandleDBError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	zap.L().Error("database error", zap.String("path", r.URL.Path), zap.Error(err))
	if p, ok := FromPG(err); ok {
		Write(w, r, p)
		return true
	}
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
