package tallystore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/5w1tchy/password-meter/internal/api/handlers/stats"
	"github.com/5w1tchy/password-meter/internal/metrics/tally"
	"github.com/5w1tchy/password-meter/internal/store/dbx"
)

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

const schemaSQL = `
CREATE TABLE IF NOT EXISTS strength_daily_tally (
  day   date   NOT NULL,
  label text   NOT NULL CONSTRAINT strength_daily_tally_label_check CHECK (label IN ('Weak','Moderate','Strong')),
  total bigint NOT NULL DEFAULT 0 CONSTRAINT strength_daily_tally_total_check CHECK (total >= 0),
  CONSTRAINT strength_daily_tally_pkey PRIMARY KEY (day, label)
)`

// EnsureSchema creates the tally table if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("tally schema: %w", err)
	}
	return nil
}

const upsertTmpl = `INSERT INTO strength_daily_tally (day, label, total) VALUES %s
ON CONFLICT (day, label) DO UPDATE SET total = strength_daily_tally.total + EXCLUDED.total`

// AddBatch adds counts to their (day, label) rows in one statement.
func (s *Store) AddBatch(ctx context.Context, counts []tally.Count) error {
	return addBatch(ctx, s.db, counts)
}

func addBatch(ctx context.Context, e dbx.Execer, counts []tally.Count) error {
	if len(counts) == 0 {
		return nil
	}
	args := make([]any, 0, len(counts)*3)
	for _, c := range counts {
		args = append(args, c.Day.Format(time.DateOnly), c.Label, c.N)
	}
	_, err := e.ExecContext(ctx, fmt.Sprintf(upsertTmpl, dbx.Placeholders(len(counts), 3)), args...)
	return err
}

// Daily returns one row per day since `since` (inclusive), newest first.
// Days without evaluations are omitted.
func (s *Store) Daily(ctx context.Context, since time.Time) ([]stats.DayTotals, error) {
	const q = `
SELECT to_char(day, 'YYYY-MM-DD'),
       COALESCE(SUM(total) FILTER (WHERE label = 'Weak'), 0),
       COALESCE(SUM(total) FILTER (WHERE label = 'Moderate'), 0),
       COALESCE(SUM(total) FILTER (WHERE label = 'Strong'), 0)
FROM strength_daily_tally
WHERE day >= $1
GROUP BY day
ORDER BY day DESC`

	rows, err := s.db.QueryContext(ctx, q, since.Format(time.DateOnly))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]stats.DayTotals, 0, 8)
	for rows.Next() {
		var d stats.DayTotals
		if err := rows.Scan(&d.Day, &d.Weak, &d.Moderate, &d.Strong); err != nil {
			return nil, err
		}
		d.Total = d.Weak + d.Moderate + d.Strong
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Prune deletes rows older than keepDays relative to now and reports how many went.
func (s *Store) Prune(ctx context.Context, now time.Time, keepDays int) (int64, error) {
	const q = `DELETE FROM strength_daily_tally WHERE day < $1`
	cutoff := now.UTC().AddDate(0, 0, -keepDays)
	res, err := s.db.ExecContext(ctx, q, cutoff.Format(time.DateOnly))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
