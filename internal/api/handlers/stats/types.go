package stats

import (
	"context"
	"time"
)

// ===== DTOs =====

// DayTotals holds evaluation counts for one UTC day.
type DayTotals struct {
	Day      string `json:"day"` // YYYY-MM-DD
	Weak     int64  `json:"weak"`
	Moderate int64  `json:"moderate"`
	Strong   int64  `json:"strong"`
	Total    int64  `json:"total"`
}

type StatsResponse struct {
	Days   int         `json:"days"`
	Since  string      `json:"since"`
	Totals DayTotals   `json:"totals"` // Day left empty
	Daily  []DayTotals `json:"daily"`
}

// ===== Store =====

type Store interface {
	Daily(ctx context.Context, since time.Time) ([]DayTotals, error)
}
