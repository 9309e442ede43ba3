package maintenance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/5w1tchy/password-meter/internal/api/handlers/stats"
	"github.com/5w1tchy/password-meter/internal/validate"
)

// TallyStore is the slice of the tally store the retention job needs.
type TallyStore interface {
	Daily(ctx context.Context, since time.Time) ([]stats.DayTotals, error)
	Prune(ctx context.Context, now time.Time, keepDays int) (int64, error)
}

// Exporter receives the daily snapshot. Nil disables export.
type Exporter interface {
	PutJSON(ctx context.Context, key string, body []byte) error
}

const runTO = 30 * time.Second

// SnapshotKey is the object key for the snapshot taken on day.
func SnapshotKey(day time.Time) string {
	return "tally/" + day.UTC().Format(time.DateOnly) + ".json"
}

// RunTallyRetention prunes rows older than keepDays, then exports what is left.
func RunTallyRetention(ctx context.Context, sto TallyStore, exp Exporter, keepDays int, now time.Time) error {
	n, err := sto.Prune(ctx, now, keepDays)
	if err != nil {
		return fmt.Errorf("prune tallies: %w", err)
	}
	zap.L().Info("tally retention pruned", zap.Int64("rows", n), zap.Int("keep_days", keepDays))

	if exp == nil {
		return nil
	}
	today := now.UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(keepDays - 1))
	daily, err := sto.Daily(ctx, since)
	if err != nil {
		return fmt.Errorf("load tallies: %w", err)
	}
	body, err := json.Marshal(stats.Summarize(keepDays, since, daily))
	if err != nil {
		return err
	}
	key := SnapshotKey(today)
	if err := exp.PutJSON(ctx, key, body); err != nil {
		return err
	}
	zap.L().Info("tally snapshot exported", zap.String("key", key), zap.Int("days", len(daily)))
	return nil
}

// StartTallyRetention runs RunTallyRetention daily at localTime ("HH:MM") in tzName
// until ctx is cancelled. Call once at startup.
func StartTallyRetention(ctx context.Context, sto TallyStore, exp Exporter, keepDays int, localTime, tzName string) {
	if keepDays <= 0 {
		keepDays = 90
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
	}
	h, m, err := validate.ParseClock(localTime)
	if err != nil {
		h, m = 3, 0
	}

	go func() {
		for {
			next := NextRun(time.Now().In(loc), h, m)
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				rctx, cancel := context.WithTimeout(ctx, runTO)
				if err := RunTallyRetention(rctx, sto, exp, keepDays, time.Now()); err != nil {
					zap.L().Error("tally retention failed", zap.Error(err))
				}
				cancel()
			}
		}
	}()
}

// NextRun returns the first h:m strictly after now, in now's location.
func NextRun(now time.Time, h, m int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
