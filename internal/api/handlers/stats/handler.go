package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/5w1tchy/password-meter/internal/api/apperr"
	"github.com/5w1tchy/password-meter/internal/validate"
)

const (
	DefaultDays = 7
	MaxDays     = 90

	cacheKeyPrefix = "pm:stats:"
	cacheOpTO      = 150 * time.Millisecond
)

type Handler struct {
	RDB      *redis.Client
	Sto      Store
	CacheTTL time.Duration

	now func() time.Time
}

func NewHandler(rdb *redis.Client, store Store, cacheTTL time.Duration) *Handler {
	return &Handler{RDB: rdb, Sto: store, CacheTTL: cacheTTL, now: time.Now}
}

// GET /v1/admin/stats?days=N
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.Sto == nil {
		apperr.WriteStatus(w, r, http.StatusServiceUnavailable, "Service Unavailable", "evaluation tallies are disabled")
		return
	}
	ctx := r.Context()
	days := validate.ClampInt(r.URL.Query().Get("days"), DefaultDays, MaxDays)
	key := cacheKeyPrefix + strconv.Itoa(days)

	if h.writeCached(ctx, w, key) {
		return
	}

	resp, err := h.fetch(ctx, days)
	if err != nil {
		apperr.HandleDBError(w, r, err, "Could not load stats")
		return
	}

	body, _ := json.Marshal(resp)
	h.cache(ctx, key, body)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) fetch(ctx context.Context, days int) (*StatsResponse, error) {
	today := h.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	daily, err := h.Sto.Daily(ctx, since)
	if err != nil {
		return nil, err
	}
	return Summarize(days, since, daily), nil
}

// Summarize folds per-day rows into a response with overall totals.
func Summarize(days int, since time.Time, daily []DayTotals) *StatsResponse {
	resp := &StatsResponse{Days: days, Since: since.Format(time.DateOnly), Daily: daily}
	if resp.Daily == nil {
		resp.Daily = []DayTotals{}
	}
	for _, d := range daily {
		resp.Totals.Weak += d.Weak
		resp.Totals.Moderate += d.Moderate
		resp.Totals.Strong += d.Strong
		resp.Totals.Total += d.Total
	}
	return resp
}

func (h *Handler) writeCached(ctx context.Context, w http.ResponseWriter, key string) bool {
	if h.RDB == nil || h.CacheTTL <= 0 {
		return false
	}
	cctx, cancel := context.WithTimeout(ctx, cacheOpTO)
	defer cancel()

	cached, err := h.RDB.Get(cctx, key).Result()
	if err != nil || cached == "" {
		if err != nil && err != redis.Nil {
			zap.L().Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(cached))
	return true
}

func (h *Handler) cache(ctx context.Context, key string, body []byte) {
	if h.RDB == nil || h.CacheTTL <= 0 {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, cacheOpTO)
	defer cancel()
	if err := h.RDB.SetEx(cctx, key, body, h.CacheTTL).Err(); err != nil {
		zap.L().Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}
