package middlewares

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"regexp"
)

const HeaderRequestID = "X-Request-ID"

type ctxKey int

const ctxKeyRequestID ctxKey = iota

// Accepted inbound IDs; anything else is replaced so logs stay greppable.
var validRID = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)

// RequestID tags the request and response with an ID, reusing the caller's
// when it looks sane.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderRequestID)
		if !validRID.MatchString(rid) {
			rid = newRID()
		}
		r = r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, rid))
		// apperr reads it back off the request header
		r.Header.Set(HeaderRequestID, rid)
		w.Header().Set(HeaderRequestID, rid)

		next.ServeHTTP(w, r)
	})
}

// GetRequestID returns the ID set by RequestID, or "" outside that middleware.
func GetRequestID(r *http.Request) string {
	v, _ := r.Context().Value(ctxKeyRequestID).(string)
	return v
}

func newRID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return "pm-" + hex.EncodeToString(b[:])
}
