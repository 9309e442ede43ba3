package middlewares

import (
	"net/http"
	"time"
)

// recorder tracks status/bytes and, when stamp is set, writes
// X-Response-Time right before the header goes out.
type recorder struct {
	http.ResponseWriter
	start       time.Time
	stamp       bool
	wroteHeader bool
	status      int
	bytes       int
}

func newRecorder(w http.ResponseWriter, stamp bool) *recorder {
	return &recorder{ResponseWriter: w, start: time.Now(), stamp: stamp, status: http.StatusOK}
}

func (w *recorder) header(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	if w.stamp {
		w.Header().Set("X-Response-Time", time.Since(w.start).String())
	}
}

func (w *recorder) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.header(code)
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(b []byte) (int, error) {
	w.header(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *recorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func ResponseTimeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newRecorder(w, true)
		next.ServeHTTP(rw, r)

		// If nothing was written (e.g., 204/HEAD), set it now.
		if !rw.wroteHeader {
			rw.Header().Set("X-Response-Time", time.Since(rw.start).String())
		}
	})
}
