package middlewares

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var gzipPool = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}

// Compression encodes responses with zstd or gzip, in that order of
// preference, when the client offers them. HEAD requests pass through.
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		var enc io.WriteCloser
		switch pickEncoding(r.Header.Get("Accept-Encoding")) {
		case "zstd":
			zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			enc = zw
			w.Header().Set("Content-Encoding", "zstd")
		case "gzip":
			gz := gzipPool.Get().(*gzip.Writer)
			gz.Reset(w)
			defer gzipPool.Put(gz)
			enc = gz
			w.Header().Set("Content-Encoding", "gzip")
		default:
			next.ServeHTTP(w, r)
			return
		}
		defer enc.Close()
		w.Header().Del("Content-Length")

		next.ServeHTTP(&compressWriter{ResponseWriter: w, w: enc}, r)
	})
}

func pickEncoding(accept string) string {
	var gz bool
	for _, part := range strings.Split(accept, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if refused(params) {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "zstd":
			return "zstd"
		case "gzip":
			gz = true
		}
	}
	if gz {
		return "gzip"
	}
	return ""
}

// refused reports a q value of zero; a malformed q counts as refused too.
func refused(params string) bool {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err != nil || q <= 0
	}
	return false
}

type compressWriter struct {
	http.ResponseWriter
	w io.Writer
}

func (c *compressWriter) Write(b []byte) (int, error) {
	return c.w.Write(b)
}

func (c *compressWriter) WriteHeader(code int) {
	c.Header().Del("Content-Length")
	c.ResponseWriter.WriteHeader(code)
}
