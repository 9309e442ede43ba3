package middlewares

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
	"slices"

	"github.com/5w1tchy/password-meter/internal/api/apperr"
)

// HPPOptions controls parameter-pollution filtering. Only whitelisted keys
// survive and each keeps its first value.
type HPPOptions struct {
	CheckQuery                  bool
	CheckBody                   bool
	CheckBodyOnlyForContentType string
	Whitelist                   []string
}

func HPP(opts HPPOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.CheckBody && r.Method == http.MethodPost && hasMediaType(r, opts.CheckBodyOnlyForContentType) {
				// a failed parse leaves Form set, so later ParseForm calls
				// would report success; reject here instead
				if err := r.ParseForm(); err != nil {
					var mbe *http.MaxBytesError
					if errors.As(err, &mbe) {
						apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large", "")
						return
					}
					apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "malformed form body")
					return
				}
				pruneValues(r.Form, opts.Whitelist)
				pruneValues(r.PostForm, opts.Whitelist)
			}
			if opts.CheckQuery && r.URL.RawQuery != "" {
				q := r.URL.Query()
				pruneValues(q, opts.Whitelist)
				r.URL.RawQuery = q.Encode()
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasMediaType(r *http.Request, want string) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == want
}

func pruneValues(v url.Values, whitelist []string) {
	for k, vals := range v {
		if !slices.Contains(whitelist, k) {
			delete(v, k)
			continue
		}
		if len(vals) > 1 {
			v[k] = vals[:1]
		}
	}
}

// DefaultHPPOptions covers the meter's own parameters.
func DefaultHPPOptions() HPPOptions {
	return HPPOptions{
		CheckQuery:                  true,
		CheckBody:                   true,
		CheckBodyOnlyForContentType: "application/x-www-form-urlencoded",
		Whitelist:                   []string{"password", "hash", "days"},
	}
}
