package utils

import "net/http"

type Middleware func(http.Handler) http.Handler

// ApplyMiddleware wraps h so that the last middleware listed runs first.
func ApplyMiddleware(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
