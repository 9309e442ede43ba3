package router

import (
	"net/http"

	"go.uber.org/zap"

	mw "github.com/5w1tchy/password-meter/internal/api/middlewares"
	"github.com/5w1tchy/password-meter/pkg/utils"
)

type ChainConfig struct {
	MaxBodySize    int64
	AllowedOrigins []string
	StrictSecurity bool
	Log            *zap.Logger
}

// Secure wraps api in the server middleware chain. ApplyMiddleware makes the
// last entry outermost, so BodySizeLimit must come after HPP: HPP parses
// form bodies and has to see the capped reader.
func Secure(api http.Handler, c ChainConfig) http.Handler {
	return utils.ApplyMiddleware(
		api,
		mw.HPP(mw.DefaultHPPOptions()),
		mw.BodySizeLimit(c.MaxBodySize),
		mw.Compression,
		mw.Cors(c.AllowedOrigins),
		mw.ResponseTimeMiddleware,
		mw.SecurityHeaders(c.StrictSecurity),
		mw.AccessLog(c.Log),
		mw.Recovery,
		mw.RequestID,
	)
}
