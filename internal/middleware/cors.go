// Package middleware provides the handler wrappers applied in front of the
// static file responder.
package middleware

import (
	"net/http"

	"github.com/f4ah6o/frontserve-go/internal/config"
)

// CORS returns a wrapper that sets the configured cross-origin headers on
// every response and answers preflight requests with 204.
//
// The headers are written before next runs, so they survive redirects and
// http.Error responses produced further down the chain.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", cfg.AllowOrigin)
			h.Set("Access-Control-Allow-Methods", cfg.AllowMethods)
			h.Set("Access-Control-Allow-Headers", cfg.AllowHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
