// Package requesttime pins one "now" per HTTP request. Every operation in a
// request shares the same timestamp, keeping validity windows and audit
// timestamps consistent.
package requesttime

import (
	"net/http"
	"time"

	"sichrplace/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and stores
// it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
