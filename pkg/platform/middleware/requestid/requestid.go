// Package requestid assigns each request an identifier for log correlation.
// An inbound X-Request-ID is honored so IDs stay stable across proxies.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"sichrplace/pkg/requestcontext"
)

const headerName = "X-Request-ID"

// Middleware ensures the request carries an ID, echoing it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(headerName, requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
