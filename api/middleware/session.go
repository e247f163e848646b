package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mcastellon/shopora-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// Session resolves the cart session identifier for the request. Clients send
// the id back on every request; a new one is minted and echoed when absent or
// malformed so anonymous visitors can build carts before signing in.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
