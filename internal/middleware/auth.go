package middleware

import (
	"net/http"

	"foodcart-be/internal/auth"
	"foodcart-be/internal/logger"
	"foodcart-be/internal/utils"

	"go.uber.org/zap"
)

// AuthMiddleware attaches the caller's identity to the request context.
// Requests without a token pass through anonymously; requests with a bad token
// are rejected.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := auth.ParseToken(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected access token", zap.Error(err))
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := auth.WithIdentity(r.Context(), id)
			ctx = logger.WithCustomerID(ctx, id.CustomerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
