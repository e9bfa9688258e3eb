package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/catalog-ingest/pkg/auth"
	"github.com/shashiranjanraj/catalog-ingest/pkg/logger"
	"github.com/shashiranjanraj/catalog-ingest/pkg/response"
)

// BearerAuth rejects requests without a valid HS256 token signed with
// secret. An empty secret disables the check.
func BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				response.Unauthorized(w)
				return
			}

			claims, err := auth.ValidateToken(secret, strings.TrimSpace(token))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("rejected token", "error", err)
				response.Unauthorized(w)
				return
			}

			log := logger.WithCtx(r.Context()).With("scraper", claims.Subject, "retailer_id", claims.RetailerID)
			next.ServeHTTP(w, r.WithContext(logger.InjectLogger(r.Context(), log)))
		})
	}
}
