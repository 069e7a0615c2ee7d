package middleware

import (
	"net/http"
	"strings"

	"github.com/souqline/catalog-backend/api/responses"
	pkgAuth "github.com/souqline/catalog-backend/pkg/auth"
	"github.com/souqline/catalog-backend/pkg/config"
	pkgerrors "github.com/souqline/catalog-backend/pkg/errors"
	"github.com/souqline/catalog-backend/pkg/logger"
)

// OptionalAuth parses a bearer token when one is present and seeds the
// request context with its verified role. Anonymous requests pass through
// untouched; the catalog read endpoints are public and only use the role to
// decide quantity visibility. A token that is present but invalid is
// rejected rather than silently downgraded.
func OptionalAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithRole(ctx, claims.Role)

			if logg != nil {
				ctx = logg.WithActorRole(ctx, string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
