package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sbaral/bookpasal-backend/api/responses"
	"github.com/sbaral/bookpasal-backend/pkg/config"
	pkgerrors "github.com/sbaral/bookpasal-backend/pkg/errors"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
)

// AdminAuth guards the back-office routes with an HS256 bearer token.
func AdminAuth(cfg config.AdminAuthConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := parseBearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			claims := jwt.MapClaims{}
			_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			},
				jwt.WithIssuer(cfg.Issuer),
				jwt.WithExpirationRequired(),
			)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := r.Context()
			if logg != nil {
				if sub, subErr := claims.GetSubject(); subErr == nil && sub != "" {
					ctx = logg.WithField(ctx, "admin", sub)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseBearerToken(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return token, nil
}
