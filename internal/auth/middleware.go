package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

const (
	msgMissingToken = "Token no encontrado"
	msgInvalidToken = "Token inválido"
)

type ctxKey string

const principalKey ctxKey = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// Authenticate resolves the bearer token to a Principal: 401 when no token is
// sent, 403 when no verifier accepts it.
func Authenticate(v Verifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := kit.BearerToken(r)
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, msgMissingToken)
				return
			}

			p, err := v.Verify(r.Context(), token)
			if err != nil {
				if log != nil {
					log.Debug("token rejected", zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusForbidden, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
