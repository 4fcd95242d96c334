package middleware

import (
	"context"
	"net/http"
	"strings"

	cxauth "github.com/Kevin-Shelton/verizon-cx-demo-sub000"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/token"
)

type sessionContextKey struct{}

// SessionFromContext returns the verified session claims injected by
// [RequireSession] or [OptionalSession].
func SessionFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(sessionContextKey{}).(*token.Claims)
	return claims, ok
}

// RequireSession rejects requests that do not carry a valid session
// bearer token. Expired and malformed tokens get the same 401.
func RequireSession(engine *cxauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := engine.VerifySession(raw)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession injects session claims when a valid bearer token is
// present and passes the request through untouched otherwise. Handlers
// serving both visitors and signed-in users sit behind this.
func OptionalSession(engine *cxauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if ok {
				if claims, err := engine.VerifySession(raw); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), sessionContextKey{}, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	raw := value[len(bearer):]
	if raw == "" {
		return "", false
	}

	return raw, true
}
