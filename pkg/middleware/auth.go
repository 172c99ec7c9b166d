package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

// Verifier checks a bearer credential. *auth.Tokens satisfies it.
type Verifier interface {
	Verify(raw string) (*auth.Claims, error)
}

type userIDKey struct{}

// WithUserID stores the authenticated account id in ctx.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromCtx returns the account id set by Authenticate.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// Authenticate rejects requests without a valid "Bearer <token>" header with
// an empty 401. On success the token subject is available downstream via
// UserIDFromCtx.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				reject(w, r, "missing or malformed authorization header")
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				reject(w, r, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.Subject)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, credential, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	credential = strings.TrimSpace(credential)
	return credential, credential != ""
}

func reject(w http.ResponseWriter, r *http.Request, reason string) {
	metrics.AuthFailures.WithLabelValues("gate").Inc()
	logger.WithCtx(r.Context()).Debug("request rejected by access gate", "reason", reason)
	response.Unauthorized(w)
}
