package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

const userKey ctxKey = "auth_user"

type AuthDeps struct {
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

// RequireAuth rejects requests without a live bearer token and puts the
// authenticated profile into the context.
func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			writeUnauth(w)
			return
		}
		claims, err := deps.Tokens.Parse(r.Context(), raw)
		if err != nil {
			writeUnauth(w)
			return
		}
		if revoked, _ := deps.Blacklist.IsRevoked(r.Context(), claims.JTI); revoked {
			writeUnauth(w)
			return
		}
		p := domain.Profile{ID: claims.ProfileID, Email: claims.Email}
		ctx := context.WithValue(r.Context(), userKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContextWithUser injects an authenticated profile, bypassing token
// checks. Handler tests use it instead of forging tokens.
func ContextWithUser(ctx context.Context, p domain.Profile) context.Context {
	return context.WithValue(ctx, userKey, p)
}

func UserFromCtx(ctx context.Context) (domain.Profile, bool) {
	p, ok := ctx.Value(userKey).(domain.Profile)
	return p, ok
}

func writeUnauth(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	http.Error(w, `{"error":{"code":1001,"text":"unauthorized"}}`, http.StatusUnauthorized)
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
