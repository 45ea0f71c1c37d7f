package auth

import (
	"context"
	"net/http"
)

type contextKey struct{}

// Optional returns a middleware that attaches the session identity to the
// request context when a valid session cookie is present. Requests without
// a cookie (or with an expired one) pass through anonymously; the API
// accepts anonymous submissions.
func Optional(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err == nil {
				if claims, err := ParseSessionToken(secret, cookie.Value); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), contextKey{}, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// FromContext returns the session claims attached by Optional, or nil for
// anonymous requests.
func FromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(contextKey{}).(*Claims)
	return claims
}

// Require returns a middleware that rejects anonymous requests with 401.
// Wire it after Optional on routes that need an identity (delete, upvote).
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":"unauthorized","message":"login required"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
