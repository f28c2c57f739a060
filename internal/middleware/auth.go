package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"economy_backend/pkg/token"
)

type ctxKey int

const adminIDKey ctxKey = iota

// AdminAuth проверяет JWT админа и кладет его ID в контекст запроса
func AdminAuth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(strings.TrimPrefix(header, "Bearer "), secretKey)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			adminID, err := strconv.ParseInt(claims.ID, 10, 64)
			if err != nil {
				http.Error(w, "invalid token claims", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), adminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminIDFromContext - ID админа, положенный middleware
func AdminIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}
