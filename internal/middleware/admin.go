package middleware

import (
	"net/http"
	"strings"

	"judol_backend/pkg/token"
)

// AdminAuth проверяет токен доступа оператора в заголовке Authorization
func AdminAuth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || len(tokenStr) == 0 {
				http.Error(w, "missing operator token", http.StatusUnauthorized)
				return
			}

			if _, err := token.VerifyToken(tokenStr, secretKey); err != nil {
				http.Error(w, "invalid operator token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
