package middleware

import (
	"net/http"
	"strings"

	"github.com/turnate/booking-engine/pkg/authctx"
)

// Session переносит заголовок Authorization клиента в контекст
// Сервис токен не проверяет: он пробрасывается во внешний бэкенд как есть.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get("Authorization"))
		if token != "" {
			r = r.WithContext(authctx.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
