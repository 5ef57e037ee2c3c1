// Package middleware HTTP middleware сервиса
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
)

// UserTokenHeader заголовок с токеном пользователя (выдается внешним сервисом авторизации)
const UserTokenHeader = "X-User-Token"

const msgMissingToken = "отсутствует токен пользователя"

type userTokenKey struct{}

// Identify кладет токен из заголовка в контекст, если он есть
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := strings.TrimSpace(r.Header.Get(UserTokenHeader)); token != "" {
			r = r.WithContext(WithUserToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

// Auth требует заголовок X-User-Token
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get(UserTokenHeader))
		if token == "" {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserToken(r.Context(), token)))
	})
}

func WithUserToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, userTokenKey{}, token)
}

// GetUserToken токен пользователя из контекста
func GetUserToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(userTokenKey{}).(string)
	return token, ok && token != ""
}
