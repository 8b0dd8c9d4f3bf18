// Package authctx переносит токен сессии клиента через context.
package authctx

import "context"

type tokenKey struct{}

// WithToken сохраняет значение заголовка Authorization в контексте
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// Token возвращает сохраненный токен
func Token(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
