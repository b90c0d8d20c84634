package httpx

import (
	"context"
	"net/http"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	requestIDKey
)

func stringFrom(ctx context.Context, key ctxKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// UserIDFrom returns the authenticated user id, or "" for anonymous requests.
func UserIDFrom(r *http.Request) string {
	return stringFrom(r.Context(), userIDKey)
}

func ContextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func RequestIDFrom(r *http.Request) string {
	return stringFrom(r.Context(), requestIDKey)
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
