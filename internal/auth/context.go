package auth

import "context"

type contextKey string

const userIDContextKey contextKey = "corrida-user-id"

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the id of the signed-in user set by the
// auth middleware, or false for unauthenticated requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}
