package httpx

import "context"

// userIDKey is an unexported context key type for the authenticated user ID.
type userIDKey struct{}

// SetUserIDInContext returns a context carrying the authenticated user ID.
func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext retrieves the authenticated user ID from the context.
// Returns the empty string when no user is attached.
func UserIDFromContext(ctx context.Context) string {
	if v := ctx.Value(userIDKey{}); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
