package auth

import "context"

type contextKey int

const (
	contextKeyUserID contextKey = iota + 1
	contextKeyEmail
)

func SetAuthContext(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, contextKeyUserID, userID)
	return context.WithValue(ctx, contextKeyEmail, email)
}

func UserFromContext(ctx context.Context) (userID, email string, ok bool) {
	userID, ok = ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", "", false
	}
	email, ok = ctx.Value(contextKeyEmail).(string)
	return userID, email, ok
}
