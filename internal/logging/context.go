package logging

import "context"

// RequestIDKey is the attribute under which the request id is logged.
const RequestIDKey = "request_id"

type requestIDKey struct{}

// WithRequestID tags ctx with the correlation id of one user action. Both
// loggers add it to every entry logged with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id set by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func withRequestID(ctx context.Context, args []any) []any {
	if id := RequestID(ctx); id != "" {
		return append([]any{RequestIDKey, id}, args...)
	}
	return args
}
