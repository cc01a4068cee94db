package ctxutil

import (
	"context"
)

type ctxKey string

const (
	operatorIDKey ctxKey = "operator_id"
	companyIDKey  ctxKey = "company_id"
	requestIDKey  ctxKey = "request_id"
	clientIPKey   ctxKey = "client_ip"
	userAgentKey  ctxKey = "user_agent"
)

// WithOperator stores the authenticated operator and the company they act for.
func WithOperator(ctx context.Context, operatorID, companyID string) context.Context {
	ctx = context.WithValue(ctx, operatorIDKey, operatorID)
	return context.WithValue(ctx, companyIDKey, companyID)
}

// OperatorIDFromCtx extracts the operator (JWT subject) from the context.
// Returns "" and false if absent or empty.
func OperatorIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// CompanyIDFromCtx extracts the company scope of the authenticated operator.
// Returns "" and false if absent or empty.
func CompanyIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(companyIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithClient stores the transport-level client address and user agent.
func WithClient(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey, ip)
	return context.WithValue(ctx, userAgentKey, userAgent)
}

// ClientIPFromCtx returns the IP resolved by the transport, or "".
func ClientIPFromCtx(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// UserAgentFromCtx returns the transport user agent, or "".
func UserAgentFromCtx(ctx context.Context) string {
	ua, _ := ctx.Value(userAgentKey).(string)
	return ua
}
