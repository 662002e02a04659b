// Package reqctx giữ các giá trị gắn theo request (client IP, request id)
// trong context.Context, để tầng service đọc được mà không phụ thuộc gin.
package reqctx

import "context"

type contextKey string

const (
	clientIPKey  = contextKey("client_ip")
	requestIDKey = contextKey("request_id")
)

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIP trả về "" nếu context không có
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID trả về "" nếu context không có
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
