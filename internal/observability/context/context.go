package context

import (
	"context"
	"strings"
)

type requestIDKey struct{}

type uploadKey struct{}

// WithRequestID stores the inbound request identifier.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithUploadFile tags the context with the name of the file being ingested.
func WithUploadFile(ctx context.Context, fileName string) context.Context {
	fileName = strings.TrimSpace(fileName)
	if ctx == nil || fileName == "" {
		return ctx
	}
	return context.WithValue(ctx, uploadKey{}, fileName)
}

func UploadFileFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(uploadKey{}).(string); ok {
		return v
	}
	return ""
}
