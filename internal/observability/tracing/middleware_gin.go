package tracing

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	obscontext "github.com/GuiTheDevv/shipping-management/internal/observability/context"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "shipping-management/http"

// Liveness and scrape endpoints are polled constantly and carry no shipment work.
var untracedRoutes = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// GinMiddleware opens one server span per dashboard request, named after the
// matched route template.
func GinMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer(tracerName)
	return func(c *gin.Context) {
		route := c.FullPath()
		if _, skip := untracedRoutes[route]; skip {
			c.Next()
			return
		}
		if route == "" {
			route = "unknown"
		}
		method := strings.ToUpper(c.Request.Method)

		ctx := ExtractContext(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx = withRequestBaggage(ctx)
		ctx, span := tracer.Start(ctx, "HTTP "+method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(SafeAttributes(requestAttributes(c, method, route)...)...),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(SafeAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int64("http.server_duration_ms", time.Since(start).Milliseconds()),
		)...)
		if format := c.GetString("upload_format"); format != "" {
			span.SetAttributes(SafeAttributes(attribute.String("upload.format", format))...)
		}
		if status < http.StatusInternalServerError {
			return
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			if safeErr := SafeError(lastErr.Err); safeErr != nil {
				span.RecordError(safeErr)
			}
		}
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}

func withRequestBaggage(ctx context.Context) context.Context {
	requestID := obscontext.RequestIDFromContext(ctx)
	if requestID == "" {
		return ctx
	}
	member, err := baggage.NewMember("request_id", requestID)
	if err != nil {
		return ctx
	}
	bag, err := baggage.FromContext(ctx).SetMember(member)
	if err != nil {
		return ctx
	}
	return baggage.ContextWithBaggage(ctx, bag)
}

// requestAttributes describes what the request asks for: the shipment it
// targets, the page it lists, or the size of the spreadsheet it uploads.
func requestAttributes(c *gin.Context, method, route string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	}
	if requestID := obscontext.RequestIDFromContext(c.Request.Context()); requestID != "" {
		attrs = append(attrs, attribute.String("request_id", requestID))
	}
	if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err == nil {
		attrs = append(attrs, attribute.Int64("shipment.id", id))
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		attrs = append(attrs, attribute.Int("query.page", page))
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		attrs = append(attrs, attribute.Int("query.limit", limit))
	}
	if method == http.MethodPost && c.Request.ContentLength > 0 {
		attrs = append(attrs, attribute.Int64("upload.bytes", c.Request.ContentLength))
	}
	return attrs
}
