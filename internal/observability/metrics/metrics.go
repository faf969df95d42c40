package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	uploads          metric.Int64Counter
	rowsAccepted     metric.Int64Counter
	rowsRejected     metric.Int64Counter
	dashboardQueries metric.Int64Counter
	rateLimitDenied  metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = defaultNamespace
	}
	meter := provider.Meter(name)

	uploads, err := meter.Int64Counter("shipping_uploads_total")
	if err != nil {
		return nil, err
	}
	rowsAccepted, err := meter.Int64Counter("shipping_rows_accepted_total")
	if err != nil {
		return nil, err
	}
	rowsRejected, err := meter.Int64Counter("shipping_rows_rejected_total")
	if err != nil {
		return nil, err
	}
	dashboardQueries, err := meter.Int64Counter("shipping_dashboard_queries_total")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("shipping_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		uploads:          uploads,
		rowsAccepted:     rowsAccepted,
		rowsRejected:     rowsRejected,
		dashboardQueries: dashboardQueries,
		rateLimitDenied:  rateLimitDenied,
	}, nil
}

// RecordUpload increments upload counts by file format and outcome.
func (m *Metrics) RecordUpload(ctx context.Context, format, outcome string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("format", strings.TrimSpace(format)),
		attribute.String("outcome", strings.TrimSpace(outcome)),
	)
	m.uploads.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRows records accepted rows and rejected rows per bucket.
func (m *Metrics) RecordRows(ctx context.Context, accepted int, rejected map[string]int) {
	if m == nil {
		return
	}
	if accepted > 0 {
		m.rowsAccepted.Add(ctx, int64(accepted))
	}
	for bucket, count := range rejected {
		if count <= 0 {
			continue
		}
		attrs := FilterAttributes(attribute.String("bucket", strings.TrimSpace(bucket)))
		m.rowsRejected.Add(ctx, int64(count), metric.WithAttributes(attrs...))
	}
}

// RecordDashboardQuery counts read-side aggregations by view.
func (m *Metrics) RecordDashboardQuery(ctx context.Context, view string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("view", strings.TrimSpace(view)))
	m.dashboardQueries.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateLimitDenied increments rate limit deny counts.
func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

const defaultNamespace = "shipping-management"

var allowedLabelKeys = map[attribute.Key]struct{}{
	"endpoint":    {},
	"status_code": {},
	"format":      {},
	"outcome":     {},
	"bucket":      {},
	"view":        {},
	"reason":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
