package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/GuiTheDevv/shipping-management/pkg/db"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	IngestOutcomeSucceeded = "succeeded"
	IngestOutcomeRejected  = "rejected"
	IngestOutcomeFailed    = "failed"
	IngestOutcomeLocked    = "locked"
)

const (
	IngestStageParse    = "parse"
	IngestStageTruncate = "truncate"
	IngestStageInsert   = "insert"
	IngestStageRecord   = "record"
)

const (
	StoreErrorReasonDeadlineExceeded     = "deadline_exceeded"
	StoreErrorReasonDBLockTimeout        = "db_lock_timeout"
	StoreErrorReasonSerializationFailure = "serialization_failure"
	StoreErrorReasonUniqueViolation      = "unique_violation"
	StoreErrorReasonDB                   = "db"
	StoreErrorReasonUnknown              = "unknown"
)

// IngestMetrics captures shipment file ingestion health signals.
type IngestMetrics struct {
	runs          *prometheus.CounterVec
	rows          *prometheus.CounterVec
	runDuration   prometheus.Observer
	batchDuration prometheus.Observer
	batchRows     prometheus.Counter
	storeErrors   *prometheus.CounterVec
	storeSize     prometheus.Gauge
}

var (
	ingestMetricsOnce sync.Once
	ingestMetrics     *IngestMetrics
)

// Ingest returns the singleton ingestion metrics registry.
func Ingest() *IngestMetrics {
	return IngestWithConfig(Config{})
}

// IngestWithConfig returns the singleton ingestion metrics registry using config labels.
func IngestWithConfig(cfg Config) *IngestMetrics {
	ingestMetricsOnce.Do(func() {
		ingestMetrics = newIngestMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return ingestMetrics
}

// ResetIngestMetricsForTest resets the ingestion metrics singleton for tests.
func ResetIngestMetricsForTest() {
	ingestMetricsOnce = sync.Once{}
	ingestMetrics = nil
}

// NewIngestMetricsWithRegistry builds unshared instruments on the given registerer.
func NewIngestMetricsWithRegistry(registerer prometheus.Registerer, cfg Config) *IngestMetrics {
	return newIngestMetrics(registerer, cfg)
}

func newIngestMetrics(registerer prometheus.Registerer, cfg Config) *IngestMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	constLabels := constLabelsFor(cfg)

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "shipping_ingest_runs_total",
		Help:        "Shipment file ingestion runs by outcome.",
		ConstLabels: constLabels,
	}, []string{"outcome"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "shipping_ingest_rows_total",
		Help:        "Parsed shipment rows by validation bucket.",
		ConstLabels: constLabels,
	}, []string{"bucket"})
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "shipping_ingest_run_duration_seconds",
		Help:        "End to end ingestion latency including parsing and store replacement.",
		Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120, 300, 600},
		ConstLabels: constLabels,
	})
	batchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "shipping_ingest_batch_insert_duration_seconds",
		Help:        "Latency of a single batch insert into the shipment store.",
		Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		ConstLabels: constLabels,
	})
	batchRows := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "shipping_ingest_inserted_rows_total",
		Help:        "Rows written to the shipment store by batch inserts.",
		ConstLabels: constLabels,
	})
	storeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "shipping_ingest_errors_total",
		Help:        "Ingestion failures by stage and low-cardinality reason.",
		ConstLabels: constLabels,
	}, []string{"stage", "reason"})
	storeSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "shipping_store_shipments",
		Help:        "Shipments held by the store after the last successful ingestion.",
		ConstLabels: constLabels,
	})

	registerer.MustRegister(
		runs,
		rows,
		runDuration,
		batchDuration,
		batchRows,
		storeErrors,
		storeSize,
	)

	return &IngestMetrics{
		runs:          runs,
		rows:          rows,
		runDuration:   runDuration,
		batchDuration: batchDuration,
		batchRows:     batchRows,
		storeErrors:   storeErrors,
		storeSize:     storeSize,
	}
}

func constLabelsFor(cfg Config) prometheus.Labels {
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = defaultNamespace
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	return prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}
}

// IncRun increments the run counter for an outcome.
func (m *IngestMetrics) IncRun(outcome string) {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
}

// AddRows increments the row counter for a validation bucket.
func (m *IngestMetrics) AddRows(bucket string, count int) {
	if m == nil || count <= 0 || m.rows == nil {
		return
	}
	m.rows.WithLabelValues(bucket).Add(float64(count))
}

// ObserveRunDuration records end to end ingestion latency.
func (m *IngestMetrics) ObserveRunDuration(duration time.Duration) {
	if m == nil || m.runDuration == nil {
		return
	}
	m.runDuration.Observe(duration.Seconds())
}

// ObserveBatchInsert records one batch insert and the rows it wrote.
func (m *IngestMetrics) ObserveBatchInsert(duration time.Duration, rows int) {
	if m == nil {
		return
	}
	if m.batchDuration != nil {
		m.batchDuration.Observe(duration.Seconds())
	}
	if m.batchRows != nil && rows > 0 {
		m.batchRows.Add(float64(rows))
	}
}

// IncError increments the failure counter with classification.
func (m *IngestMetrics) IncError(stage string, err error) {
	if m == nil || err == nil || m.storeErrors == nil {
		return
	}
	m.storeErrors.WithLabelValues(stage, ClassifyStoreErrorReason(err)).Inc()
}

// SetStoreSize publishes the number of shipments currently stored.
func (m *IngestMetrics) SetStoreSize(count int) {
	if m == nil || m.storeSize == nil {
		return
	}
	m.storeSize.Set(float64(count))
}

// ClassifyStoreErrorReason maps store errors to low-cardinality reasons.
func ClassifyStoreErrorReason(err error) string {
	if err == nil {
		return StoreErrorReasonUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return StoreErrorReasonDeadlineExceeded
	}
	if hasPGCode(err, "55P03") {
		return StoreErrorReasonDBLockTimeout
	}
	if hasPGCode(err, "40001") {
		return StoreErrorReasonSerializationFailure
	}
	if db.IsDuplicateKeyErr(err) {
		return StoreErrorReasonUniqueViolation
	}
	if isDBError(err) {
		return StoreErrorReasonDB
	}
	return StoreErrorReasonUnknown
}

// IsDBError reports whether err originates from the database layer.
func IsDBError(err error) bool {
	return isDBError(err)
}

func hasPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func isDBError(err error) bool {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, gorm.ErrInvalidField) ||
		errors.Is(err, gorm.ErrInvalidData) ||
		errors.Is(err, gorm.ErrMissingWhereClause) ||
		errors.Is(err, gorm.ErrUnsupportedDriver) ||
		errors.Is(err, gorm.ErrInvalidValue) ||
		errors.Is(err, gorm.ErrNotImplemented) ||
		db.IsDuplicateKeyErr(err) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}
