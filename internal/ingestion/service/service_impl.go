package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/GuiTheDevv/shipping-management/internal/clock"
	"github.com/GuiTheDevv/shipping-management/internal/config"
	"github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	obslogger "github.com/GuiTheDevv/shipping-management/internal/observability/logger"
	obsmetrics "github.com/GuiTheDevv/shipping-management/internal/observability/metrics"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/GuiTheDevv/shipping-management/internal/spreadsheet"
	"github.com/GuiTheDevv/shipping-management/pkg/telemetry/correlation"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	progressInterval = 50_000
	defaultRunsLimit = 20
	maxRunsLimit     = 100
	successMessage   = "CSV uploaded and processed successfully"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Config    config.Config
	Shipments shipmentdomain.Repository
	Runs      domain.RunRepository

	Locker        domain.Locker             `optional:"true"`
	Publisher     domain.Publisher          `optional:"true"`
	Metrics       *obsmetrics.Metrics       `optional:"true"`
	IngestMetrics *obsmetrics.IngestMetrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	shipments shipmentdomain.Repository
	runs      domain.RunRepository

	locker        domain.Locker
	publisher     domain.Publisher
	metrics       *obsmetrics.Metrics
	ingestMetrics *obsmetrics.IngestMetrics

	maxBytes  int64
	batchSize int
}

func New(p Params) domain.Service {
	maxBytes := p.Config.Upload.MaxBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxUploadBytes
	}
	batchSize := p.Config.Upload.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	c := p.Clock
	if c == nil {
		c = clock.NewSystemClock()
	}

	return &Service{
		db:            p.DB,
		log:           p.Log.Named("ingestion.service"),
		genID:         p.GenID,
		clock:         c,
		shipments:     p.Shipments,
		runs:          p.Runs,
		locker:        p.Locker,
		publisher:     p.Publisher,
		metrics:       p.Metrics,
		ingestMetrics: p.IngestMetrics,
		maxBytes:      maxBytes,
		batchSize:     batchSize,
	}
}

// Ingest replaces the shipment store with the rows of an uploaded file.
// The work is detached from the caller's cancellation so an abandoned
// request still completes.
func (s *Service) Ingest(ctx context.Context, req domain.IngestRequest) (domain.Report, error) {
	ctx = context.WithoutCancel(ctx)
	format := spreadsheet.FormatFromFileName(req.FileName)

	if req.Reader == nil {
		return domain.Report{}, domain.ErrFileRequired
	}
	if req.Size > s.maxBytes {
		s.recordOutcome(ctx, format, obsmetrics.IngestOutcomeRejected)
		return domain.Report{}, domain.ErrPayloadTooLarge
	}

	token, err := s.acquire(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrIngestInProgress) {
			s.recordOutcome(ctx, format, obsmetrics.IngestOutcomeLocked)
		}
		return domain.Report{}, err
	}
	defer s.release(ctx, token)

	run := &domain.IngestionRun{
		ID:        s.genID.Generate(),
		FileName:  strings.TrimSpace(req.FileName),
		FileSize:  req.Size,
		Format:    string(format),
		StartedAt: s.clock.Now(),
		Metadata:  datatypes.JSONMap{},
	}
	ctx, correlationID := correlation.EnsureCorrelationID(ctx)
	run.Metadata["correlation_id"] = correlationID
	log := obslogger.WithIngestionRun(obslogger.WithContext(ctx, s.log), run.ID.String())
	started := time.Now()

	report, err := s.run(ctx, log, req, format)
	report.RunID = run.ID.String()
	report.ProcessingTime = domain.ProcessingTime(time.Since(started))

	outcome := obsmetrics.IngestOutcomeSucceeded
	if err != nil {
		outcome = obsmetrics.IngestOutcomeFailed
		if errors.Is(err, domain.ErrPayloadTooLarge) || errors.Is(err, domain.ErrMalformedFile) {
			outcome = obsmetrics.IngestOutcomeRejected
		}
	}
	s.recordOutcome(ctx, format, outcome)
	s.ingestMetrics.ObserveRunDuration(time.Since(started))
	s.recordRun(ctx, log, run, report, err)

	if err != nil {
		log.Warn("ingestion failed", zap.String("outcome", outcome), zap.Error(err))
		return domain.Report{}, err
	}

	report.Message = successMessage
	s.publish(ctx, log, domain.ReloadedEvent{
		RunID:      run.ID.String(),
		FileName:   run.FileName,
		Report:     report,
		OccurredAt: s.clock.Now(),
	})
	log.Info("ingestion completed",
		zap.Int("total_processed", report.TotalProcessed),
		zap.Int("total_valid", report.TotalValid),
		zap.Int("duplicates_skipped", report.DuplicatesSkipped),
		zap.Int("invalid_id_rows", report.InvalidIDRows),
		zap.Int("missing_field_rows", report.MissingFieldRows),
		zap.Int("invalid_enum_rows", report.InvalidEnumRows),
		zap.String("processing_time", report.ProcessingTime.String()),
	)
	return report, nil
}

func (s *Service) run(ctx context.Context, log *zap.Logger, req domain.IngestRequest, format spreadsheet.Format) (domain.Report, error) {
	body := &capReader{r: req.Reader, remaining: s.maxBytes}
	rows, err := spreadsheet.NewRowReader(body, format)
	if err != nil {
		return domain.Report{}, s.parseError(err)
	}
	defer rows.Close()

	accepted, report, err := s.parse(log, rows)
	if err != nil {
		return report, s.parseError(err)
	}

	s.ingestMetrics.AddRows(domain.BucketValid, report.TotalValid)
	for bucket, count := range report.Rejected() {
		s.ingestMetrics.AddRows(bucket, count)
	}
	s.metrics.RecordRows(ctx, report.TotalValid, report.Rejected())

	if err := s.shipments.Truncate(ctx, s.db); err != nil {
		s.ingestMetrics.IncError(obsmetrics.IngestStageTruncate, err)
		return report, fmt.Errorf("%w: %w", domain.ErrClearFailed, err)
	}
	s.ingestMetrics.SetStoreSize(0)

	inserted, err := s.insert(ctx, accepted)
	s.ingestMetrics.SetStoreSize(inserted)
	if err != nil {
		s.ingestMetrics.IncError(obsmetrics.IngestStageInsert, err)
		return report, err
	}

	report.TotalShipments = inserted
	return report, nil
}

// parse walks every record, keeping the first occurrence of each shipment
// id in file order.
func (s *Service) parse(log *zap.Logger, rows spreadsheet.RowReader) ([]shipmentdomain.Shipment, domain.Report, error) {
	var report domain.Report
	accepted := make([]shipmentdomain.Shipment, 0, 1024)
	seen := make(map[int64]struct{}, 1024)

	for {
		record, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, err
		}
		report.TotalProcessed++

		shipment, bucket := classifyRow(record)
		switch bucket {
		case domain.BucketInvalidID:
			report.InvalidIDRows++
			continue
		case domain.BucketMissingField:
			report.MissingFieldRows++
			continue
		case domain.BucketInvalidEnum:
			report.InvalidEnumRows++
			continue
		}

		if _, dup := seen[shipment.ShipmentID]; dup {
			report.DuplicatesSkipped++
			continue
		}
		seen[shipment.ShipmentID] = struct{}{}
		accepted = append(accepted, shipment)
		report.TotalValid++

		if report.TotalValid%progressInterval == 0 {
			log.Info("ingestion progress",
				zap.Int("total_processed", report.TotalProcessed),
				zap.Int("total_valid", report.TotalValid),
				zap.Int("duplicates_skipped", report.DuplicatesSkipped),
			)
			runtime.Gosched()
		}
	}

	log.Info("parse completed",
		zap.Int("total_processed", report.TotalProcessed),
		zap.Int("total_valid", report.TotalValid),
	)
	return accepted, report, nil
}

func (s *Service) insert(ctx context.Context, accepted []shipmentdomain.Shipment) (int, error) {
	inserted := 0
	for index, offset := 0, 0; offset < len(accepted); index, offset = index+1, offset+s.batchSize {
		end := min(offset+s.batchSize, len(accepted))

		batchStarted := time.Now()
		if err := s.shipments.InsertBatch(ctx, s.db, accepted[offset:end]); err != nil {
			return inserted, &domain.BatchInsertError{
				Index:    index,
				Offset:   offset,
				Inserted: inserted,
				Err:      err,
			}
		}
		s.ingestMetrics.ObserveBatchInsert(time.Since(batchStarted), end-offset)
		inserted += end - offset

		runtime.Gosched()
	}
	return inserted, nil
}

func (s *Service) parseError(err error) error {
	s.ingestMetrics.IncError(obsmetrics.IngestStageParse, err)
	if errors.Is(err, domain.ErrPayloadTooLarge) {
		return domain.ErrPayloadTooLarge
	}
	return fmt.Errorf("%w: %w", domain.ErrMalformedFile, err)
}

func (s *Service) acquire(ctx context.Context) (string, error) {
	if s.locker == nil {
		return "", nil
	}
	token, ok, err := s.locker.TryLock(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire ingestion lock: %w", err)
	}
	if !ok {
		return "", domain.ErrIngestInProgress
	}
	return token, nil
}

func (s *Service) release(ctx context.Context, token string) {
	if s.locker == nil {
		return
	}
	if err := s.locker.Release(ctx, token); err != nil {
		s.log.Warn("release ingestion lock", zap.Error(err))
	}
}

func (s *Service) recordOutcome(ctx context.Context, format spreadsheet.Format, outcome string) {
	s.ingestMetrics.IncRun(outcome)
	s.metrics.RecordUpload(ctx, string(format), outcome)
}

func (s *Service) recordRun(ctx context.Context, log *zap.Logger, run *domain.IngestionRun, report domain.Report, runErr error) {
	run.FinishedAt = s.clock.Now()
	run.Status = domain.RunStatusSucceeded
	run.TotalProcessed = report.TotalProcessed
	run.TotalValid = report.TotalValid
	run.TotalShipments = report.TotalShipments
	run.DuplicatesSkipped = report.DuplicatesSkipped
	run.InvalidIDRows = report.InvalidIDRows
	run.MissingFieldRows = report.MissingFieldRows
	run.InvalidEnumRows = report.InvalidEnumRows
	run.Metadata["processing_seconds"] = report.ProcessingTime.Seconds()

	if runErr != nil {
		msg := runErr.Error()
		run.Status = domain.RunStatusFailed
		run.Error = &msg

		var batchErr *domain.BatchInsertError
		if errors.As(runErr, &batchErr) {
			run.Metadata["failed_batch"] = batchErr.Index
			run.TotalShipments = batchErr.Inserted
		}
	}

	if s.runs == nil {
		return
	}
	if err := s.runs.Insert(ctx, s.db, run); err != nil {
		s.ingestMetrics.IncError(obsmetrics.IngestStageRecord, err)
		log.Warn("record ingestion run", zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, log *zap.Logger, event domain.ReloadedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReloaded(ctx, event); err != nil {
		log.Warn("publish reload event", zap.Error(err))
	}
}

func (s *Service) ListRuns(ctx context.Context, limit int) ([]domain.IngestionRun, error) {
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}
	runs, err := s.runs.ListRecent(ctx, s.db, limit)
	if err != nil {
		return nil, fmt.Errorf("list ingestion runs: %w", err)
	}
	return runs, nil
}

// capReader fails once more than remaining bytes have been read, for
// uploads whose size was not declared up front.
type capReader struct {
	r         io.Reader
	remaining int64
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, domain.ErrPayloadTooLarge
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, domain.ErrPayloadTooLarge
	}
	return n, err
}
