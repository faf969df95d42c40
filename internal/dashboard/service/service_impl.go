package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GuiTheDevv/shipping-management/internal/clock"
	"github.com/GuiTheDevv/shipping-management/internal/config"
	"github.com/GuiTheDevv/shipping-management/internal/dashboard/domain"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxWindowDays bounds the dense capacity timeline.
const MaxWindowDays = 5 * 366

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Dashboard *config.DashboardConfigHolder
	Shipments shipmentdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	dashboard *config.DashboardConfigHolder
	shipments shipmentdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("dashboard.service"),
		clock:     p.Clock,
		dashboard: p.Dashboard,
		shipments: p.Shipments,
	}
}

func (s *Service) GetDashboard(ctx context.Context, req domain.Request) (domain.Payload, error) {
	window, err := ResolveWindow(req, clock.Today(s.clock))
	if err != nil {
		return domain.Payload{}, err
	}

	filter := shipmentdomain.Filter{
		ArrivalFrom: window.From.Format(domain.DateLayout),
		ArrivalTo:   window.To.Format(domain.DateLayout),
	}

	rows := make([]shipmentdomain.Shipment, 0)
	skipped := 0
	err = s.shipments.Stream(ctx, s.db, filter, func(item shipmentdomain.Shipment) error {
		if err := item.Validate(); err != nil {
			skipped++
			return nil
		}
		rows = append(rows, item)
		return nil
	})
	if err != nil {
		return domain.Payload{}, fmt.Errorf("stream dashboard rows: %w", err)
	}
	if skipped > 0 {
		s.log.Warn("skipped invalid shipment rows", zap.Int("skipped", skipped))
	}

	stock, err := s.loadStock(ctx)
	if err != nil {
		return domain.Payload{}, err
	}

	tuning := s.dashboard.Get()
	payload := domain.Aggregate(rows, window, stock, domain.Tuning{
		WarehouseName: tuning.WarehouseName,
		CapacityCm3:   tuning.WarehouseCapacityCm3,
		AirSLADays:    tuning.OnTime.AirDays,
		SeaSLADays:    tuning.OnTime.SeaDays,
	})
	payload.LastUpdated = s.clock.Now()

	s.log.Debug("dashboard computed",
		zap.String("from", payload.DateRange.From),
		zap.String("to", payload.DateRange.To),
		zap.Int("rows", len(rows)),
	)
	return payload, nil
}

func (s *Service) loadStock(ctx context.Context) (domain.Stock, error) {
	received := shipmentdomain.StatusReceived

	volume, err := s.shipments.SumVolumeByStatus(ctx, s.db, received)
	if err != nil {
		return domain.Stock{}, fmt.Errorf("sum warehouse volume: %w", err)
	}
	count, err := s.shipments.Count(ctx, s.db, shipmentdomain.Filter{Status: &received})
	if err != nil {
		return domain.Stock{}, fmt.Errorf("count warehouse shipments: %w", err)
	}
	return domain.Stock{Shipments: count, VolumeCm3: volume}, nil
}

// ResolveWindow applies the trailing thirty day default ending today to
// whichever bound is missing.
func ResolveWindow(req domain.Request, today time.Time) (domain.Window, error) {
	to := today
	if raw := strings.TrimSpace(req.DateTo); raw != "" {
		parsed, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			return domain.Window{}, fmt.Errorf("%w: dateTo %q", domain.ErrInvalidDate, raw)
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -(domain.DefaultWindowDays - 1))
	if raw := strings.TrimSpace(req.DateFrom); raw != "" {
		parsed, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			return domain.Window{}, fmt.Errorf("%w: dateFrom %q", domain.ErrInvalidDate, raw)
		}
		from = parsed
	}

	if from.After(to) {
		return domain.Window{}, domain.ErrInvalidDateRange
	}
	window := domain.Window{From: from, To: to}
	if window.Days() > MaxWindowDays {
		return domain.Window{}, fmt.Errorf("%w: more than %d days", domain.ErrInvalidDateRange, MaxWindowDays)
	}
	return window, nil
}
