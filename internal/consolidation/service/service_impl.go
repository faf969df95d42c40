package service

import (
	"context"
	"fmt"

	"github.com/GuiTheDevv/shipping-management/internal/clock"
	"github.com/GuiTheDevv/shipping-management/internal/config"
	"github.com/GuiTheDevv/shipping-management/internal/consolidation/domain"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
		log:       p.Log.Named("consolidation.service"),
		clock:     p.Clock,
		dashboard: p.Dashboard,
		shipments: p.Shipments,
	}
}

func (s *Service) GetGroups(ctx context.Context, req domain.Request) (domain.Response, error) {
	page, err := pagination.Pagination{Page: req.Page, Limit: req.Limit}.Normalize()
	if err != nil {
		return domain.Response{}, err
	}

	tuning := s.dashboard.Get()
	minSize := tuning.DefaultMinGroupSize
	if req.MinGroupSize != nil {
		if *req.MinGroupSize < 1 {
			return domain.Response{}, domain.ErrInvalidMinGroupSize
		}
		minSize = *req.MinGroupSize
	}

	filter := shipmentdomain.Filter{
		Carrier:          req.Carrier,
		Mode:             req.Mode,
		Destination:      req.Destination,
		RequireDeparture: true,
	}

	candidates := make([]shipmentdomain.Shipment, 0)
	skipped := 0
	err = s.shipments.Stream(ctx, s.db, filter, func(item shipmentdomain.Shipment) error {
		if err := item.Validate(); err != nil {
			skipped++
			return nil
		}
		candidates = append(candidates, item)
		return nil
	})
	if err != nil {
		return domain.Response{}, fmt.Errorf("stream consolidation candidates: %w", err)
	}
	if skipped > 0 {
		s.log.Warn("skipped invalid shipment rows", zap.Int("skipped", skipped))
	}

	groups := domain.BuildGroups(candidates, minSize, domain.Pricing{
		BaselineCost: tuning.BaselineCost,
		Discount:     tuning.ConsolidationDiscount,
	})

	pageGroups := pagination.Slice(groups, page)
	visible := make([]domain.Group, len(pageGroups))
	copy(visible, pageGroups)
	if req.IncludeDetails {
		for i := range visible {
			visible[i] = domain.WithDetails(visible[i])
		}
	}

	s.log.Debug("consolidation computed",
		zap.Int("candidates", len(candidates)),
		zap.Int("groups", len(groups)),
		zap.Int("min_group_size", minSize),
	)

	return domain.Response{
		ConsolidationGroups: visible,
		Summary:             domain.Summarize(groups),
		Pagination:          pagination.BuildPageInfo(page, int64(len(groups))),
		Filters: domain.Filters{
			Carrier:      shipmentdomain.FilterLabel(req.Carrier),
			Mode:         shipmentdomain.FilterLabel(req.Mode),
			Destination:  shipmentdomain.FilterLabel(req.Destination),
			MinGroupSize: minSize,
		},
		LastUpdated: s.clock.Now(),
	}, nil
}
