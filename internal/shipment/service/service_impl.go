package service

import (
	"context"
	"fmt"

	"github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("shipment.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListShipmentRequest) (domain.ListShipmentResponse, error) {
	page, err := pagination.Pagination{Page: req.Page, Limit: req.Limit}.Normalize()
	if err != nil {
		return domain.ListShipmentResponse{}, err
	}

	filter := domain.Filter{
		Status:      req.Status,
		Carrier:     req.Carrier,
		Destination: req.Destination,
		Search:      domain.NewSearch(req.Search),
	}

	total, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.ListShipmentResponse{}, fmt.Errorf("count shipments: %w", err)
	}

	items, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListShipmentResponse{}, fmt.Errorf("list shipments: %w", err)
	}

	shipments := make([]domain.Shipment, 0, len(items))
	dropped := 0
	for _, item := range items {
		if err := item.Validate(); err != nil {
			dropped++
			s.log.Debug("invalid shipment row", zap.Int64("shipment_id", item.ShipmentID), zap.Error(err))
			continue
		}
		shipments = append(shipments, item)
	}
	if dropped > 0 {
		s.log.Warn("dropped invalid shipment rows",
			zap.Int("dropped", dropped),
			zap.Int("page", page.Page),
		)
	}

	return domain.ListShipmentResponse{
		Shipments:  shipments,
		Pagination: pagination.BuildPageInfo(page, total),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Shipment, error) {
	// Ids are positive, so no stored row can match anything else.
	if id <= 0 {
		return domain.Shipment{}, domain.ErrNotFound
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Shipment{}, fmt.Errorf("find shipment: %w", err)
	}
	if item == nil {
		return domain.Shipment{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Export(ctx context.Context, req domain.ExportShipmentRequest, fn func(domain.Shipment) error) error {
	filter := domain.Filter{
		Status:      req.Status,
		Carrier:     req.Carrier,
		Destination: req.Destination,
		Search:      domain.NewSearch(req.Search),
	}

	return s.repo.Stream(ctx, s.db, filter, func(item domain.Shipment) error {
		if err := item.Validate(); err != nil {
			return nil
		}
		return fn(item)
	})
}
