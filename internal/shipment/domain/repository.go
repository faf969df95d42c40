package domain

import (
	"context"

	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	// Truncate removes every stored shipment.
	Truncate(ctx context.Context, db *gorm.DB) error
	InsertBatch(ctx context.Context, db *gorm.DB, shipments []Shipment) error

	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Shipment, error)
	List(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Pagination) ([]Shipment, error)
	Count(ctx context.Context, db *gorm.DB, filter Filter) (int64, error)
	// Stream walks every shipment matching filter in ascending id order.
	Stream(ctx context.Context, db *gorm.DB, filter Filter, fn func(Shipment) error) error

	SumVolumeByStatus(ctx context.Context, db *gorm.DB, status Status) (float64, error)
}
