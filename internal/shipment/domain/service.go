package domain

import (
	"context"

	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
)

type ListShipmentRequest struct {
	Status      *Status
	Carrier     *Carrier
	Destination *Destination
	Search      string
	Page        int
	Limit       int
}

type ListShipmentResponse struct {
	Shipments  []Shipment          `json:"shipments"`
	Pagination pagination.PageInfo `json:"pagination"`
}

type ExportShipmentRequest struct {
	Status      *Status
	Carrier     *Carrier
	Destination *Destination
	Search      string
}

type Service interface {
	List(context.Context, ListShipmentRequest) (ListShipmentResponse, error)
	GetByID(ctx context.Context, id int64) (Shipment, error)
	// Export walks every matching shipment in ascending id order.
	Export(ctx context.Context, req ExportShipmentRequest, fn func(Shipment) error) error
}
