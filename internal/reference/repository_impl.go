package reference

import (
	"context"
	"sort"

	"github.com/GuiTheDevv/shipping-management/internal/reference/domain"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
)

var carrierNames = map[shipmentdomain.Carrier]string{
	shipmentdomain.CarrierFedEx:  "FedEx",
	shipmentdomain.CarrierDHL:    "DHL",
	shipmentdomain.CarrierUSPS:   "USPS",
	shipmentdomain.CarrierUPS:    "UPS",
	shipmentdomain.CarrierAmazon: "Amazon",
}

var statusNames = map[shipmentdomain.Status]string{
	shipmentdomain.StatusReceived:  "Received",
	shipmentdomain.StatusInTransit: "In Transit",
	shipmentdomain.StatusDelivered: "Delivered",
}

// repository serves the closed code sets of the shipment model.
type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) ListDestinations(ctx context.Context) ([]domain.Option, error) {
	out := make([]domain.Option, 0, len(shipmentdomain.Destinations))
	for _, d := range shipmentdomain.Destinations {
		out = append(out, domain.Option{Code: string(d), Name: d.Name()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *repository) ListCarriers(ctx context.Context) ([]domain.Option, error) {
	out := make([]domain.Option, 0, len(shipmentdomain.Carriers))
	for _, c := range shipmentdomain.Carriers {
		out = append(out, domain.Option{Code: string(c), Name: carrierNames[c]})
	}
	return out, nil
}

func (r *repository) ListModes(ctx context.Context) ([]domain.Option, error) {
	out := make([]domain.Option, 0, len(shipmentdomain.Modes))
	for _, m := range shipmentdomain.Modes {
		out = append(out, domain.Option{Code: string(m), Name: m.Label()})
	}
	return out, nil
}

func (r *repository) ListStatuses(ctx context.Context) ([]domain.Option, error) {
	out := make([]domain.Option, 0, len(shipmentdomain.Statuses))
	for _, s := range shipmentdomain.Statuses {
		out = append(out, domain.Option{Code: string(s), Name: statusNames[s]})
	}
	return out, nil
}
