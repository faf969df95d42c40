package domain

import (
	"time"

	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
)

// NotAvailable fills summary tops when no group qualifies.
const NotAvailable = "N/A"

// UnknownOrigin replaces a missing origin in group details.
const UnknownOrigin = "Unknown"

// Key identifies a consolidation opportunity.
type Key struct {
	Destination   shipmentdomain.Destination
	Carrier       shipmentdomain.Carrier
	Mode          shipmentdomain.Mode
	DepartureDate string
}

// Group is computed on every read and never stored. Weights are in
// kilograms and volumes in cubic meters.
type Group struct {
	ID                   string                     `json:"id"`
	Destination          shipmentdomain.Destination `json:"destination"`
	DepartureDate        string                     `json:"departureDate"`
	Carrier              shipmentdomain.Carrier     `json:"carrier"`
	Mode                 shipmentdomain.Mode        `json:"mode"`
	ShipmentCount        int                        `json:"shipmentCount"`
	TotalWeight          float64                    `json:"totalWeight"`
	TotalVolume          float64                    `json:"totalVolume"`
	PotentialSavings     float64                    `json:"potentialSavings"`
	AvgWeightPerShipment float64                    `json:"avgWeightPerShipment"`
	AvgVolumePerShipment float64                    `json:"avgVolumePerShipment"`
	Shipments            []ShipmentDetail           `json:"shipments,omitempty"`

	members []shipmentdomain.Shipment
}

type ShipmentDetail struct {
	ShipmentID    int64                 `json:"shipment_id"`
	CustomerID    int64                 `json:"customer_id"`
	Origin        string                `json:"origin"`
	Weight        float64               `json:"weight"`
	Volume        float64               `json:"volume"`
	Status        shipmentdomain.Status `json:"status"`
	ArrivalDate   string                `json:"arrival_date"`
	DeliveredDate *string               `json:"delivered_date"`
}

type Summary struct {
	TotalGroups           int     `json:"totalGroups"`
	TotalShipments        int     `json:"totalShipments"`
	TotalPotentialSavings float64 `json:"totalPotentialSavings"`
	AvgShipmentsPerGroup  float64 `json:"avgShipmentsPerGroup"`
	TopDestination        string  `json:"topDestination"`
	TopCarrier            string  `json:"topCarrier"`
	TopMode               string  `json:"topMode"`
}

type Filters struct {
	Carrier      string `json:"carrier"`
	Mode         string `json:"mode"`
	Destination  string `json:"destination"`
	MinGroupSize int    `json:"minGroupSize"`
}

// Pricing is the placeholder savings model: every member saves the
// discount share of the baseline cost.
type Pricing struct {
	BaselineCost float64
	Discount     float64
}

type Request struct {
	Carrier        *shipmentdomain.Carrier
	Mode           *shipmentdomain.Mode
	Destination    *shipmentdomain.Destination
	MinGroupSize   *int
	Page           int
	Limit          int
	IncludeDetails bool
}

type Response struct {
	ConsolidationGroups []Group             `json:"consolidationGroups"`
	Summary             Summary             `json:"summary"`
	Pagination          pagination.PageInfo `json:"pagination"`
	Filters             Filters             `json:"filters"`
	LastUpdated         time.Time           `json:"lastUpdated"`
}
