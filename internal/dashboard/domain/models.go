package domain

import "time"

// DateLayout is the calendar date form shared by query parameters and
// stored arrival dates.
const DateLayout = "2006-01-02"

// DefaultWindowDays is the inclusive length of the default date range.
const DefaultWindowDays = 30

const (
	PieUsed           = "Used"
	PieAvailable      = "Available"
	PieUsedColor      = "#FF6B6B"
	PieAvailableColor = "#4ECDC4"
)

type Request struct {
	DateFrom string
	DateTo   string
}

// Window is an inclusive range of UTC calendar dates.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Days() int {
	return int(w.To.Sub(w.From).Hours()/24) + 1
}

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Payload is the dashboard response. Weights are in kilograms and volumes in
// cubic meters.
type Payload struct {
	TotalShipments     int64   `json:"totalShipments"`
	DeliveredShipments int64   `json:"deliveredShipments"`
	IntransitShipments int64   `json:"intransitShipments"`
	ReceivedShipments  int64   `json:"receivedShipments"`
	TotalVolume        float64 `json:"totalVolume"`
	TotalWeight        float64 `json:"totalWeight"`

	DashboardMetrics     Metrics              `json:"dashboardMetrics"`
	WarehouseUtilization WarehouseUtilization `json:"warehouseUtilization"`
	Charts               Charts               `json:"charts"`
	DateRange            DateRange            `json:"dateRange"`
	LastUpdated          time.Time            `json:"lastUpdated"`
}

type Metrics struct {
	TotalShipments       int64   `json:"totalShipments"`
	DeliveredShipments   int64   `json:"deliveredShipments"`
	IntransitShipments   int64   `json:"intransitShipments"`
	ReceivedShipments    int64   `json:"receivedShipments"`
	TotalVolume          float64 `json:"totalVolume"`
	TotalWeight          float64 `json:"totalWeight"`
	AvgVolumePerShipment float64 `json:"avgVolumePerShipment"`
	AvgWeightPerShipment float64 `json:"avgWeightPerShipment"`
	DeliveryRate         float64 `json:"deliveryRate"`
	OnTimeDeliveryRate   float64 `json:"onTimeDeliveryRate"`
}

type WarehouseUtilization struct {
	WarehouseName         string  `json:"warehouseName"`
	TotalVolume           float64 `json:"totalVolume"`
	ShipmentCount         int64   `json:"shipmentCount"`
	CapacityVolume        float64 `json:"capacityVolume"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	AvailableVolume       float64 `json:"availableVolume"`
}

type Charts struct {
	WarehouseUtilizationPieChart []PieSlice                `json:"warehouseUtilizationPieChart"`
	ShipmentModeDistribution     []ModeDistribution        `json:"shipmentModeDistribution"`
	CarrierBarChart              []CarrierBar              `json:"carrierBarChart"`
	WarehouseCapacityTimeline    []CapacityPoint           `json:"warehouseCapacityTimeline"`
	DestinationDistribution      []DestinationDistribution `json:"destinationDistribution"`
	CarrierPerformance           []CarrierPerformance      `json:"carrierPerformance"`
}

type PieSlice struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Volume float64 `json:"volume"`
	Color  string  `json:"color"`
}

type ModeDistribution struct {
	Mode       string  `json:"mode"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
	Volume     float64 `json:"volume"`
	Weight     float64 `json:"weight"`
}

type CarrierBar struct {
	Carrier string  `json:"carrier"`
	Date    string  `json:"date"`
	Count   int64   `json:"count"`
	Volume  float64 `json:"volume"`
	Weight  float64 `json:"weight"`
}

type CapacityPoint struct {
	Date               string  `json:"date"`
	Packages           int64   `json:"packages"`
	Volume             float64 `json:"volume"`
	CumulativePackages int64   `json:"cumulativePackages"`
	CumulativeVolume   float64 `json:"cumulativeVolume"`
}

type DestinationDistribution struct {
	Destination     string   `json:"destination"`
	Count           int64    `json:"count"`
	Percentage      float64  `json:"percentage"`
	Volume          float64  `json:"volume"`
	Weight          float64  `json:"weight"`
	AvgDeliveryTime *float64 `json:"avgDeliveryTime"`
}

type CarrierPerformance struct {
	Carrier            string   `json:"carrier"`
	TotalShipments     int64    `json:"totalShipments"`
	DeliveredShipments int64    `json:"deliveredShipments"`
	AvgDeliveryTime    *float64 `json:"avgDeliveryTime"`
	OnTimeDeliveryRate float64  `json:"onTimeDeliveryRate"`
	TotalVolume        float64  `json:"totalVolume"`
	TotalWeight        float64  `json:"totalWeight"`
	AirShipments       int64    `json:"airShipments"`
	SeaShipments       int64    `json:"seaShipments"`
}
