package domain

import (
	"testing"
	"time"

	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func row(id int64, dest shipmentdomain.Destination, carrier shipmentdomain.Carrier, mode shipmentdomain.Mode, status shipmentdomain.Status, arrival, delivered string) shipmentdomain.Shipment {
	s := shipmentdomain.Shipment{
		ShipmentID:  id,
		CustomerID:  100 + id,
		Destination: dest,
		Weight:      5000,
		Volume:      2_000_000,
		Carrier:     carrier,
		Mode:        mode,
		Status:      status,
		ArrivalDate: arrival,
	}
	if delivered != "" {
		s.DeliveredDate = &delivered
	}
	return s
}

var testTuning = Tuning{
	WarehouseName: "Main Warehouse",
	CapacityCm3:   8_000_000,
	AirSLADays:    7,
	SeaSLADays:    30,
}

func sampleRows() []shipmentdomain.Shipment {
	const (
		guy = shipmentdomain.DestinationGUY
		bim = shipmentdomain.DestinationBIM
	)
	return []shipmentdomain.Shipment{
		row(1, guy, shipmentdomain.CarrierFedEx, shipmentdomain.ModeAir, shipmentdomain.StatusReceived, "2024-01-01", ""),
		row(2, guy, shipmentdomain.CarrierFedEx, shipmentdomain.ModeAir, shipmentdomain.StatusDelivered, "2024-01-01", "2024-01-05"),
		row(3, bim, shipmentdomain.CarrierDHL, shipmentdomain.ModeSea, shipmentdomain.StatusDelivered, "2024-01-02", "2024-02-15"),
		row(4, bim, shipmentdomain.CarrierDHL, shipmentdomain.ModeSea, shipmentdomain.StatusInTransit, "2024-01-03", ""),
	}
}

func TestAggregateMetrics(t *testing.T) {
	window := Window{From: day("2024-01-01"), To: day("2024-01-03")}
	payload := Aggregate(sampleRows(), window, Stock{Shipments: 1, VolumeCm3: 2_000_000}, testTuning)

	m := payload.DashboardMetrics
	assert.Equal(t, int64(4), m.TotalShipments)
	assert.Equal(t, int64(2), m.DeliveredShipments)
	assert.Equal(t, int64(1), m.IntransitShipments)
	assert.Equal(t, int64(1), m.ReceivedShipments)
	assert.InDelta(t, 20.0, m.TotalWeight, 1e-9)
	assert.InDelta(t, 8.0, m.TotalVolume, 1e-9)
	assert.InDelta(t, 5.0, m.AvgWeightPerShipment, 1e-9)
	assert.InDelta(t, 2.0, m.AvgVolumePerShipment, 1e-9)
	assert.Equal(t, 50.0, m.DeliveryRate)
	assert.Equal(t, 50.0, m.OnTimeDeliveryRate)

	assert.Equal(t, m.TotalShipments, payload.TotalShipments)
	assert.Equal(t, m.TotalWeight, payload.TotalWeight)
	assert.Equal(t, DateRange{From: "2024-01-01", To: "2024-01-03"}, payload.DateRange)
}

func TestAggregateWarehouse(t *testing.T) {
	window := Window{From: day("2024-01-01"), To: day("2024-01-01")}
	payload := Aggregate(nil, window, Stock{Shipments: 1, VolumeCm3: 2_000_000}, testTuning)

	w := payload.WarehouseUtilization
	assert.Equal(t, "Main Warehouse", w.WarehouseName)
	assert.Equal(t, int64(1), w.ShipmentCount)
	assert.InDelta(t, 2.0, w.TotalVolume, 1e-9)
	assert.InDelta(t, 8.0, w.CapacityVolume, 1e-9)
	assert.InDelta(t, 6.0, w.AvailableVolume, 1e-9)
	assert.Equal(t, 25.0, w.UtilizationPercentage)

	assert.Equal(t, []PieSlice{
		{Name: PieUsed, Value: 25, Volume: 2, Color: PieUsedColor},
		{Name: PieAvailable, Value: 75, Volume: 6, Color: PieAvailableColor},
	}, payload.Charts.WarehouseUtilizationPieChart)

	full := Aggregate(nil, window, Stock{VolumeCm3: 10_000_000}, testTuning)
	assert.Equal(t, 0.0, full.WarehouseUtilization.AvailableVolume)
	assert.Equal(t, 0.0, full.Charts.WarehouseUtilizationPieChart[1].Value)
}

func TestAggregateCharts(t *testing.T) {
	window := Window{From: day("2024-01-01"), To: day("2024-01-03")}
	charts := Aggregate(sampleRows(), window, Stock{}, testTuning).Charts

	require.Len(t, charts.ShipmentModeDistribution, 2)
	assert.Equal(t, ModeDistribution{Mode: "Air", Count: 2, Percentage: 50, Volume: 4, Weight: 10}, charts.ShipmentModeDistribution[0])
	assert.Equal(t, "Sea", charts.ShipmentModeDistribution[1].Mode)

	assert.Equal(t, []CarrierBar{
		{Carrier: "DHL", Date: "2024-01-02", Count: 1, Volume: 2, Weight: 5},
		{Carrier: "DHL", Date: "2024-01-03", Count: 1, Volume: 2, Weight: 5},
		{Carrier: "FEDEX", Date: "2024-01-01", Count: 2, Volume: 4, Weight: 10},
	}, charts.CarrierBarChart)

	require.Len(t, charts.DestinationDistribution, 2)
	bim, guy := charts.DestinationDistribution[0], charts.DestinationDistribution[1]
	assert.Equal(t, "BIM", bim.Destination)
	assert.Equal(t, 50.0, bim.Percentage)
	require.NotNil(t, bim.AvgDeliveryTime)
	assert.Equal(t, 44.0, *bim.AvgDeliveryTime)
	require.NotNil(t, guy.AvgDeliveryTime)
	assert.Equal(t, 4.0, *guy.AvgDeliveryTime)

	require.Len(t, charts.CarrierPerformance, 2)
	dhl, fedex := charts.CarrierPerformance[0], charts.CarrierPerformance[1]
	assert.Equal(t, "DHL", dhl.Carrier)
	assert.Equal(t, int64(2), dhl.TotalShipments)
	assert.Equal(t, int64(1), dhl.DeliveredShipments)
	assert.Equal(t, 0.0, dhl.OnTimeDeliveryRate)
	assert.Equal(t, int64(2), dhl.SeaShipments)
	assert.Equal(t, int64(0), dhl.AirShipments)
	assert.Equal(t, 100.0, fedex.OnTimeDeliveryRate)
	assert.InDelta(t, 10.0, fedex.TotalWeight, 1e-9)

	assert.Equal(t, []CapacityPoint{
		{Date: "2024-01-01", Packages: 2, Volume: 4, CumulativePackages: 2, CumulativeVolume: 4},
		{Date: "2024-01-02", Packages: 1, Volume: 2, CumulativePackages: 3, CumulativeVolume: 6},
		{Date: "2024-01-03", Packages: 1, Volume: 2, CumulativePackages: 4, CumulativeVolume: 8},
	}, charts.WarehouseCapacityTimeline)
}

func TestAggregateEmpty(t *testing.T) {
	window := Window{From: day("2024-01-01"), To: day("2024-01-30")}
	payload := Aggregate(nil, window, Stock{}, testTuning)

	assert.Zero(t, payload.DashboardMetrics.TotalShipments)
	assert.Zero(t, payload.DashboardMetrics.DeliveryRate)
	assert.Zero(t, payload.DashboardMetrics.AvgWeightPerShipment)
	assert.NotNil(t, payload.Charts.CarrierBarChart)
	assert.Empty(t, payload.Charts.DestinationDistribution)
	assert.Len(t, payload.Charts.WarehouseCapacityTimeline, 30)
}

func TestDestinationWithoutDeliveriesHasNoAverage(t *testing.T) {
	window := Window{From: day("2024-01-01"), To: day("2024-01-01")}
	rows := []shipmentdomain.Shipment{
		row(1, shipmentdomain.DestinationSLU, shipmentdomain.CarrierUPS, shipmentdomain.ModeAir, shipmentdomain.StatusReceived, "2024-01-01", ""),
	}
	charts := Aggregate(rows, window, Stock{}, testTuning).Charts
	require.Len(t, charts.DestinationDistribution, 1)
	assert.Nil(t, charts.DestinationDistribution[0].AvgDeliveryTime)
	assert.Nil(t, charts.CarrierPerformance[0].AvgDeliveryTime)
}

func TestDeliveryDays(t *testing.T) {
	delivered := row(1, shipmentdomain.DestinationGUY, shipmentdomain.CarrierUPS, shipmentdomain.ModeAir, shipmentdomain.StatusDelivered, "2024-01-01", "2024-01-08")
	days, ok := DeliveryDays(delivered)
	assert.True(t, ok)
	assert.Equal(t, 7, days)

	early := row(2, shipmentdomain.DestinationGUY, shipmentdomain.CarrierUPS, shipmentdomain.ModeAir, shipmentdomain.StatusDelivered, "2024-01-08", "2024-01-01")
	_, ok = DeliveryDays(early)
	assert.False(t, ok)

	missing := row(3, shipmentdomain.DestinationGUY, shipmentdomain.CarrierUPS, shipmentdomain.ModeAir, shipmentdomain.StatusDelivered, "2024-01-08", "")
	_, ok = DeliveryDays(missing)
	assert.False(t, ok)
}
