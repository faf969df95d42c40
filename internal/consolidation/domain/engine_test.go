package domain

import (
	"testing"

	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultPricing = Pricing{BaselineCost: 75, Discount: 0.15}

func shipment(id int64, dest shipmentdomain.Destination, carrier shipmentdomain.Carrier, mode shipmentdomain.Mode, departure string) shipmentdomain.Shipment {
	s := shipmentdomain.Shipment{
		ShipmentID:  id,
		CustomerID:  100 + id,
		Destination: dest,
		Weight:      5000,
		Volume:      2_000_000,
		Carrier:     carrier,
		Mode:        mode,
		Status:      shipmentdomain.StatusReceived,
		ArrivalDate: "2024-01-01",
	}
	if departure != "" {
		s.DepartureDate = &departure
	}
	return s
}

func TestBuildGroupsExample(t *testing.T) {
	const (
		guy   = shipmentdomain.DestinationGUY
		fedex = shipmentdomain.CarrierFedEx
		air   = shipmentdomain.ModeAir
	)
	rows := []shipmentdomain.Shipment{
		shipment(1, guy, fedex, air, "2024-01-05"),
		shipment(2, guy, fedex, air, "2024-01-05"),
		shipment(3, guy, fedex, air, "2024-01-05"),
		shipment(4, guy, fedex, air, "2024-01-06"),
		shipment(5, guy, fedex, air, ""),
	}

	groups := BuildGroups(rows, 2, defaultPricing)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "guy-fedex-air-2024-01-05", g.ID)
	assert.Equal(t, 3, g.ShipmentCount)
	assert.InDelta(t, 15.0, g.TotalWeight, 1e-9)
	assert.InDelta(t, 6.0, g.TotalVolume, 1e-9)
	assert.InDelta(t, 5.0, g.AvgWeightPerShipment, 1e-9)
	assert.InDelta(t, 2.0, g.AvgVolumePerShipment, 1e-9)
	assert.Equal(t, 34.0, g.PotentialSavings)
	assert.Empty(t, g.Shipments)

	all := BuildGroups(rows, 1, defaultPricing)
	assert.Len(t, all, 2, "shipments without departure never group")
}

func TestPotentialSavings(t *testing.T) {
	assert.Equal(t, 45.0, PotentialSavings(4, defaultPricing))
	assert.Equal(t, 11.0, PotentialSavings(1, defaultPricing))
	assert.Equal(t, 0.0, PotentialSavings(4, Pricing{BaselineCost: 75}))
}

func TestBuildGroupsOrdering(t *testing.T) {
	rows := []shipmentdomain.Shipment{
		shipment(1, shipmentdomain.DestinationSLU, shipmentdomain.CarrierDHL, shipmentdomain.ModeSea, "2024-02-01"),
		shipment(2, shipmentdomain.DestinationSLU, shipmentdomain.CarrierDHL, shipmentdomain.ModeSea, "2024-02-01"),
		shipment(3, shipmentdomain.DestinationBIM, shipmentdomain.CarrierUPS, shipmentdomain.ModeAir, "2024-01-10"),
		shipment(4, shipmentdomain.DestinationBIM, shipmentdomain.CarrierUPS, shipmentdomain.ModeAir, "2024-01-10"),
		shipment(5, shipmentdomain.DestinationGUY, shipmentdomain.CarrierFedEx, shipmentdomain.ModeAir, "2024-03-01"),
		shipment(6, shipmentdomain.DestinationGUY, shipmentdomain.CarrierFedEx, shipmentdomain.ModeAir, "2024-03-01"),
		shipment(7, shipmentdomain.DestinationGUY, shipmentdomain.CarrierFedEx, shipmentdomain.ModeAir, "2024-03-01"),
		shipment(8, shipmentdomain.DestinationANU, shipmentdomain.CarrierUPS, shipmentdomain.ModeAir, "2024-01-10"),
		shipment(9, shipmentdomain.DestinationANU, shipmentdomain.CarrierUPS, shipmentdomain.ModeAir, "2024-01-10"),
	}

	groups := BuildGroups(rows, 2, defaultPricing)
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{
		"guy-fedex-air-2024-03-01",
		"anu-ups-air-2024-01-10",
		"bim-ups-air-2024-01-10",
		"slu-dhl-sea-2024-02-01",
	}, ids)
}

func TestWithDetails(t *testing.T) {
	delivered := "2024-01-09"
	a := shipment(1, shipmentdomain.DestinationGUY, shipmentdomain.CarrierFedEx, shipmentdomain.ModeAir, "2024-01-05")
	a.Origin = nil
	a.DeliveredDate = &delivered
	a.Status = shipmentdomain.StatusDelivered
	origin := "Miami"
	b := shipment(2, shipmentdomain.DestinationGUY, shipmentdomain.CarrierFedEx, shipmentdomain.ModeAir, "2024-01-05")
	b.Origin = &origin

	groups := BuildGroups([]shipmentdomain.Shipment{a, b}, 2, defaultPricing)
	require.Len(t, groups, 1)

	detailed := WithDetails(groups[0])
	require.Len(t, detailed.Shipments, 2)
	assert.Equal(t, UnknownOrigin, detailed.Shipments[0].Origin)
	assert.Equal(t, "Miami", detailed.Shipments[1].Origin)
	assert.InDelta(t, 5.0, detailed.Shipments[0].Weight, 1e-9)
	assert.InDelta(t, 2.0, detailed.Shipments[0].Volume, 1e-9)
	assert.Equal(t, &delivered, detailed.Shipments[0].DeliveredDate)
	assert.Empty(t, groups[0].Shipments, "source group is left untouched")
}

func TestSummarize(t *testing.T) {
	empty := Summarize(nil)
	assert.Equal(t, Summary{
		TopDestination: NotAvailable,
		TopCarrier:     NotAvailable,
		TopMode:        NotAvailable,
	}, empty)

	groups := []Group{
		{Destination: shipmentdomain.DestinationSLU, Carrier: shipmentdomain.CarrierUPS, Mode: shipmentdomain.ModeSea, ShipmentCount: 2, PotentialSavings: 23},
		{Destination: shipmentdomain.DestinationBIM, Carrier: shipmentdomain.CarrierDHL, Mode: shipmentdomain.ModeAir, ShipmentCount: 3, PotentialSavings: 34},
		{Destination: shipmentdomain.DestinationBIM, Carrier: shipmentdomain.CarrierUPS, Mode: shipmentdomain.ModeSea, ShipmentCount: 2, PotentialSavings: 23},
	}
	summary := Summarize(groups)
	assert.Equal(t, 3, summary.TotalGroups)
	assert.Equal(t, 7, summary.TotalShipments)
	assert.Equal(t, 80.0, summary.TotalPotentialSavings)
	assert.Equal(t, 2.33, summary.AvgShipmentsPerGroup)
	assert.Equal(t, "BIM", summary.TopDestination)
	assert.Equal(t, "UPS", summary.TopCarrier)
	assert.Equal(t, "sea", summary.TopMode)
}

func TestSummarizeTieBreaksLexicographically(t *testing.T) {
	groups := []Group{
		{Destination: shipmentdomain.DestinationSLU, Carrier: shipmentdomain.CarrierUPS, Mode: shipmentdomain.ModeSea, ShipmentCount: 2},
		{Destination: shipmentdomain.DestinationBIM, Carrier: shipmentdomain.CarrierDHL, Mode: shipmentdomain.ModeAir, ShipmentCount: 2},
	}
	summary := Summarize(groups)
	assert.Equal(t, "BIM", summary.TopDestination)
	assert.Equal(t, "DHL", summary.TopCarrier)
	assert.Equal(t, "air", summary.TopMode)
}

func TestBuildGroupsKeepsIDsUnique(t *testing.T) {
	const (
		guy   = shipmentdomain.DestinationGUY
		fedex = shipmentdomain.CarrierFedEx
		air   = shipmentdomain.ModeAir
	)
	rows := []shipmentdomain.Shipment{
		shipment(1, guy, fedex, air, "2024/01/05"),
		shipment(2, guy, fedex, air, "2024/01/05"),
		shipment(3, guy, fedex, air, "2024-01-05"),
		shipment(4, guy, fedex, air, "2024-01-05"),
		shipment(5, guy, fedex, air, "2024-01-05"),
	}

	groups := BuildGroups(rows, 2, defaultPricing)
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-01-05", groups[0].DepartureDate)
	assert.Equal(t, "guy-fedex-air-2024-01-05", groups[0].ID)
	assert.Equal(t, "2024/01/05", groups[1].DepartureDate)
	assert.Equal(t, "guy-fedex-air-2024-01-05-2", groups[1].ID)

	// Ids do not depend on the size threshold.
	only := BuildGroups(rows[:3], 2, defaultPricing)
	require.Len(t, only, 1)
	assert.Equal(t, "2024/01/05", only[0].DepartureDate)
	assert.Equal(t, "guy-fedex-air-2024-01-05-2", only[0].ID)
}
