package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitConversion(t *testing.T) {
	assert.Equal(t, 5.0, Kilograms(5000))
	assert.Equal(t, 2.0, CubicMeters(2_000_000))
	assert.Equal(t, 0.0, Percent(3, 0))
	assert.Equal(t, 33.33, Percent(1, 3))
	assert.Equal(t, 66.67, Percent(2, 3))
}

func TestParseFilters(t *testing.T) {
	status, err := ParseStatus("all")
	require.NoError(t, err)
	assert.Nil(t, status)

	status, err = ParseStatus("Delivered")
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, StatusDelivered, *status)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	carrier, err := ParseCarrier("fedex")
	require.NoError(t, err)
	assert.Equal(t, CarrierFedEx, *carrier)

	_, err = ParseDestination("XYZ")
	assert.ErrorIs(t, err, ErrInvalidDestination)

	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Nil(t, mode)
	assert.Equal(t, "all", FilterLabel(mode))
	assert.Equal(t, "FEDEX", FilterLabel(carrier))
}

func TestNewSearch(t *testing.T) {
	assert.Nil(t, NewSearch("   "))

	numeric := NewSearch(" 1042 ")
	require.NotNil(t, numeric)
	require.NotNil(t, numeric.NumericID)
	assert.Equal(t, int64(1042), *numeric.NumericID)

	named := NewSearch("saint")
	require.NotNil(t, named)
	assert.Nil(t, named.NumericID)
	assert.ElementsMatch(t, []Destination{DestinationSVG, DestinationSLU, DestinationSKN, DestinationFSXM}, named.Destinations)
}

func TestShipmentValidate(t *testing.T) {
	valid := Shipment{
		ShipmentID:  1,
		CustomerID:  2,
		Destination: DestinationANU,
		Carrier:     CarrierUPS,
		Mode:        ModeSea,
		Status:      StatusInTransit,
		ArrivalDate: "2024-01-01",
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Mode = "rail"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRow)

	assert.Equal(t, "Unknown", valid.OriginOr("Unknown"))
	assert.Equal(t, "Sea", ModeSea.Label())
	assert.Equal(t, "Antigua and Barbuda", DestinationANU.Name())
}
