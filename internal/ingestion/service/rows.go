package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
)

const (
	colShipmentID = iota
	colCustomerID
	colOrigin
	colDestination
	colWeight
	colVolume
	colCarrier
	colMode
	colStatus
	colArrivalDate
	colDepartureDate
	colDeliveredDate
)

// classifyRow validates one positional record. It returns the bucket the
// row lands in and, for BucketValid, the normalized shipment.
func classifyRow(record []string) (shipmentdomain.Shipment, string) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	shipmentID, ok := parseID(field(colShipmentID))
	if !ok {
		return shipmentdomain.Shipment{}, domain.BucketInvalidID
	}

	origin := field(colOrigin)
	destination := field(colDestination)
	carrier := field(colCarrier)
	mode := field(colMode)
	status := field(colStatus)
	arrival := field(colArrivalDate)

	customerID, customerOK := parseID(field(colCustomerID))
	weight, weightOK := parsePositive(field(colWeight))
	volume, volumeOK := parsePositive(field(colVolume))

	if origin == "" || destination == "" || carrier == "" || mode == "" || status == "" || arrival == "" ||
		!customerOK || !weightOK || !volumeOK {
		return shipmentdomain.Shipment{}, domain.BucketMissingField
	}

	shipment := shipmentdomain.Shipment{
		ShipmentID:    shipmentID,
		CustomerID:    customerID,
		Origin:        &origin,
		Destination:   shipmentdomain.Destination(destination),
		Weight:        weight,
		Volume:        volume,
		Carrier:       shipmentdomain.Carrier(carrier),
		Mode:          shipmentdomain.Mode(mode),
		Status:        shipmentdomain.Status(status),
		ArrivalDate:   arrival,
		DepartureDate: optional(field(colDepartureDate)),
		DeliveredDate: optional(field(colDeliveredDate)),
	}
	if !shipment.Destination.Valid() || !shipment.Carrier.Valid() || !shipment.Mode.Valid() || !shipment.Status.Valid() {
		return shipmentdomain.Shipment{}, domain.BucketInvalidEnum
	}

	return shipment, domain.BucketValid
}

// parseID accepts positive whole numbers, including forms such as "12.0"
// that spreadsheet exports produce.
func parseID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, id > 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f <= 0 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func parsePositive(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
