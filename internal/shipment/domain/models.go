package domain

import "fmt"

// Shipment is a stored shipment row. Weight is in grams and volume in
// cubic centimeters.
type Shipment struct {
	ShipmentID    int64       `gorm:"column:shipment_id;primaryKey;autoIncrement:false" json:"shipment_id"`
	CustomerID    int64       `gorm:"column:customer_id;not null;index" json:"customer_id"`
	Origin        *string     `gorm:"column:origin" json:"origin"`
	Destination   Destination `gorm:"column:destination;type:varchar(8);not null;index" json:"destination"`
	Weight        float64     `gorm:"column:weight;not null" json:"weight"`
	Volume        float64     `gorm:"column:volume;not null" json:"volume"`
	Carrier       Carrier     `gorm:"column:carrier;type:varchar(16);not null;index" json:"carrier"`
	Mode          Mode        `gorm:"column:mode;type:varchar(8);not null" json:"mode"`
	Status        Status      `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	ArrivalDate   string      `gorm:"column:arrival_date;type:varchar(32);not null;index" json:"arrival_date"`
	DepartureDate *string     `gorm:"column:departure_date;type:varchar(32)" json:"departure_date"`
	DeliveredDate *string     `gorm:"column:delivered_date;type:varchar(32)" json:"delivered_date"`
}

func (Shipment) TableName() string {
	return "shipments"
}

// Validate checks the stored row against the domain enums.
func (s Shipment) Validate() error {
	switch {
	case s.ShipmentID <= 0:
		return fmt.Errorf("%w: shipment_id %d", ErrInvalidRow, s.ShipmentID)
	case s.CustomerID <= 0:
		return fmt.Errorf("%w: customer_id %d", ErrInvalidRow, s.CustomerID)
	case !s.Destination.Valid():
		return fmt.Errorf("%w: destination %q", ErrInvalidRow, s.Destination)
	case !s.Carrier.Valid():
		return fmt.Errorf("%w: carrier %q", ErrInvalidRow, s.Carrier)
	case !s.Mode.Valid():
		return fmt.Errorf("%w: mode %q", ErrInvalidRow, s.Mode)
	case !s.Status.Valid():
		return fmt.Errorf("%w: status %q", ErrInvalidRow, s.Status)
	}
	return nil
}

// OriginOr returns the origin or fallback when absent.
func (s Shipment) OriginOr(fallback string) string {
	if s.Origin == nil || *s.Origin == "" {
		return fallback
	}
	return *s.Origin
}

func (s Shipment) Departure() string {
	if s.DepartureDate == nil {
		return ""
	}
	return *s.DepartureDate
}

func (s Shipment) Delivered() string {
	if s.DeliveredDate == nil {
		return ""
	}
	return *s.DeliveredDate
}
