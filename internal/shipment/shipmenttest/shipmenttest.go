// Package shipmenttest holds fixtures shared by shipment store tests.
package shipmenttest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// OpenDB returns an isolated in-memory store with the shipments table.
func OpenDB(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.AutoMigrate(append([]any{&domain.Shipment{}}, models...)...); err != nil {
		t.Fatal(err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

// Shipment builds a valid air shipment to GUY via FEDEX.
func Shipment(id int64, opts ...func(*domain.Shipment)) domain.Shipment {
	s := domain.Shipment{
		ShipmentID:  id,
		CustomerID:  100 + id,
		Origin:      Ptr("Miami"),
		Destination: domain.DestinationGUY,
		Weight:      5000,
		Volume:      2_000_000,
		Carrier:     domain.CarrierFedEx,
		Mode:        domain.ModeAir,
		Status:      domain.StatusReceived,
		ArrivalDate: "2024-01-01",
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Seed inserts shipments through the ORM.
func Seed(t testing.TB, conn *gorm.DB, shipments ...domain.Shipment) {
	t.Helper()
	if len(shipments) == 0 {
		return
	}
	if err := conn.Create(&shipments).Error; err != nil {
		t.Fatal(err)
	}
}

func Ptr[T any](v T) *T {
	return &v
}
