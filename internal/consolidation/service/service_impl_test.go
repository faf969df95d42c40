package service

import (
	"context"
	"testing"
	"time"

	"github.com/GuiTheDevv/shipping-management/internal/clock"
	"github.com/GuiTheDevv/shipping-management/internal/config"
	"github.com/GuiTheDevv/shipping-management/internal/consolidation/domain"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	shipmentrepository "github.com/GuiTheDevv/shipping-management/internal/shipment/repository"
	"github.com/GuiTheDevv/shipping-management/internal/shipment/shipmenttest"
	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func departing(date string) func(*shipmentdomain.Shipment) {
	return func(s *shipmentdomain.Shipment) { s.DepartureDate = &date }
}

func newService(t *testing.T, tuning config.DashboardConfig, seed ...shipmentdomain.Shipment) domain.Service {
	t.Helper()
	conn := shipmenttest.OpenDB(t)
	shipmenttest.Seed(t, conn, seed...)
	return New(Params{
		DB:        conn,
		Log:       zap.NewNop(),
		Clock:     clock.NewFakeClock(now),
		Dashboard: config.NewStaticDashboardConfigHolder(tuning),
		Shipments: shipmentrepository.Provide(),
	})
}

func TestGetGroupsExample(t *testing.T) {
	svc := newService(t, config.DefaultDashboardConfig(),
		shipmenttest.Shipment(1, departing("2024-01-05")),
		shipmenttest.Shipment(2, departing("2024-01-05")),
		shipmenttest.Shipment(3, departing("2024-01-05")),
		shipmenttest.Shipment(4, departing("2024-01-06")),
		shipmenttest.Shipment(5),
	)

	resp, err := svc.GetGroups(context.Background(), domain.Request{})
	require.NoError(t, err)

	require.Len(t, resp.ConsolidationGroups, 1)
	g := resp.ConsolidationGroups[0]
	assert.Equal(t, "guy-fedex-air-2024-01-05", g.ID)
	assert.Equal(t, 3, g.ShipmentCount)
	assert.InDelta(t, 15.0, g.TotalWeight, 1e-9)
	assert.InDelta(t, 6.0, g.TotalVolume, 1e-9)
	assert.Nil(t, g.Shipments)

	assert.Equal(t, 1, resp.Summary.TotalGroups)
	assert.Equal(t, "GUY", resp.Summary.TopDestination)
	assert.Equal(t, domain.Filters{Carrier: "all", Mode: "all", Destination: "all", MinGroupSize: 2}, resp.Filters)
	assert.Equal(t, pagination.PageInfo{CurrentPage: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 25}, resp.Pagination)
	assert.Equal(t, now, resp.LastUpdated)
}

func TestGetGroupsFiltersAndDetails(t *testing.T) {
	dhl := func(s *shipmentdomain.Shipment) { s.Carrier = shipmentdomain.CarrierDHL }
	svc := newService(t, config.DefaultDashboardConfig(),
		shipmenttest.Shipment(1, departing("2024-01-05")),
		shipmenttest.Shipment(2, departing("2024-01-05")),
		shipmenttest.Shipment(3, departing("2024-01-05"), dhl),
		shipmenttest.Shipment(4, departing("2024-01-05"), dhl),
		shipmenttest.Shipment(5, departing("2024-01-05"), dhl),
	)

	carrier := shipmentdomain.CarrierFedEx
	resp, err := svc.GetGroups(context.Background(), domain.Request{
		Carrier:        &carrier,
		IncludeDetails: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.ConsolidationGroups, 1)
	assert.Equal(t, shipmentdomain.CarrierFedEx, resp.ConsolidationGroups[0].Carrier)
	require.Len(t, resp.ConsolidationGroups[0].Shipments, 2)
	assert.Equal(t, "Miami", resp.ConsolidationGroups[0].Shipments[0].Origin)
	assert.Equal(t, "FEDEX", resp.Filters.Carrier)
}

func TestGetGroupsMinGroupSize(t *testing.T) {
	svc := newService(t, config.DefaultDashboardConfig(),
		shipmenttest.Shipment(1, departing("2024-01-05")),
		shipmenttest.Shipment(2, departing("2024-01-06")),
	)

	resp, err := svc.GetGroups(context.Background(), domain.Request{})
	require.NoError(t, err)
	assert.Empty(t, resp.ConsolidationGroups)
	assert.NotNil(t, resp.ConsolidationGroups)
	assert.Equal(t, domain.NotAvailable, resp.Summary.TopCarrier)

	one := 1
	resp, err = svc.GetGroups(context.Background(), domain.Request{MinGroupSize: &one})
	require.NoError(t, err)
	assert.Len(t, resp.ConsolidationGroups, 2)
	assert.Equal(t, 1, resp.Filters.MinGroupSize)

	zero := 0
	_, err = svc.GetGroups(context.Background(), domain.Request{MinGroupSize: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidMinGroupSize)
}

func TestGetGroupsRejectsUnreachablePage(t *testing.T) {
	svc := newService(t, config.DefaultDashboardConfig(),
		shipmenttest.Shipment(1, departing("2024-01-05")),
		shipmenttest.Shipment(2, departing("2024-01-05")),
	)

	_, err := svc.GetGroups(context.Background(), domain.Request{Page: 1 << 62, Limit: 4})
	assert.ErrorIs(t, err, pagination.ErrInvalidPage)

	resp, err := svc.GetGroups(context.Background(), domain.Request{Page: 2, Limit: 4})
	require.NoError(t, err)
	assert.Empty(t, resp.ConsolidationGroups)
	assert.True(t, resp.Pagination.HasPreviousPage)
}

func TestGetGroupsUsesTuning(t *testing.T) {
	tuning := config.DefaultDashboardConfig()
	tuning.BaselineCost = 100
	tuning.ConsolidationDiscount = 0.5
	tuning.DefaultMinGroupSize = 3
	svc := newService(t, tuning,
		shipmenttest.Shipment(1, departing("2024-01-05")),
		shipmenttest.Shipment(2, departing("2024-01-05")),
		shipmenttest.Shipment(3, departing("2024-01-05")),
		shipmenttest.Shipment(4, departing("2024-01-07")),
		shipmenttest.Shipment(5, departing("2024-01-07")),
	)

	resp, err := svc.GetGroups(context.Background(), domain.Request{})
	require.NoError(t, err)
	require.Len(t, resp.ConsolidationGroups, 1)
	assert.Equal(t, 150.0, resp.ConsolidationGroups[0].PotentialSavings)
	assert.Equal(t, 3, resp.Filters.MinGroupSize)
}

func TestGetGroupsPagination(t *testing.T) {
	seed := make([]shipmentdomain.Shipment, 0, 6)
	for i, date := range []string{"2024-01-01", "2024-01-01", "2024-01-02", "2024-01-02", "2024-01-03", "2024-01-03"} {
		seed = append(seed, shipmenttest.Shipment(int64(i+1), departing(date)))
	}
	svc := newService(t, config.DefaultDashboardConfig(), seed...)

	resp, err := svc.GetGroups(context.Background(), domain.Request{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.ConsolidationGroups, 1)
	assert.Equal(t, "2024-01-03", resp.ConsolidationGroups[0].DepartureDate)
	assert.Equal(t, 3, resp.Summary.TotalGroups)
	assert.True(t, resp.Pagination.HasPreviousPage)
	assert.False(t, resp.Pagination.HasNextPage)
	assert.Equal(t, 2, resp.Pagination.TotalPages)

	_, err = svc.GetGroups(context.Background(), domain.Request{Limit: 501})
	assert.ErrorIs(t, err, pagination.ErrInvalidLimit)
}
