package pdf

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	consolidationdomain "github.com/GuiTheDevv/shipping-management/internal/consolidation/domain"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConsolidationReport(t *testing.T) {
	resp := consolidationdomain.Response{
		ConsolidationGroups: []consolidationdomain.Group{{
			ID:               "guy-fedex-air-2024-01-05",
			Destination:      shipmentdomain.DestinationGUY,
			DepartureDate:    "2024-01-05",
			Carrier:          shipmentdomain.CarrierFedEx,
			Mode:             shipmentdomain.ModeAir,
			ShipmentCount:    3,
			TotalWeight:      15,
			TotalVolume:      6,
			PotentialSavings: 34,
		}},
		Summary: consolidationdomain.Summary{
			TotalGroups:    1,
			TotalShipments: 3,
			TopDestination: "GUY",
			TopCarrier:     "FEDEX",
			TopMode:        "air",
		},
		Pagination: pagination.PageInfo{CurrentPage: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 25},
		Filters:    consolidationdomain.Filters{Carrier: "all", Mode: "all", Destination: "all", MinGroupSize: 2},
	}

	r, err := New().GenerateConsolidationReport(context.Background(), ConsolidationReport{
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Groups:      resp,
	})
	require.NoError(t, err)

	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestGenerateConsolidationReportEmpty(t *testing.T) {
	r, err := New().GenerateConsolidationReport(context.Background(), ConsolidationReport{})
	require.NoError(t, err)
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestGenerateConsolidationReportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().GenerateConsolidationReport(ctx, ConsolidationReport{})
	assert.ErrorIs(t, err, context.Canceled)
}
