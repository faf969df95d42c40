package pdf

import (
	"context"
	"io"
	"time"

	consolidationdomain "github.com/GuiTheDevv/shipping-management/internal/consolidation/domain"
)

// ConsolidationReport is one rendered page of consolidation groups.
type ConsolidationReport struct {
	Title       string
	GeneratedAt time.Time
	Groups      consolidationdomain.Response
}

type Provider interface {
	GenerateConsolidationReport(ctx context.Context, report ConsolidationReport) (io.Reader, error)
}
