package ratelimit

import (
	"github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.limit",
	fx.Provide(
		NewRedisClient,
		NewUploadGuard,
		ingestLocker,
	),
)

func ingestLocker(g *UploadGuard) domain.Locker {
	if !g.Enabled() {
		return nil
	}
	return g
}
