package consolidation

import (
	"github.com/GuiTheDevv/shipping-management/internal/consolidation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("consolidation.service",
	fx.Provide(service.New),
)
