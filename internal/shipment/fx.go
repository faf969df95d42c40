package shipment

import (
	"github.com/GuiTheDevv/shipping-management/internal/shipment/repository"
	"github.com/GuiTheDevv/shipping-management/internal/shipment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("shipment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
