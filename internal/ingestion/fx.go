package ingestion

import (
	"github.com/GuiTheDevv/shipping-management/internal/ingestion/repository"
	"github.com/GuiTheDevv/shipping-management/internal/ingestion/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ingestion.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
