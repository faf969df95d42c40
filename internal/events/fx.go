package events

import (
	"github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("events",
	fx.Provide(
		NewPublisher,
		reloadPublisher,
	),
)

func reloadPublisher(p *Publisher) domain.Publisher {
	if !p.Enabled() {
		return nil
	}
	return p
}
