package main

import (
	"github.com/GuiTheDevv/shipping-management/internal/clock"
	"github.com/GuiTheDevv/shipping-management/internal/config"
	"github.com/GuiTheDevv/shipping-management/internal/consolidation"
	"github.com/GuiTheDevv/shipping-management/internal/dashboard"
	"github.com/GuiTheDevv/shipping-management/internal/events"
	"github.com/GuiTheDevv/shipping-management/internal/ingestion"
	"github.com/GuiTheDevv/shipping-management/internal/migration"
	"github.com/GuiTheDevv/shipping-management/internal/observability"
	"github.com/GuiTheDevv/shipping-management/internal/ratelimit"
	"github.com/GuiTheDevv/shipping-management/internal/server"
	"github.com/GuiTheDevv/shipping-management/internal/shipment"
	"github.com/GuiTheDevv/shipping-management/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional Domains
		shipment.Module,
		ingestion.Module,
		consolidation.Module,
		dashboard.Module,

		// Optional brokers, no-ops when unconfigured
		events.Module,
		ratelimit.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
