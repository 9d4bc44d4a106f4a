package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invio/internal/clock"
	"github.com/smallbiznis/invio/internal/config"
	"github.com/smallbiznis/invio/internal/logger"
	"github.com/smallbiznis/invio/internal/migration"
	"github.com/smallbiznis/invio/internal/server"
	"github.com/smallbiznis/invio/pkg/db"
	"github.com/smallbiznis/invio/pkg/telemetry"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		telemetry.Module,

		// Schema and seed data
		migration.Module,

		// HTTP surface, pulls in the domain modules
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
