package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/usergroups/internal/clock"
	"github.com/smallbiznis/usergroups/internal/config"
	"github.com/smallbiznis/usergroups/internal/group"
	"github.com/smallbiznis/usergroups/internal/logger"
	"github.com/smallbiznis/usergroups/internal/migration"
	obsmetrics "github.com/smallbiznis/usergroups/internal/observability/metrics"
	"github.com/smallbiznis/usergroups/internal/providers/email"
	"github.com/smallbiznis/usergroups/internal/server"
	"github.com/smallbiznis/usergroups/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		email.Module,
		group.Module,

		fx.Provide(obsmetrics.NewHTTPMetrics),
		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterRoutes()
		}),
		fx.Invoke(server.RunHTTP),
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
