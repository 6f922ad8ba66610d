package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/handler"
	"github.com/ozgundoganbatuhan-lang/asansor/internal/middleware"
	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
	"github.com/ozgundoganbatuhan-lang/asansor/prometheus"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()
		log.Info("Starting servisim API...", conf.LogConfig()...)

		if _, err := database.InitDB(&conf.DB); err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		log.Info("Database connection established")

		if err := database.MigrateModels(model.AllModels()...); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}

		handler.Init(conf)

		e := newServer()

		port := conf.Server.Port
		log.Info("Starting server", zap.String("port", port))
		return e.Start(":" + port)
	},
}

// newServer builds the Echo instance with middleware and routes. Split out
// so handler tests can spin up the same stack against a test database.
func newServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Order matters: request ID before logging, logging before metrics
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	registerRoutes(e)
	return e
}
