package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()

		if _, err := database.InitDB(&conf.DB); err != nil {
			return err
		}

		if err := database.MigrateModels(model.AllModels()...); err != nil {
			return err
		}

		log.Info("Migrations completed", zap.Int("models", len(model.AllModels())))
		return nil
	},
}
