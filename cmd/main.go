package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ozgundoganbatuhan-lang/asansor/pkg/config"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

var conf *config.Config

var rootCmd = &cobra.Command{
	Use:   "servisim",
	Short: "Field service management API for elevator and white goods companies",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = config.Load("servisim")
		if err != nil {
			return err
		}
		return logger.InitLogger(&logger.LogConfig{
			Level:       conf.Log.Level,
			Environment: conf.Server.Env,
			ServiceName: conf.ServiceName,
		})
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
