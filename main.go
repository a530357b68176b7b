package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/retailops/backoffice/cmd"
	"github.com/retailops/backoffice/internal/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.NewConfigurationWithOptionsAndDefaults()

	if err := cmd.NewRootCommand(cfg).Execute(); err != nil {
		zap.S().Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
