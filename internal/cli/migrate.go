package cli

import (
	"fmt"

	"quizapp_backend/internal/config"
	"quizapp_backend/pkg/database"
	"quizapp_backend/pkg/logger"

	"github.com/spf13/cobra"
)

// NewMigrateCmd applies the schema and exits.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(*configPath)
		},
	}
}

func runMigrations(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Driver != config.DriverMySQL {
		return fmt.Errorf("migrations require the %s driver, got %q", config.DriverMySQL, cfg.Database.Driver)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	return database.Migrate(db)
}
