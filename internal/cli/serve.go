package cli

import (
	"context"

	"quizapp_backend/internal/app"
	"quizapp_backend/internal/config"

	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the HTTP server.
func NewServeCmd(configPath *string) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, migrate)
		},
	}
	// 启动时强制执行数据库迁移（即使是 release 模式）
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run AutoMigrate on startup even in release mode")
	return cmd
}

func runServer(ctx context.Context, configPath string, migrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.ForceMigrate = migrate

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
