package main

import (
	"context"
	"fmt"
	"os"

	"agora/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agora",
		Short: "Federated community server",
		Long: `agora serves communities that local users can follow and post to.
New posts get a federated id, notify linked pages and are broadcast to realtime subscribers.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap لاگر و تنظیمات مشترک همه‌ی زیرفرمان‌ها
func bootstrap() (*config.Settings, *zap.Logger, error) {
	logger, err := config.NewLogger(os.Getenv("APP_ENV"))
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	settings, err := config.Load(logger)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}
	return settings, logger, nil
}
