package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/msomdec/truthguard/internal/config"
	"github.com/msomdec/truthguard/internal/domain"
	"github.com/msomdec/truthguard/internal/repository/postgres"
	"github.com/msomdec/truthguard/internal/repository/sqlite"
	"github.com/spf13/cobra"
)

var (
	configFile string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "truthguard",
	Short:         "TruthGuard fake news detection API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded

		logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
		slog.SetDefault(slog.New(slog.NewMultiHandler(
			slog.NewTextHandler(os.Stdout, logOpts),
			slog.NewJSONHandler(os.Stderr, logOpts),
		)))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default: ./truthguard.yaml if present)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("truthguard failed", "error", err)
		os.Exit(1)
	}
}

// openDatabase opens the configured backend and applies its migrations.
func openDatabase(ctx context.Context, c *config.Config) (domain.Database, error) {
	var (
		db  domain.Database
		err error
	)
	switch c.Database.Driver {
	case config.DriverPostgres:
		db, err = postgres.New(ctx, c.Database.URL, c.Database.Name)
	default:
		db, err = sqlite.New(c.Database.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", c.Database.Driver, err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied", "driver", c.Database.Driver)
	return db, nil
}
