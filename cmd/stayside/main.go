package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/staysidelabs/stayside/internal/availability"
	"github.com/staysidelabs/stayside/internal/booking"
	"github.com/staysidelabs/stayside/internal/catalog"
	"github.com/staysidelabs/stayside/internal/clock"
	"github.com/staysidelabs/stayside/internal/commission"
	"github.com/staysidelabs/stayside/internal/config"
	"github.com/staysidelabs/stayside/internal/identifier"
	"github.com/staysidelabs/stayside/internal/migration"
	"github.com/staysidelabs/stayside/internal/observability"
	"github.com/staysidelabs/stayside/internal/partner"
	"github.com/staysidelabs/stayside/internal/redis"
	"github.com/staysidelabs/stayside/internal/seed"
	"github.com/staysidelabs/stayside/internal/server"
	"github.com/staysidelabs/stayside/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "stayside",
		Short:   "Stayside reservation service",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reservation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the reservation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		identifier.Module,

		catalog.Module,
		availability.Module,
		commission.Module,
		partner.Module,
		booking.Module,
		server.Module,

		fx.Invoke(seed.EnsureDemoUnits),
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func readVersionFromEnv() string {
	version := strings.TrimSpace(os.Getenv("STAYSIDE_VERSION"))
	if version == "" {
		return "dev"
	}
	return version
}
