package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lcodev/ecom_backend/internal/platform/config"
	"github.com/lcodev/ecom_backend/pkg/database"
	"github.com/spf13/cobra"
)

var rollbackSteps int

func openMigrator(cfg *config.Config) (*database.Migrator, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		return nil, errors.New("migrations need STORAGE_DRIVER=postgres")
	}
	return database.NewMigrator(cfg.DatabaseURL, cfg.MigrationsURL)
}

func runMigrationsUp(cfg *config.Config, logger *slog.Logger) error {
	m, err := openMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			logger.Error("Error closing migrator", slog.String("error", cerr.Error()))
		}
	}()
	return m.Up(logger)
}

// ecom_backend migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return runMigrationsUp(cfg, logger)
	},
}

// ecom_backend migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		m, err := openMigrator(cfg)
		if err != nil {
			return err
		}
		defer m.Close()
		return m.Down(rollbackSteps, logger)
	},
}

// ecom_backend migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		m, err := openMigrator(cfg)
		if err != nil {
			return err
		}
		defer m.Close()

		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

// ecom_backend seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin superuser from ADMIN_EMAIL and ADMIN_PASSWORD",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := context.Background()

		app, err := bootstrap(ctx, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		if app.cfg.AdminEmail == "" || app.cfg.AdminPassword == "" {
			return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		}

		admin, created, err := app.services.User.EnsureAdmin(ctx, app.cfg.AdminEmail, app.cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		if created {
			logger.Info("Admin user created", slog.String("user_id", admin.UserID))
		} else {
			logger.Info("Admin user already exists", slog.String("user_id", admin.UserID))
		}
		return nil
	},
}

func init() {
	migrateRollbackCmd.Flags().IntVar(&rollbackSteps, "steps", 1, "number of migrations to roll back")
}
