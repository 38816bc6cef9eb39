package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// @title Ecom Backend API
// @version 1.0
// @description Session, order and payment API for the storefront.

// @host localhost:8000
// @BasePath /api

// @securityDefinitions.apikey SessionUser
// @in header
// @name X-User-ID
// @description ID of the signed-in user.

// @securityDefinitions.apikey SessionToken
// @in header
// @name X-Session-Token
// @description Session token returned by /signin.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ecom_backend",
	Short:         "Ecom backend server and maintenance commands",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// newLogger creates the JSON logger and sets it as the default.
func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}

func init() {
	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
