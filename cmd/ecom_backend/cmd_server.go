package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lcodev/ecom_backend/internal/handlers"
	"github.com/lcodev/ecom_backend/internal/middleware"
	"github.com/lcodev/ecom_backend/internal/platform/config"
	"github.com/spf13/cobra"
)

var skipMigrations bool

// ecom_backend serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := bootstrap(ctx, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		if app.cfg.StorageDriver == config.StoragePostgres && !skipMigrations {
			logger.Info("Running database migrations...")
			if err := runMigrationsUp(app.cfg, logger); err != nil {
				return err
			}
		}

		return serve(ctx, app)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
}

func newRouter(app *application) (*gin.Engine, error) {
	if app.cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, analytics)
	r.Use(
		middleware.StructuredLoggingMiddleware(app.logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     app.cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderUserID, middleware.HeaderSessionToken},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.PosthogMiddleware(app.tracker),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	if app.cfg.APIRateLimit != "" {
		apiLimiter, err := middleware.NewLimiter(app.cfg.APIRateLimit, app.cfg.RedisURL, "api")
		if err != nil {
			return nil, err
		}
		r.Use(middleware.GinMiddlewarize(apiLimiter))
	}

	signInLimiter, err := middleware.NewLimiter(app.cfg.SignInRateLimit, app.cfg.RedisURL, "signin")
	if err != nil {
		return nil, err
	}

	if err := handlers.RegisterRoutes(r, app.cfg, app.services, signInLimiter); err != nil {
		return nil, err
	}
	return r, nil
}

func serve(ctx context.Context, app *application) error {
	r, err := newRouter(app)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + app.cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("Server starting", slog.String("port", app.cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
