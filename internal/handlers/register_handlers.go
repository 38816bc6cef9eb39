package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lcodev/ecom_backend/cmd/docs"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/middleware"
	"github.com/lcodev/ecom_backend/internal/platform/config"
	"github.com/lcodev/ecom_backend/internal/platform/metrics"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// signInLimiter may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	signInLimiter *limiter.Limiter,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	setupAPIRoutes(r, services, signInLimiter)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// RegisterValidators installs the custom binding rules. Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("legacyemail", func(fl validator.FieldLevel) bool {
		return domain.IsValidEmail(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register legacyemail validator: %w", err)
	}
	return nil
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	signInLimiter *limiter.Limiter,
) {
	api := r.Group("/api")
	auth := middleware.SessionAuthMiddleware(services.Session)

	registerAuthRoutes(api, services.Session, signInLimiter)
	registerOrderRoutes(api, services.Order, services.Session, auth)
	registerPaymentRoutes(api, services.Payment, services.Session)
	registerUserRoutes(api, services.User, auth)
	registerCatalogRoutes(api, services.Catalog, auth)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
