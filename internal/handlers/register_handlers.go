package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fipithx/ficore_backend/cmd/docs"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/middleware"
	"github.com/fipithx/ficore_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidators()

	r.GET("/", getHome)
	r.GET("/health", getHealth)

	// Public authentication routes
	registerAuthRoutes(r, cfg, services)
	registerGoogleOAuthRoutes(r, cfg, services)

	// Authenticated business API
	setupAPIV1Routes(r, cfg, services)

	// Personal tools work with or without an account
	setupPersonalRoutes(r, cfg, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every route in the group runs with a fully loaded *domain.User
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.LoadUserMiddleware(services.User),
	)

	registerUserRoutes(v1, services)
	registerCoinRoutes(v1, cfg, services)
	registerRecordRoutes(v1, services)
	registerCashflowRoutes(v1, services)
	registerInventoryRoutes(v1, services)
	registerReportRoutes(v1, services)
	registerDashboardRoutes(v1, services)
	registerAgentRoutes(v1, services)
	registerAdminRoutes(v1, services)
}

// setupPersonalRoutes configures the /api/v1/personal group. A bearer token
// is honored when present; anonymous callers identify themselves with the
// X-Session-ID header instead.
func setupPersonalRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	personal := r.Group("/api/v1/personal", middleware.OptionalAuthMiddleware(cfg.JWTSecret))

	registerPersonalRoutes(personal, services)
	registerCalculatorRoutes(personal, services)
	registerLearningRoutes(personal, cfg, services)
	registerFeedbackRoutes(personal, services)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
