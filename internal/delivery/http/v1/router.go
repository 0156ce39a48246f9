package v1

import (
	"time"

	"talent-marketplace-backend/config"
	"talent-marketplace-backend/internal/delivery/http/middleware"
	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/internal/usecase"
	"talent-marketplace-backend/pkg/security"
	"talent-marketplace-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	HealthUC      usecase.HealthUsecase
	Tokens        middleware.TokenParser
	LoginGuard    LoginGuard
	RateLimiter   *middleware.RateLimiter
	SecLog        *security.SecurityLogger
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	validation.RegisterGinValidators()

	r := gin.New()
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authLimit := deps.RateLimiter.Middleware(middleware.AuthRateLimitConfig(deps.Config.RateLimitLoginThreshold, window))
	talentOnly := middleware.AuthorizeRoles(deps.SecLog, domain.AccountTypeTalent)
	clientOnly := middleware.AuthorizeRoles(deps.SecLog, domain.AccountTypeClient)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC, deps.SecLog))
	{
		NewAuthHandler(api, protected, deps.AuthUC, deps.LoginGuard, deps.SecLog, authLimit)
		NewJobHandler(api, protected, deps.JobUC, clientOnly)
		NewApplicationHandler(protected, deps.ApplicationUC, talentOnly, clientOnly)
	}

	return r
}
