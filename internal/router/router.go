package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "sitediary/docs" // registers the OpenAPI spec
	"sitediary/internal/config"
	"sitediary/internal/domain"
	"sitediary/internal/handler"
	"sitediary/internal/middleware"
	"sitediary/internal/service"
)

// Handlers bundles the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Site    *handler.SiteHandler
	Diary   *handler.DiaryHandler
	Partner *handler.PartnerHandler
	Scan    *handler.ScanHandler
	Usage   *handler.UsageHandler
	Health  *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, log *zap.Logger, authSvc service.AuthService, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)

	// Protected routes - require a valid session
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc, cfg.JWT.CookieName))

	protected.GET("/auth/me", h.Auth.Me)
	protected.GET("/settings", h.User.Settings)
	protected.PUT("/settings", h.User.UpdateSettings)
	protected.POST("/users", adminOnly, h.User.Create)

	sites := protected.Group("/sites")
	sites.GET("", h.Site.List)
	sites.POST("", h.Site.Create)
	sites.GET("/:id", h.Site.GetByID)
	sites.PUT("/:id", h.Site.Update)
	sites.POST("/:id/archive", h.Site.ToggleArchived)
	sites.DELETE("/:id", adminOnly, h.Site.Delete)

	diaries := protected.Group("/diaries")
	diaries.GET("", h.Diary.List)
	diaries.POST("", h.Diary.Create)
	diaries.GET("/:id", h.Diary.GetByID)
	diaries.PUT("/:id", h.Diary.Update)
	diaries.DELETE("/:id", adminOnly, h.Diary.Delete)
	diaries.POST("/:id/photos", h.Diary.UploadPhotos)
	diaries.GET("/:id/photo-urls", h.Diary.PhotoURLs)
	diaries.DELETE("/:id/photos/:photoID", h.Diary.DeletePhoto)

	partners := protected.Group("/partners")
	partners.GET("", h.Partner.List)
	partners.POST("", h.Partner.Create)
	partners.GET("/specialties", h.Partner.Specialties)
	partners.GET("/export", h.Partner.ExportCSV)
	partners.POST("/import", adminOnly, h.Partner.Import)
	partners.POST("/scan", h.Scan.Scan)
	partners.POST("/parse-text", h.Scan.ParseText)
	partners.POST("/enrich", h.Scan.Enrich)
	partners.GET("/:id", h.Partner.GetByID)
	partners.PUT("/:id", h.Partner.Update)
	partners.DELETE("/:id", adminOnly, h.Partner.Delete)

	protected.GET("/usage", adminOnly, h.Usage.ForMonth)

	return r
}
