package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "github.com/9rib/marketplace-api/docs"
	"github.com/9rib/marketplace-api/internal/api/handler"
	"github.com/9rib/marketplace-api/internal/api/middleware"
	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
	"github.com/9rib/marketplace-api/internal/infrastructure/http/handlers"
)

// Services groups the use cases the HTTP layer exposes.
type Services struct {
	Auth          ports.AuthService
	Profiles      ports.ProfileService
	Applications  ports.ApplicationService
	Artisans      ports.ArtisanService
	References    ports.ReferenceService
	Notifications ports.NotificationService
	Contact       ports.ContactService
}

// Stores are probed by the readiness endpoint. Mongo and Redis may be nil.
type Stores struct {
	SQL   *gorm.DB
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, stores Stores, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddleware("rib"))

	authHandler := handler.NewAuthHandler(svc.Auth)
	profileHandler := handler.NewProfileHandler(svc.Profiles)
	applicationHandler := handler.NewApplicationHandler(svc.Applications)
	artisanHandler := handler.NewArtisanHandler(svc.Artisans)
	referenceHandler := handler.NewReferenceHandler(svc.References)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications, svc.Contact)

	auth := middleware.Auth(jwtSecret)
	optionalAuth := middleware.OptionalAuth(jwtSecret)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	v1 := e.Group("/v1")

	// --- Public directory ---
	v1.GET("/artisans", artisanHandler.List)
	v1.GET("/artisans/top", artisanHandler.Top)
	v1.GET("/artisans/:id", artisanHandler.Get)
	v1.GET("/categories", referenceHandler.Categories)
	v1.GET("/cities", referenceHandler.Cities)
	v1.POST("/applications", applicationHandler.Submit, optionalAuth)

	// --- Functions ---
	fn := v1.Group("/functions")
	fn.POST("/process-application", applicationHandler.ProcessFunction, auth)
	fn.POST("/create-notification", notificationHandler.Create, auth)
	fn.POST("/track-view", artisanHandler.TrackView, optionalAuth)
	fn.POST("/contact-message", notificationHandler.Contact)

	// --- Signed-in user ---
	v1.GET("/me", profileHandler.Me, auth)
	v1.PATCH("/me", profileHandler.Update, auth)
	v1.PATCH("/artisans/me", artisanHandler.UpdateOwn, auth)
	v1.GET("/notifications", notificationHandler.List, auth)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead, auth)

	// --- Admin ---
	admin := v1.Group("/admin", auth, adminOnly)
	admin.GET("/applications", applicationHandler.List)
	admin.GET("/applications/:id", applicationHandler.Get)
	admin.GET("/applications/:id/history", applicationHandler.History)
	admin.POST("/applications/:id/process", applicationHandler.Process)
	admin.PATCH("/artisans/:id/status", artisanHandler.SetStatus)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(stores.SQL, stores.Mongo, stores.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
