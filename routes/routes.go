// routes/routes.go
package routes

import (
	"time"

	"lifetag/config"
	"lifetag/controllers"
	"lifetag/middleware"
	"lifetag/qrcode"
	"lifetag/repositories"
	"lifetag/services"
	"lifetag/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoutes initializes all application routes
func SetupRoutes(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) *gin.Engine {
	router := gin.New()

	// Initialize repositories
	repos := initializeRepositories(db)

	// Initialize services
	svcs := initializeServices(cfg, repos)

	// Initialize controllers
	ctrls := initializeControllers(svcs)

	authMiddleware := middleware.NewAuthMiddleware(svcs.JWT, repos.User)

	// Global middleware
	setupGlobalMiddleware(router, cfg, redisClient)

	// Setup route groups
	setupPublicRoutes(router, ctrls, authMiddleware, redisClient)
	setupAuthenticatedRoutes(router, ctrls, authMiddleware, redisClient)
	setupAdminRoutes(router, ctrls, authMiddleware, redisClient)

	return router
}

// Repositories initialization
type Repositories struct {
	User  *repositories.UserRepository
	Audit *repositories.AuditLogRepository
}

func initializeRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		User:  repositories.NewUserRepository(db),
		Audit: repositories.NewAuditLogRepository(db),
	}
}

// Services initialization
type Services struct {
	JWT     *utils.JWTService
	Auth    *services.AuthService
	Profile *services.ProfileService
	QR      *services.QRService
	Audit   *services.AuditService
	Alert   *services.AlertService
}

func initializeServices(cfg *config.Config, repos *Repositories) *Services {
	jwtService := utils.NewJWTService(cfg.JWTSecret)

	auditService := services.NewAuditService(repos.Audit)

	alertService, err := services.NewAlertService(
		cfg.FirebaseCredentials,
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioPhoneNumber,
	)
	if err != nil {
		logrus.Fatalf("Failed to initialize alert service: %v", err)
	}

	generator := qrcode.NewGenerator(cfg.QRCacheSize)
	qrService := services.NewQRService(repos.User, generator, auditService)

	return &Services{
		JWT:     jwtService,
		Auth:    services.NewAuthService(repos.User, jwtService),
		Profile: services.NewProfileService(repos.User, generator, auditService, alertService),
		QR:      qrService,
		Audit:   auditService,
		Alert:   alertService,
	}
}

// Controllers initialization
type Controllers struct {
	Auth    *controllers.AuthController
	Profile *controllers.ProfileController
	QR      *controllers.QRController
	Audit   *controllers.AuditController
	Health  *controllers.HealthController
}

func initializeControllers(svcs *Services) *Controllers {
	return &Controllers{
		Auth:    controllers.NewAuthController(svcs.Auth),
		Profile: controllers.NewProfileController(svcs.Profile),
		QR:      controllers.NewQRController(svcs.QR),
		Audit:   controllers.NewAuditController(svcs.Audit),
		Health:  controllers.NewHealthController(),
	}
}

// Global middleware setup
func setupGlobalMiddleware(router *gin.Engine, cfg *config.Config, redisClient *redis.Client) {
	router.Use(middleware.DefaultLoggerMiddleware())

	errorHandler := middleware.NewErrorHandler(cfg.Environment, logrus.StandardLogger())
	router.Use(errorHandler.Handle())

	if cfg.Environment == "production" {
		router.Use(middleware.CORS(middleware.ProductionCORSConfig()))
	} else {
		router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	}

	if redisClient != nil {
		router.Use(middleware.DefaultRateLimit(
			redisClient,
			cfg.RateLimitRequest,
			time.Duration(cfg.RateLimitWindow)*time.Minute,
		))
	}
}

// Public routes (no authentication required)
func setupPublicRoutes(router *gin.Engine, ctrls *Controllers, authMiddleware *middleware.AuthMiddleware, redisClient *redis.Client) {
	// Health check
	router.GET("/health", ctrls.Health.HealthCheck)
	router.GET("/", ctrls.Health.APIInfo)

	public := router.Group("/api/v1")
	{
		auth := public.Group("/auth")
		if redisClient != nil {
			auth.Use(middleware.AuthRateLimit(redisClient))
		}
		auth.POST("/register", ctrls.Auth.Register)
		auth.POST("/login", ctrls.Auth.Login)
		auth.POST("/refresh", ctrls.Auth.RefreshToken)

		// Decoding and validating a scanned code works without an account;
		// OptionalAuth attributes the scan when a token is present.
		qr := public.Group("/qr")
		qr.Use(authMiddleware.OptionalAuth())
		qr.POST("/decode", ctrls.QR.DecodeQR)
		qr.POST("/validate", ctrls.QR.ValidateQR)
	}
}

// Authenticated routes (requires valid JWT token)
func setupAuthenticatedRoutes(router *gin.Engine, ctrls *Controllers, authMiddleware *middleware.AuthMiddleware, redisClient *redis.Client) {
	api := router.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())

	auth := api.Group("/auth")
	auth.POST("/change-password", ctrls.Auth.ChangePassword)

	profile := api.Group("/profile")
	profile.GET("", ctrls.Profile.GetProfile)
	profile.PUT("", ctrls.Profile.UpdateProfile)
	profile.DELETE("", ctrls.Profile.DeleteProfile)
	profile.POST("/device", ctrls.Profile.RegisterDevice)
	profile.GET("/audit-log", ctrls.Audit.GetOwnAuditLog)
	profile.GET("/:id", ctrls.Profile.GetScannedProfile)

	qr := api.Group("/qr")
	if redisClient != nil {
		qr.Use(middleware.QRGenerateRateLimit(redisClient))
	}
	qr.POST("/generate", ctrls.QR.GenerateQR)
	qr.GET("/image", ctrls.QR.GetQRImage)
	qr.GET("/refresh-check", ctrls.QR.RefreshCheck)
}

// Admin routes (requires admin privileges)
func setupAdminRoutes(router *gin.Engine, ctrls *Controllers, authMiddleware *middleware.AuthMiddleware, redisClient *redis.Client) {
	admin := router.Group("/api/v1/admin")
	admin.Use(authMiddleware.RequireAuth())
	admin.Use(authMiddleware.RequireRole("admin"))
	if redisClient != nil {
		admin.Use(middleware.AdminRateLimit(redisClient))
	}

	admin.GET("/users", ctrls.Profile.ListUsers)
	admin.PUT("/users/:id/role", ctrls.Profile.UpdateRole)
	admin.GET("/users/:id/audit-log", ctrls.Audit.GetProfileAuditLog)
	admin.GET("/audit-log", ctrls.Audit.GetRecentEvents)
}
