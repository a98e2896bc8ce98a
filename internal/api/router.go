package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"cloudmzansi/server/internal/api/handlers"
	"cloudmzansi/server/internal/api/middleware"
	"cloudmzansi/server/internal/config"
	"cloudmzansi/server/internal/email"
	"cloudmzansi/server/internal/payfast"
	"cloudmzansi/server/internal/services"
	"cloudmzansi/server/internal/storage"
	"cloudmzansi/server/internal/store"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, emailSender email.Sender, verifier payfast.Verifier) *gin.Engine {
	// Initialize services needed by API handlers HERE
	st := store.New(db)
	billingService := services.NewBillingService(st, cfg)
	templateService := services.NewEmailTemplateService(st)
	notificationService := services.NewNotificationService(st, cfg, emailSender, templateService)
	retentionService := services.NewRetentionService(st, cfg)
	exportService := services.NewExportService(st, retentionService)
	contactService := services.NewContactService(st)
	userService := services.NewUserService(st)
	portalService := services.NewPortalService()

	s3StorageService, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize S3 storage for API: %v", err)
	}

	payfastClient := payfast.NewClient(cfg.PayFastMerchantID, cfg.PayFastMerchantKey, cfg.PayFastSandbox)
	if verifier == nil {
		verifier = payfastClient
	}

	r := gin.Default()

	// Apply global middleware first (order matters)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	contactHandler := handlers.NewContactHandler(contactService, notificationService)
	invoiceHandler := handlers.NewInvoiceHandler(billingService, notificationService, st)
	payfastHandler := handlers.NewPayFastHandler(cfg, payfastClient, verifier, billingService, notificationService)
	dataHandler := handlers.NewDataHandler(exportService)
	authHandler := handlers.NewAuthHandler(cfg, userService)
	filesHandler := handlers.NewFilesHandler(s3StorageService)
	analyticsHandler := handlers.NewAnalyticsHandler(retentionService)
	portalHandler := handlers.NewPortalHandler(portalService)
	stubHandler := handlers.NewStubHandler(portalService)

	apiGroup := r.Group("/api")
	{
		// Public routes
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
		apiGroup.POST("/contact", contactHandler.Submit)
		apiGroup.POST("/auth/login", authHandler.Login)

		// PayFast checkout and ITN callback. The webhook is called by
		// PayFast's servers and authenticates via the validation postback.
		apiGroup.POST("/payfast/initiate", payfastHandler.Initiate)
		apiGroup.POST("/payfast/subscribe", payfastHandler.Subscribe)
		apiGroup.POST("/payfast/webhook", payfastHandler.Webhook)

		apiGroup.GET("/invoice/analytics", invoiceHandler.Analytics)

		// Analytics and reporting endpoints: views are audited, reports
		// answer 501 until they ship.
		registerAnalyticsRoutes(apiGroup, analyticsHandler)

		// Authenticated routes
		authRequired := apiGroup.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.POST("/invoice/generate", invoiceHandler.Generate)
			authRequired.GET("/invoice/:invoiceId/status", invoiceHandler.Status)
			authRequired.POST("/data/export", dataHandler.Export)
			authRequired.GET("/user/data", dataHandler.GetUserData)
			authRequired.PATCH("/user/data", dataHandler.UpdateUserData)
			authRequired.DELETE("/user/data", dataHandler.DeleteUserData)
			authRequired.POST("/files/presign", filesHandler.Presign)

			// Reserved endpoint groups: contract lifecycle, onboarding
			// wizard, project portal, payment tracking, invoice extras.
			registerStubRoutes(authRequired, stubHandler)
		}

		// Admin routes
		adminRequired := apiGroup.Group("/")
		adminRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret), middleware.AdminMiddleware())
		{
			adminRequired.GET("/contact", contactHandler.List)
			adminRequired.GET("/invoice/overdue", invoiceHandler.Overdue)
			adminRequired.POST("/invoice/late", invoiceHandler.Late)
			adminRequired.POST("/data/import", dataHandler.Import)
		}
	}

	// Client portal surface, reserved for upcoming features.
	portal := r.Group("/api/v1")
	portal.Use(middleware.AuthMiddleware(cfg.JwtSecret))
	{
		portal.GET("/:resource", portalHandler.List)
		portal.POST("/:resource", portalHandler.Create)
		portal.GET("/:resource/:id", portalHandler.Get)
		portal.PATCH("/:resource/:id", portalHandler.Update)
		portal.DELETE("/:resource/:id", portalHandler.Delete)
	}

	return r
}
