package routes

import (
	"slices"
	"time"

	"payproof/internal/config"
	"payproof/internal/controllers"
	"payproof/internal/objectstore"
	"payproof/internal/payments"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the components the router exposes over HTTP.
type Deps struct {
	Service *payments.Service
	Health  controllers.Pinger
	// UploadDir is served at /uploads when proofs are kept on local disk.
	UploadDir string
}

// SetupRouter initializes controllers and API routes
func SetupRouter(deps Deps, cfg *config.Config) *gin.Engine {
	policy := payments.DefaultPolicy()
	if len(cfg.AllowedMimeTypes) > 0 {
		policy.AllowedTypes = cfg.AllowedMimeTypes
	}
	if cfg.MaxUploadBytes > 0 {
		policy.MaxFileSize = cfg.MaxUploadBytes
	}

	paymentController := controllers.PaymentController{
		Service: deps.Service,
		Policy:  policy,
	}

	// Set up Gin router
	router := gin.Default()
	router.MaxMultipartMemory = 8 << 20
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/health", controllers.Health(deps.Health))

	if deps.UploadDir != "" {
		router.Static(objectstore.RoutePrefix, deps.UploadDir)
	}

	api := router.Group("/api")
	{
		// POST /api/upload-payment
		// multipart form: name, phone_number, payment_method, reason, proof
		api.POST("/upload-payment", paymentController.UploadPayment)

		// GET /api/payments
		// Lists every payment, newest first
		api.GET("/payments", paymentController.GetPayments)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
