package routes

import (
	"net/http"
	"time"

	"fieldserve/handlers"
	"fieldserve/middleware"
	"fieldserve/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the login endpoint.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)
	}
}

// RegisterCallRoutes registers call lifecycle endpoints.
func RegisterCallRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calls")
	{
		// Admin-only management endpoints.
		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.POST("/forward", hb.Calls.ForwardCallHandler)
		admin.PATCH("/:id", hb.Calls.UpdateCallHandler)
		admin.PATCH("/:id/reassign", hb.Calls.ReassignCallHandler)
		admin.DELETE("/:id", hb.Calls.DeleteCallHandler)

		// Shared read endpoints.
		shared := api.Group("")
		shared.Use(middleware.JWTAuthAnyMiddleware())
		shared.GET("", hb.Calls.ListCallsHandler)
		shared.GET("/:id", hb.Calls.GetCallHandler)

		// Technicians advance their own assigned calls.
		tech := api.Group("")
		tech.Use(middleware.JWTAuthTechnicianMiddleware())
		tech.PATCH("/:id/status", hb.Calls.UpdateCallStatusHandler)
	}
}

// RegisterTechnicianRoutes registers technician account endpoints.
func RegisterTechnicianRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/technicians")
	{
		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.POST("", hb.Technicians.CreateTechnicianHandler)
		admin.GET("", hb.Technicians.ListTechniciansHandler)
		admin.GET("/:id", hb.Technicians.GetTechnicianHandler)
		admin.PATCH("/:id", hb.Technicians.UpdateTechnicianHandler)
		admin.DELETE("/:id", hb.Technicians.DeleteTechnicianHandler)

		tech := api.Group("")
		tech.Use(middleware.JWTAuthTechnicianMiddleware())
		tech.PUT("/fcm-token", hb.Technicians.UpdateFCMTokenHandler)
		tech.PUT("/avatar", hb.Technicians.UpdateAvatarHandler)
	}
}

// RegisterPaymentRoutes registers payment record endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		tech := api.Group("")
		tech.Use(middleware.JWTAuthTechnicianMiddleware())
		tech.POST("", hb.Payments.SubmitPaymentHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("", hb.Payments.ListPaymentsHandler)
		admin.DELETE("/:id", hb.Payments.DeletePaymentHandler)
	}
}

// RegisterServiceFormRoutes registers completed-job form endpoints.
func RegisterServiceFormRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/service-forms")
	{
		tech := api.Group("")
		tech.Use(middleware.JWTAuthTechnicianMiddleware())
		tech.POST("", hb.Forms.SubmitFormHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("", hb.Forms.ListFormsHandler)
	}
}

// RegisterReconciliationRoutes registers reporting endpoints.
func RegisterReconciliationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reconciliation")
	{
		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("/technician-calls", hb.Reconciliation.TechnicianCallsHandler)
		admin.GET("/customer-payments", hb.Reconciliation.CustomerPaymentsHandler)

		tech := api.Group("")
		tech.Use(middleware.JWTAuthTechnicianMiddleware())
		tech.GET("/payment-check", hb.Reconciliation.PaymentCheckHandler)
	}
}

// RegisterStorageRoutes registers file upload and retrieval endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		shared := api.Group("")
		shared.Use(middleware.JWTAuthAnyMiddleware())
		shared.POST("/upload", hb.Storage.UploadFileHandler)
		shared.GET("/url", hb.Storage.DownloadURLHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.DELETE("/file", hb.Storage.DeleteFileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterCallRoutes(r, hb)
	RegisterTechnicianRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterServiceFormRoutes(r, hb)
	RegisterReconciliationRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r)
}
