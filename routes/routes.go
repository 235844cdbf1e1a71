package routes

import (
	"time"

	"clinicdesk/handlers"
	"clinicdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the booking forms and public content.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
	{
		api.POST("/appointments", hb.Appointments.BookAppointmentHandler)
		api.POST("/contact", hb.Appointments.SubmitContactHandler)
		api.GET("/timeslots", hb.Appointments.TimeSlotsHandler)

		api.GET("/services", hb.Services.List)
		api.GET("/services/:id", hb.Services.Get)
		api.GET("/testimonials", hb.Testimonials.List)
		api.GET("/blog", hb.BlogPosts.List)
		api.GET("/blog/:id", hb.BlogPosts.Get)
		api.GET("/settings", hb.Settings.GetSettingsHandler)
	}
}

// RegisterMessagingRoutes registers the callable send endpoint.
func RegisterMessagingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/messaging")
	{
		api.Use(middleware.MessagingSecretMiddleware(hb.MessagingSecret))
		api.POST("/send", hb.Messaging.SendHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.FirebaseAdminMiddleware(hb.AdminVerifier, hb.AdminEmail))
	{
		appts := adminGroup.Group("/appointments")
		appts.GET("", hb.Appointments.ListAppointmentsHandler)
		appts.POST("", hb.Appointments.CreateAppointmentHandler)
		appts.GET("/:id", hb.Appointments.GetAppointmentHandler)
		appts.DELETE("/:id", hb.Appointments.DeleteAppointmentHandler)
		appts.PATCH("/:id/status", hb.Appointments.UpdateStatusHandler)
		appts.PATCH("/:id/notes", hb.Appointments.UpdateNotesHandler)
		appts.POST("/:id/messages", hb.Appointments.SendMessageHandler)

		adminGroup.GET("/notifications/stream", hb.Notifications.StreamHandler)

		registerContentAdmin(adminGroup.Group("/services"), hb.Services)
		registerContentAdmin(adminGroup.Group("/testimonials"), hb.Testimonials)
		registerContentAdmin(adminGroup.Group("/blog"), hb.BlogPosts)

		adminGroup.PUT("/settings", hb.Settings.SaveSettingsHandler)
		adminGroup.POST("/uploads", hb.Storage.UploadImageHandler)
		adminGroup.DELETE("/uploads", hb.Storage.DeleteImageHandler)
		adminGroup.GET("/deliveries", hb.Deliveries.ListDeliveriesHandler)
	}
}

type contentRoutes interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func registerContentAdmin(g *gin.RouterGroup, h contentRoutes) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Messaging-Secret", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterMessagingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
