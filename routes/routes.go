package routes

import (
	"net/http"
	"time"

	"travelbook/handlers"
	"travelbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Admin    *handlers.AdminHandler
	Checkout *handlers.CheckoutHandler
	Packages *handlers.PackageHandler
}

// RegisterPackageRoutes registers the public browse endpoints.
func RegisterPackageRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/packages")
	{
		api.GET("", hb.Packages.ListPackages)
		api.GET("/:id", hb.Packages.GetPackage)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthRequired())
		api.POST("", hb.Booking.CreateBooking)
		api.GET("/mine", hb.Booking.ListMyBookings)
		api.PATCH("/:bookingId", hb.Booking.UpdateBooking)
		api.POST("/checkout-session", hb.Checkout.CreateCheckoutSession)
	}
}

// RegisterPaymentRoutes registers the provider webhook. No auth middleware:
// the request is authenticated by its signature.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/webhook", hb.Checkout.StripeWebhook)
	}
}

// RegisterAdminRoutes sets up endpoints for staff operations.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AuthRequired(), middleware.StaffOnly())
		api.GET("/bookings", hb.Admin.ListAllBookings)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPackageRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
