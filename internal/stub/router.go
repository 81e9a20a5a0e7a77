package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter mounts the booking-service surface under /api.
func NewRouter(store *Store) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), gin.Recovery(), CORS())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	h := handlers{store: store}

	api := r.Group("/api")
	{
		api.GET("/health", h.health)

		buses := api.Group("/buses")
		buses.GET("/locations", h.locations)
		buses.GET("/search", h.search)

		bookings := api.Group("/bookings")
		bookings.POST("/create", h.createBooking)
		bookings.POST("/:bookingReference/payment", h.confirmPayment)
		bookings.GET("/:bookingReference/qr", h.qr)
	}

	return r
}
