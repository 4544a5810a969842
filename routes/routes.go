package routes

import (
	"net/http"

	"dine-on-time-api/handlers"
	"dine-on-time-api/middleware"
	"dine-on-time-api/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options holds what the route table needs besides the handlers.
type Options struct {
	JWT *middleware.JWT
	// UploadDir is served under /uploads when set.
	UploadDir string
	// Gatherer backs /metrics; the default registry when nil.
	Gatherer prometheus.Gatherer
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, opts Options) {
	auth := opts.JWT.AuthRequired()
	owner := middleware.RoleRequired(models.RoleRestaurantOwner)

	r.GET("/health", h.Health)
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	if opts.UploadDir != "" {
		r.StaticFS("/uploads", http.Dir(opts.UploadDir))
	}

	api := r.Group("/api")

	// ── Users ──────────────────────────────────────────────────────
	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/profile", auth, h.GetProfile)
		users.GET("", auth, h.ListUsers)
	}

	// ── Restaurants & menus ────────────────────────────────────────
	// Path params stay :id under /restaurants; gin rejects differing
	// wildcard names on the same segment.
	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("", h.ListRestaurants)
		restaurants.POST("", auth, owner, h.CreateRestaurant)
		restaurants.GET("/myrestaurants", auth, owner, h.GetMyRestaurants)
		restaurants.GET("/:id", h.GetRestaurant)
		restaurants.PUT("/:id", auth, owner, h.UpdateRestaurant)
		restaurants.DELETE("/:id", auth, owner, h.DeleteRestaurant)

		restaurants.GET("/:id/menu", auth, h.GetMenu)
		restaurants.POST("/:id/menu", auth, owner, h.AddMenuItem)
		restaurants.PUT("/:id/menu/:itemId", auth, owner, h.UpdateMenuItem)
		restaurants.DELETE("/:id/menu/:itemId", auth, owner, h.DeleteMenuItem)
	}
	api.GET("/menu/:restaurantId", auth, h.GetMenu)

	// ── Reservations ───────────────────────────────────────────────
	reservations := api.Group("/reservations")
	{
		reservations.GET("/statuses", h.GetReservationStatuses)
		reservations.POST("", auth, h.CreateReservation)
		reservations.GET("/myreservations", auth, h.GetMyReservations)
		reservations.PUT("/:id/status", auth, owner, h.UpdateReservationStatus)
		reservations.GET("/restaurant/:restaurantId", auth, owner, h.GetRestaurantReservations)
	}
}
