package handlers

import (
	"net/http"

	"dine-on-time-api/middleware"
	"dine-on-time-api/services"

	"github.com/gin-gonic/gin"
)

// RestaurantRequest is bound from JSON or multipart form fields. Create
// checks required fields in the service so both encodings get the same
// message.
type RestaurantRequest struct {
	Name        string `json:"name" form:"name"`
	Address     string `json:"address" form:"address"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
	Email       string `json:"email" form:"email"`
	Description string `json:"description" form:"description"`
}

func (h *Handler) bindRestaurant(c *gin.Context) (services.RestaurantInput, bool) {
	var req RestaurantRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return services.RestaurantInput{}, false
	}
	img, err := imageFromForm(c)
	if err != nil {
		badRequest(c, err)
		return services.RestaurantInput{}, false
	}
	return services.RestaurantInput{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Description: req.Description,
		Image:       img,
	}, true
}

// CreateRestaurant lets a restaurant owner register a restaurant
func (h *Handler) CreateRestaurant(c *gin.Context) {
	in, ok := h.bindRestaurant(c)
	if !ok {
		return
	}
	restaurant, err := h.svc.Restaurants.Create(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// ListRestaurants returns every restaurant (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.svc.Restaurants.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant with its menu
func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.svc.Restaurants.Get(c.Request.Context(), parseID(c, "id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMyRestaurants lists the caller's restaurants
func (h *Handler) GetMyRestaurants(c *gin.Context) {
	restaurants, err := h.svc.Restaurants.Mine(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// UpdateRestaurant checks ownership before the body is read, so a
// non-owner is refused whatever they send.
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	callerID, id := middleware.GetUserID(c), parseID(c, "id")
	if err := h.svc.Restaurants.Authorize(c.Request.Context(), callerID, id); err != nil {
		h.respondError(c, err)
		return
	}
	in, ok := h.bindRestaurant(c)
	if !ok {
		return
	}
	restaurant, err := h.svc.Restaurants.Update(c.Request.Context(), callerID, id, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

func (h *Handler) DeleteRestaurant(c *gin.Context) {
	if err := h.svc.Restaurants.Delete(c.Request.Context(), middleware.GetUserID(c), parseID(c, "id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant removed"})
}
