package handlers

import (
	"net/http"

	"dine-on-time-api/middleware"
	"dine-on-time-api/models"
	"dine-on-time-api/services"

	"github.com/gin-gonic/gin"
)

// CreateReservationRequest accepts menu ids as numbers or strings.
type CreateReservationRequest struct {
	RestaurantID    flexID `json:"restaurant_id" binding:"required"`
	MenuIDs         idList `json:"menu_ids" binding:"required,min=1"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	NumberOfGuests  int    `json:"number_of_guests"`
	SpecialRequests string `json:"special_requests"`
}

// UpdateStatusRequest takes any string, the empty one included.
type UpdateStatusRequest struct {
	Status models.ReservationStatus `json:"status"`
}

// CreateReservation books a table for the caller
func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.svc.Reservations.Create(c.Request.Context(), middleware.GetUserID(c), services.CreateReservationInput{
		RestaurantID:    uint(req.RestaurantID),
		MenuIDs:         req.MenuIDs,
		Date:            req.Date,
		Time:            req.Time,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) GetMyReservations(c *gin.Context) {
	views, err := h.svc.Reservations.ListMine(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// UpdateReservationStatus lets the restaurant owner set any status value.
// Ownership is checked before the body is read.
func (h *Handler) UpdateReservationStatus(c *gin.Context) {
	callerID, id := middleware.GetUserID(c), parseID(c, "id")
	if err := h.svc.Reservations.Authorize(c.Request.Context(), callerID, id); err != nil {
		h.respondError(c, err)
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.Reservations.UpdateStatus(c.Request.Context(), callerID, id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetRestaurantReservations(c *gin.Context) {
	views, err := h.svc.Reservations.ListForRestaurant(c.Request.Context(), middleware.GetUserID(c), parseID(c, "restaurantId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
