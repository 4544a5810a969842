package handlers

import (
	"context"
	"net/http"
	"time"

	"dine-on-time-api/models"
	"dine-on-time-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports service and database liveness
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.WithError(err).Warn("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "Dine On Time Reservation API",
		"database": "ok",
	})
}

// GetReservationStatuses describes the documented status lifecycle. Owners
// may still set values outside it.
func (h *Handler) GetReservationStatuses(c *gin.Context) {
	transitions := statemachine.AllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": "restaurant-owner"})
	}
	terminal := []models.ReservationStatus{}
	for _, s := range statemachine.Statuses() {
		if len(statemachine.ExpectedFrom(s)) == 0 {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"statuses":        statemachine.Statuses(),
		"initial":         models.StatusPending,
		"transitions":     info,
		"terminal_states": terminal,
		"description":     "Reservation status lifecycle (advisory, not enforced)",
	})
}
