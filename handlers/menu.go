package handlers

import (
	"net/http"

	"dine-on-time-api/middleware"
	"dine-on-time-api/services"

	"github.com/gin-gonic/gin"
)

type AddMenuItemRequest struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
}

// UpdateMenuItemRequest leaves absent fields nil so they keep their value.
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name" form:"name"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price"`
}

// AddMenuItem adds an item to the owner's restaurant menu
func (h *Handler) AddMenuItem(c *gin.Context) {
	var req AddMenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	img, err := imageFromForm(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	menu, err := h.svc.Menus.AddItem(c.Request.Context(), middleware.GetUserID(c), parseID(c, "id"), services.AddMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       img,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "menu": menu})
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	callerID, restaurantID := middleware.GetUserID(c), parseID(c, "id")
	if err := h.svc.Menus.Authorize(c.Request.Context(), callerID, restaurantID); err != nil {
		h.respondError(c, err)
		return
	}
	var req UpdateMenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	img, err := imageFromForm(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	menu, err := h.svc.Menus.UpdateItem(c.Request.Context(), callerID, restaurantID, parseID(c, "itemId"), services.UpdateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       img,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "menu": menu})
}

// DeleteMenuItem succeeds even when the item is already gone
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	err := h.svc.Menus.RemoveItem(c.Request.Context(), middleware.GetUserID(c), parseID(c, "id"), parseID(c, "itemId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item removed"})
}

// GetMenu serves both /restaurants/:id/menu and /menu/:restaurantId.
func (h *Handler) GetMenu(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		id = parseID(c, "restaurantId")
	}
	items, err := h.svc.Menus.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
