package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/middleware"
)

// inventoryHandler handles stock tracking requests.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes sets up the inventory routes.
func registerInventoryRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newInventoryHandler(services.Inventory)

	inventory := rg.Group("/inventory", middleware.RequireRoles(domain.RoleTrader), middleware.RequireSetupComplete())
	{
		inventory.POST("", h.createItem)
		inventory.GET("", h.listItems)
		inventory.GET("/low-stock", h.listLowStock)
		inventory.GET("/:itemID", h.getItem)
		inventory.PATCH("/:itemID", h.updateItem)
		inventory.DELETE("/:itemID", h.deleteItem)
	}
}

// createItem godoc
// @Summary Add a stock item
// @Description Costs 1 coin, debited atomically with the insert.
// @Tags inventory
// @Accept json
// @Produce json
// @Param item body dto.CreateInventoryItemRequest true "Item details"
// @Success 201 {object} dto.InventoryItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Security BearerAuth
// @Router /inventory [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create inventory item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(item))
}

// listItems godoc
// @Summary List stock items
// @Tags inventory
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListInventoryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.inventoryService.ListItems(c.Request.Context(), actor, limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list inventory")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInventoryResponse(items))
}

// listLowStock godoc
// @Summary List items at or below their restock threshold
// @Tags inventory
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ListInventoryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/low-stock [get]
func (h *inventoryHandler) listLowStock(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.inventoryService.ListLowStock(c.Request.Context(), actor, limit)
	if err != nil {
		respondError(c, err, "Failed to list low-stock items")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInventoryResponse(items))
}

// getItem godoc
// @Summary Get a stock item by ID
// @Tags inventory
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/{itemID} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), actor, c.Param("itemID"))
	if err != nil {
		respondError(c, err, "Failed to fetch inventory item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// updateItem godoc
// @Summary Update a stock item
// @Tags inventory
// @Accept json
// @Produce json
// @Param itemID path string true "Item ID"
// @Param update body dto.UpdateInventoryItemRequest true "Fields to update"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/{itemID} [patch]
func (h *inventoryHandler) updateItem(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), actor, c.Param("itemID"), req)
	if err != nil {
		respondError(c, err, "Failed to update inventory item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// deleteItem godoc
// @Summary Delete a stock item
// @Tags inventory
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/{itemID} [delete]
func (h *inventoryHandler) deleteItem(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.inventoryService.DeleteItem(c.Request.Context(), actor, c.Param("itemID")); err != nil {
		respondError(c, err, "Failed to delete inventory item")
		return
	}
	c.Status(http.StatusNoContent)
}
