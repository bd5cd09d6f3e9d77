package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wonny/papertrade/internal/api/response"
	"github.com/wonny/papertrade/internal/domain/order"
)

// OrderHandler handles order placement and query endpoints.
type OrderHandler struct {
	trading TradingService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(trading TradingService) *OrderHandler {
	return &OrderHandler{trading: trading}
}

// PlaceOrderRequest is the request body for placing an order.
type PlaceOrderRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Side   string `json:"side" binding:"required"`
	Volume int64  `json:"volume" binding:"required"`
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ord, err := h.trading.PlaceOrder(c.Request.Context(), req.Symbol, req.Side, req.Volume)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Created(c, ord, "Order committed")
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	ord, err := h.trading.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, ord)
}

// List handles GET /api/orders with optional side, symbol and limit filters.
func (h *OrderHandler) List(c *gin.Context) {
	var filter order.ListFilter

	if side := c.Query("side"); side != "" {
		filter.Side = &side
	}
	if symbol := c.Query("symbol"); symbol != "" {
		filter.Symbol = &symbol
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.BadRequest(c, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	orders, err := h.trading.ListOrders(c.Request.Context(), filter)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.SuccessList(c, orders, len(orders))
}
