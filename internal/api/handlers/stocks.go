package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wonny/papertrade/internal/api/response"
	"github.com/wonny/papertrade/internal/domain/stock"
)

// StockHandler handles stock catalog endpoints.
type StockHandler struct {
	catalog CatalogService
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(catalog CatalogService) *StockHandler {
	return &StockHandler{catalog: catalog}
}

// StockRequest is the request body for creating or updating a stock.
type StockRequest struct {
	Symbol      string `json:"symbol" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	Exchange    string `json:"exchange" binding:"required"`
	Industry    string `json:"industry"`
}

// Create handles POST /api/stocks.
func (h *StockHandler) Create(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	s, err := h.catalog.CreateStock(c.Request.Context(), req.Symbol, req.CompanyName, req.Exchange, req.Industry)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Created(c, s, "Stock registered")
}

// Get handles GET /api/stocks/:id.
func (h *StockHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid stock id")
		return
	}

	s, err := h.catalog.GetStock(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, s)
}

// GetBySymbol handles GET /api/stocks/symbol/:symbol.
func (h *StockHandler) GetBySymbol(c *gin.Context) {
	s, err := h.catalog.GetStockBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, s)
}

// List handles GET /api/stocks with exchange, industry, search and pagination filters.
func (h *StockHandler) List(c *gin.Context) {
	filter := stock.ListFilter{
		Exchange: c.Query("exchange"),
		Industry: c.Query("industry"),
		Search:   c.Query("search"),
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			response.BadRequest(c, "page must be a positive integer")
			return
		}
		filter.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.BadRequest(c, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	result, err := h.catalog.ListStocks(c.Request.Context(), filter)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	pagination := response.NewPagination(result.Page, result.Limit, result.TotalCount)
	response.SuccessWithPagination(c, result.Stocks, pagination)
}

// Update handles PUT /api/stocks/:id.
func (h *StockHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid stock id")
		return
	}

	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	s, err := h.catalog.UpdateStock(c.Request.Context(), id, req.Symbol, req.CompanyName, req.Exchange, req.Industry)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, s)
}

// Delete handles DELETE /api/stocks/:id.
func (h *StockHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid stock id")
		return
	}

	if err := h.catalog.DeleteStock(c.Request.Context(), id); err != nil {
		response.DomainError(c, err)
		return
	}

	response.NoContent(c)
}
