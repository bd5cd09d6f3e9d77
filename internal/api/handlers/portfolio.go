package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wonny/papertrade/internal/api/response"
	"github.com/wonny/papertrade/internal/domain/order"
)

// PortfolioHandler handles portfolio valuation and holdings endpoints.
type PortfolioHandler struct {
	trading TradingService
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(trading TradingService) *PortfolioHandler {
	return &PortfolioHandler{trading: trading}
}

// Portfolio handles GET /api/portfolio.
func (h *PortfolioHandler) Portfolio(c *gin.Context) {
	p, err := h.trading.CurrentPortfolio(c.Request.Context())
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, p)
}

// Holdings handles GET /api/holdings/:symbol.
func (h *PortfolioHandler) Holdings(c *gin.Context) {
	symbol := order.NormalizeSymbol(c.Param("symbol"))

	qty, err := h.trading.CurrentHoldings(c.Request.Context(), symbol)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, gin.H{
		"symbol":   symbol,
		"quantity": qty,
	})
}
