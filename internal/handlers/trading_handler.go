package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/ledger"
	"papertrade/internal/pagination"
	"papertrade/internal/services"
)

// TradingHandler handles portfolio and order requests.
type TradingHandler struct {
	tradingService services.TradingServicer
}

// NewTradingHandler creates a new TradingHandler.
func NewTradingHandler(tradingService services.TradingServicer) *TradingHandler {
	return &TradingHandler{tradingService: tradingService}
}

// PlaceOrderRequest represents the request payload for placing an order.
// Price carries the client's market price for MARKET orders and the limit
// price for LIMIT orders.
type PlaceOrderRequest struct {
	Symbol    string  `json:"symbol" binding:"required,symbol"`
	Name      string  `json:"name" binding:"required,min=1,max=200"`
	Side      string  `json:"type" binding:"required,order_side"`
	OrderType string  `json:"order_type" binding:"omitempty,order_type"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// OrdersQuery represents the query parameters for listing orders. The
// limit parameter is a shorthand for page_size kept for API compatibility.
type OrdersQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
	pagination.PageRequest
}

// GetPortfolio returns the authenticated user's valuated portfolio.
// @Summary     Get portfolio
// @Description Get the current portfolio with positions, orders, and P&L
// @Tags        trading
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ledger.PortfolioView "Portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio [get]
func (h *TradingHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.tradingService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": view})
}

// PlaceOrder validates and executes an order.
// @Summary     Place order
// @Description Place a buy or sell order, executed synchronously
// @Tags        trading
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PlaceOrderRequest true "Order details"
// @Success     201 {object} ledger.Confirmation "Order executed"
// @Failure     400 {object} ErrorResponse "Invalid input or order rejected"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders [post]
func (h *TradingHandler) PlaceOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	orderType := ledger.OrderType(req.OrderType)
	if orderType == "" {
		orderType = ledger.OrderTypeMarket
	}

	confirmation, err := h.tradingService.PlaceOrder(c.Request.Context(), userID, services.OrderInput{
		Symbol:   req.Symbol,
		Name:     req.Name,
		Side:     ledger.Side(req.Side),
		Type:     orderType,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "confirmation": confirmation})
}

// GetOrders returns the user's order history, newest first.
// @Summary     List orders
// @Description List the user's order history, newest first
// @Tags        trading
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Maximum number of orders" default(20)
// @Param       page query int false "Page number" default(1)
// @Success     200 {object} pagination.PageResponse[ledger.Order] "Orders"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders [get]
func (h *TradingHandler) GetOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query OrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if query.Limit > 0 {
		query.PageSize = query.Limit
	}

	orders, err := h.tradingService.GetOrders(c.Request.Context(), userID, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// ResetPortfolio restores the portfolio to its initial state.
// @Summary     Reset portfolio
// @Description Clear all positions and orders and restore the initial cash balance
// @Tags        trading
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]bool "Reset applied"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/reset [post]
func (h *TradingHandler) ResetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tradingService.ResetPortfolio(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RefreshPortfolio overwrites stored position prices from the market feed.
// @Summary     Refresh portfolio prices
// @Description Overwrite each position's stored price from the market feed
// @Tags        trading
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ledger.PortfolioView "Refreshed portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/refresh [post]
func (h *TradingHandler) RefreshPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.tradingService.RefreshPrices(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": view})
}
