package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/market"
)

// MarketHandler serves market quotes. Quote endpoints are public; the feed
// contains no user data.
type MarketHandler struct {
	feed market.Feed
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(feed market.Feed) *MarketHandler {
	return &MarketHandler{feed: feed}
}

// GetQuotes returns quotes for all listed symbols.
// @Summary     List quotes
// @Description Get current quotes for all listed symbols
// @Tags        market
// @Produce     json
// @Success     200 {array} market.Quote "Quotes"
// @Router      /market/quotes [get]
func (h *MarketHandler) GetQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quotes": h.feed.Quotes()})
}

// GetQuote returns the quote for one symbol.
// @Summary     Get quote
// @Description Get the current quote for a symbol
// @Tags        market
// @Produce     json
// @Param       symbol path string true "Symbol"
// @Success     200 {object} market.Quote "Quote"
// @Failure     404 {object} ErrorResponse "Unknown symbol"
// @Router      /market/quotes/{symbol} [get]
func (h *MarketHandler) GetQuote(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	quote, ok := h.feed.Quote(symbol)
	if !ok {
		respondWithError(c, apperrors.ErrSymbolNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
