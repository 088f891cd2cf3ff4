package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quote-service/models"
	"quote-service/services"
)

// QuoteController handles HTTP requests for quote operations.
type QuoteController struct {
	quoteService services.QuoteService
}

// NewQuoteController creates a new QuoteController.
func NewQuoteController(svc services.QuoteService) *QuoteController {
	return &QuoteController{quoteService: svc}
}

// CalculateQuotes handles POST /quotes/calculate
func (qc *QuoteController) CalculateQuotes(ctx *gin.Context) {
	var req models.QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, svcErr := qc.quoteService.CalculateQuotes(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetQuoteSession handles GET /quotes/:id
func (qc *QuoteController) GetQuoteSession(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Session id is required"})
		return
	}

	session, svcErr := qc.quoteService.GetQuoteSession(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// ConvertQuoteRequest selects one option of a session for conversion.
type ConvertQuoteRequest struct {
	QuoteIndex *int `json:"quote_index" binding:"required"`
}

// ConvertQuote handles POST /quotes/:id/convert
func (qc *QuoteController) ConvertQuote(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Session id is required"})
		return
	}

	var req ConvertQuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	shipment, svcErr := qc.quoteService.ConvertQuote(ctx.Request.Context(), id, *req.QuoteIndex)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"shipment": shipment})
}

// TrackShipment handles GET /shipments/:number/tracking
func (qc *QuoteController) TrackShipment(ctx *gin.Context) {
	number := ctx.Param("number")
	if number == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Shipment number is required"})
		return
	}

	status, svcErr := qc.quoteService.TrackShipment(ctx.Request.Context(), number)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, status)
}
