package routes

import (
	"github.com/gin-gonic/gin"

	"quote-service/controllers"
)

// RegisterQuoteRoutes sets up all quote-related routes.
func RegisterQuoteRoutes(r *gin.Engine, qc *controllers.QuoteController) {
	quotes := r.Group("/quotes")

	quotes.POST("/calculate", qc.CalculateQuotes)
	quotes.GET("/:id", qc.GetQuoteSession)
	quotes.POST("/:id/convert", qc.ConvertQuote)

	r.GET("/shipments/:number/tracking", qc.TrackShipment)
}
