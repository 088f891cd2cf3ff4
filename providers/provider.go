package providers

import (
	"context"

	"quote-service/models"
)

// RateQuery is one parcel to be rated by an external gateway.
type RateQuery struct {
	Origin      models.Address
	Destination models.Address
	WeightKg    float64
	Dimensions  models.Dimensions

	// DeclaredValue is the customs value; floored to 1.0 when unset.
	DeclaredValue float64
	ItemTitle     string
}

// RateProvider abstracts an external courier rate gateway.
type RateProvider interface {
	// GetRates returns courier rates for the query. An empty slice with a
	// nil error means the gateway has no service on the lane.
	GetRates(ctx context.Context, query RateQuery) ([]models.CourierRate, error)

	// CreateShipment books the given rate and returns the label details.
	CreateShipment(ctx context.Context, query RateQuery, rateID string) (*models.ShipmentLabel, error)

	// ValidateAddress checks whether the gateway considers the address
	// deliverable.
	ValidateAddress(ctx context.Context, address models.Address) (bool, error)

	// Track returns the current tracking status for a booked shipment.
	Track(ctx context.Context, trackingNumber string) (*models.TrackingStatus, error)
}
