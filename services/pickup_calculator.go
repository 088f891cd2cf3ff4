package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quote-service/models"
	"quote-service/repository"
)

// Hardcoded last-resort pickup rates, used only when no fallback row is
// configured.
var (
	hardcodedPickupBase  = decimal.NewFromFloat(25.00)
	hardcodedPickupPerKg = decimal.NewFromFloat(0.50)
	hardcodedPickupMin   = decimal.NewFromFloat(15.00)
)

// PickupCalculator prices the origin pickup leg. It never fails a quote: any
// resolution or calculation problem degrades to a zero pickup cost.
type PickupCalculator struct {
	pickups repository.PickupRepository
	logger  *zap.Logger
}

// NewPickupCalculator creates a PickupCalculator.
func NewPickupCalculator(pickups repository.PickupRepository, logger *zap.Logger) *PickupCalculator {
	return &PickupCalculator{pickups: pickups, logger: logger}
}

// IsAvailable reports whether pickup service is configured for the origin
// and category.
func (c *PickupCalculator) IsAvailable(ctx context.Context, origin models.Address, category models.ShippingCategory) bool {
	if origin.Country == "" {
		return false
	}
	settings, err := c.resolveSettings(ctx, origin, category)
	if err != nil {
		c.logger.Warn("pickup availability lookup failed", zap.Error(err))
		return false
	}
	return settings != nil
}

// Cost computes the pickup charge from origin to the warehouse. Returns 0 on
// any failure rather than blocking the quote.
func (c *PickupCalculator) Cost(ctx context.Context, origin, warehouse models.Address, weightKg float64, dims models.Dimensions, category models.ShippingCategory) float64 {
	if origin.Country == "" {
		c.logger.Warn("pickup cost requested without origin country")
		return 0.0
	}

	settings, err := c.resolveSettings(ctx, origin, category)
	if err != nil {
		c.logger.Error("pickup settings lookup failed", zap.Error(err))
		return 0.0
	}
	if settings == nil {
		return c.fallbackCost(ctx, weightKg)
	}

	chargeable := decimal.NewFromFloat(weightKg)
	if settings.UseDimensionalWeight && dims.Positive() {
		dimWeight, err := DimensionalWeightKg(dims, settings.DimensionalWeightDivisor)
		if err != nil {
			c.logger.Error("pickup dimensional weight failed", zap.Error(err))
			return 0.0
		}
		chargeable = decimal.Max(chargeable, dimWeight)
	}

	distanceKm := DistanceKm(origin, warehouse)
	distanceCost := distanceKm.Mul(decimal.NewFromFloat(settings.PerKmRate))
	weightCost := chargeable.Mul(decimal.NewFromFloat(settings.PerKgRate))

	total := decimal.NewFromFloat(settings.BasePickupFee).Add(weightCost).Add(distanceCost)

	if origin.IsResidential() {
		total = total.Add(decimal.NewFromFloat(settings.ResidentialFee))
	}
	if category.RequiresLiftGate() {
		total = total.Add(decimal.NewFromFloat(settings.LiftGateFee))
	}
	if settings.MarkupPercent > 0 {
		markup := total.Mul(decimal.NewFromFloat(settings.MarkupPercent).Div(decimal.NewFromInt(100)))
		total = total.Add(markup)
	}

	total = decimal.Max(total, decimal.NewFromFloat(settings.MinimumPickupFee))

	result := total.InexactFloat64()
	c.logger.Debug("pickup cost calculated",
		zap.String("country", origin.Country),
		zap.Float64("distance_km", distanceKm.InexactFloat64()),
		zap.Float64("cost", result))
	return result
}

// resolveSettings walks the scope chain: country+state+category, then
// country+category, then the country catch-all. Exact-category rows win over
// "all" rows at each level. A nil result with nil error means no coverage.
func (c *PickupCalculator) resolveSettings(ctx context.Context, origin models.Address, category models.ShippingCategory) (*models.PickupSettings, error) {
	if origin.State != "" {
		rows, err := c.pickups.FindByScope(ctx, origin.Country, origin.State, category)
		if err != nil {
			return nil, err
		}
		if s := preferExactCategory(rows, category); s != nil {
			return s, nil
		}
	}

	rows, err := c.pickups.FindByScope(ctx, origin.Country, "", category)
	if err != nil {
		return nil, err
	}
	if s := preferExactCategory(rows, category); s != nil {
		return s, nil
	}

	s, err := c.pickups.FindCountryFallback(ctx, origin.Country)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func preferExactCategory(rows []models.PickupSettings, category models.ShippingCategory) *models.PickupSettings {
	for i := range rows {
		if rows[i].ShippingCategory == category {
			return &rows[i]
		}
	}
	for i := range rows {
		if rows[i].ShippingCategory == models.CategoryAll {
			return &rows[i]
		}
	}
	return nil
}

// fallbackCost uses the global fallback row, or hardcoded rates when none is
// configured. Flat base + per-kg, floored at the minimum.
func (c *PickupCalculator) fallbackCost(ctx context.Context, weightKg float64) float64 {
	base, perKg, minimum := hardcodedPickupBase, hardcodedPickupPerKg, hardcodedPickupMin

	fallback, err := c.pickups.FindGlobalFallback(ctx)
	switch {
	case err == nil:
		base = decimal.NewFromFloat(fallback.BasePickupFee)
		perKg = decimal.NewFromFloat(fallback.PerKgRate)
		minimum = decimal.NewFromFloat(fallback.MinimumPickupFee)
	case repository.IsNotFound(err):
		c.logger.Warn("no global fallback pickup settings configured, using hardcoded rates")
	default:
		c.logger.Error("global fallback pickup lookup failed", zap.Error(err))
		return 0.0
	}

	cost := base.Add(decimal.NewFromFloat(weightKg).Mul(perKg))
	return decimal.Max(cost, minimum).InexactFloat64()
}

// DistanceKm approximates the pickup distance from city/state/country alone.
// A geocoding service would replace this; the buckets mirror typical haul
// lengths.
func DistanceKm(origin, warehouse models.Address) decimal.Decimal {
	if origin.Country != warehouse.Country {
		return decimal.Zero
	}
	if origin.State != "" && warehouse.State != "" {
		if origin.State == warehouse.State {
			if origin.City == warehouse.City {
				return decimal.NewFromInt(15)
			}
			return decimal.NewFromInt(100)
		}
		return decimal.NewFromInt(500)
	}
	return decimal.NewFromInt(50)
}
