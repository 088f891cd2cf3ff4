package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quote-service/models"
	"quote-service/services"
)

// ---- mock pickup repository ----

type mockPickupRepo struct {
	byScope         map[string][]models.PickupSettings // key: country|state
	scopeErr        error
	countryFallback *models.PickupSettings
	globalFallback  *models.PickupSettings
}

func (m *mockPickupRepo) FindByScope(_ context.Context, country, state string, _ models.ShippingCategory) ([]models.PickupSettings, error) {
	if m.scopeErr != nil {
		return nil, m.scopeErr
	}
	return m.byScope[country+"|"+state], nil
}

func (m *mockPickupRepo) FindCountryFallback(_ context.Context, country string) (*models.PickupSettings, error) {
	if m.countryFallback == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.countryFallback, nil
}

func (m *mockPickupRepo) FindGlobalFallback(_ context.Context) (*models.PickupSettings, error) {
	if m.globalFallback == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.globalFallback, nil
}

func newPickupCalc(repo *mockPickupRepo) *services.PickupCalculator {
	logger, _ := zap.NewDevelopment()
	return services.NewPickupCalculator(repo, logger)
}

func usOrigin() models.Address {
	return models.Address{Street1: "1 Main St", City: "Austin", State: "TX", Country: "US"}
}

func usWarehouse() models.Address {
	return models.Address{Street1: "1234 Warehouse St", City: "Los Angeles", State: "CA", Country: "US", Company: "Brokerage Logistics"}
}

func TestDistanceKm_Buckets(t *testing.T) {
	wh := usWarehouse()

	cross := models.Address{City: "Tokyo", Country: "JP"}
	assert.Equal(t, 0.0, services.DistanceKm(cross, wh).InexactFloat64())

	sameCity := models.Address{City: "Los Angeles", State: "CA", Country: "US"}
	assert.Equal(t, 15.0, services.DistanceKm(sameCity, wh).InexactFloat64())

	sameState := models.Address{City: "San Diego", State: "CA", Country: "US"}
	assert.Equal(t, 100.0, services.DistanceKm(sameState, wh).InexactFloat64())

	otherState := models.Address{City: "Austin", State: "TX", Country: "US"}
	assert.Equal(t, 500.0, services.DistanceKm(otherState, wh).InexactFloat64())

	noState := models.Address{City: "Somewhere", Country: "US"}
	assert.Equal(t, 50.0, services.DistanceKm(noState, wh).InexactFloat64())
}

func TestPickupCost_Formula(t *testing.T) {
	repo := &mockPickupRepo{
		byScope: map[string][]models.PickupSettings{
			"US|TX": {{
				Country:          "US",
				State:            "TX",
				ShippingCategory: models.CategoryAll,
				BasePickupFee:    25,
				PerKgRate:        0.5,
				PerKmRate:        1.5,
				MinimumPickupFee: 15,
			}},
		},
	}
	calc := newPickupCalc(repo)

	// Company-set origin, small_parcel: no residential or lift-gate fees.
	origin := usOrigin()
	origin.Company = "Acme Inc"

	// Different states -> 500km. base 25 + 100*0.5 + 500*1.5 = 825.
	cost := calc.Cost(context.Background(), origin, usWarehouse(), 100, dims(1, 1, 1), models.CategorySmallParcel)
	assert.Equal(t, 825.0, cost)
}

func TestPickupCost_ResidentialAndLiftGateFees(t *testing.T) {
	repo := &mockPickupRepo{
		byScope: map[string][]models.PickupSettings{
			"US|TX": {{
				Country:          "US",
				State:            "TX",
				ShippingCategory: models.CategoryAll,
				BasePickupFee:    25,
				PerKgRate:        0.5,
				PerKmRate:        1.5,
				ResidentialFee:   5,
				LiftGateFee:      40,
				MinimumPickupFee: 15,
			}},
		},
	}
	calc := newPickupCalc(repo)

	// No company -> residential; ltl_freight -> lift gate.
	cost := calc.Cost(context.Background(), usOrigin(), usWarehouse(), 100, dims(1, 1, 1), models.CategoryLTLFreight)
	assert.Equal(t, 825.0+5+40, cost)
}

func TestPickupCost_MinimumFloor(t *testing.T) {
	repo := &mockPickupRepo{
		byScope: map[string][]models.PickupSettings{
			"US|CA": {{
				Country:          "US",
				State:            "CA",
				ShippingCategory: models.CategoryAll,
				BasePickupFee:    1,
				PerKgRate:        0.1,
				PerKmRate:        0.01,
				MinimumPickupFee: 35,
			}},
		},
	}
	calc := newPickupCalc(repo)

	origin := models.Address{City: "Los Angeles", State: "CA", Country: "US", Company: "Acme"}
	// Same city: 1 + 2*0.1 + 15*0.01 = 1.35, floored to 35.
	cost := calc.Cost(context.Background(), origin, usWarehouse(), 2, dims(1, 1, 1), models.CategorySmallParcel)
	assert.Equal(t, 35.0, cost)
}

func TestPickupCost_DimensionalWeightUsedWhenLarger(t *testing.T) {
	repo := &mockPickupRepo{
		byScope: map[string][]models.PickupSettings{
			"US|TX": {{
				Country:                  "US",
				State:                    "TX",
				ShippingCategory:         models.CategoryAll,
				BasePickupFee:            0,
				PerKgRate:                1,
				PerKmRate:                0,
				UseDimensionalWeight:     true,
				DimensionalWeightDivisor: 5000,
			}},
		},
	}
	calc := newPickupCalc(repo)

	origin := usOrigin()
	origin.Company = "Acme"
	// 500x200x1000cm -> 20kg dimensional beats 5kg actual.
	cost := calc.Cost(context.Background(), origin, usWarehouse(), 5, dims(500, 200, 1000), models.CategorySmallParcel)
	assert.Equal(t, 20.0, cost)
}

func TestPickupCost_ExactCategoryBeatsCatchAll(t *testing.T) {
	repo := &mockPickupRepo{
		byScope: map[string][]models.PickupSettings{
			"US|TX": {
				{Country: "US", State: "TX", ShippingCategory: models.CategoryAll, BasePickupFee: 10, MinimumPickupFee: 1},
				{Country: "US", State: "TX", ShippingCategory: models.CategoryVehicle, BasePickupFee: 200, MinimumPickupFee: 1},
			},
		},
	}
	calc := newPickupCalc(repo)

	origin := usOrigin()
	origin.Company = "Acme"
	cost := calc.Cost(context.Background(), origin, usWarehouse(), 1, models.Dimensions{}, models.CategoryVehicle)
	assert.Equal(t, 200.0, cost)
}

func TestPickupCost_GlobalFallbackRates(t *testing.T) {
	repo := &mockPickupRepo{
		globalFallback: &models.PickupSettings{
			BasePickupFee:    30,
			PerKgRate:        1,
			MinimumPickupFee: 20,
			IsGlobalFallback: true,
		},
	}
	calc := newPickupCalc(repo)

	cost := calc.Cost(context.Background(), usOrigin(), usWarehouse(), 10, dims(1, 1, 1), models.CategorySmallParcel)
	assert.Equal(t, 40.0, cost)
}

func TestPickupCost_HardcodedFallback(t *testing.T) {
	calc := newPickupCalc(&mockPickupRepo{})

	// base 25 + 10*0.5 = 30, above the 15 floor.
	cost := calc.Cost(context.Background(), usOrigin(), usWarehouse(), 10, dims(1, 1, 1), models.CategorySmallParcel)
	assert.Equal(t, 30.0, cost)

	cost = calc.Cost(context.Background(), usOrigin(), usWarehouse(), 1, dims(1, 1, 1), models.CategorySmallParcel)
	assert.Equal(t, 25.5, cost)
}

func TestPickupCost_RepositoryFailureReturnsZero(t *testing.T) {
	calc := newPickupCalc(&mockPickupRepo{scopeErr: errors.New("db down")})

	cost := calc.Cost(context.Background(), usOrigin(), usWarehouse(), 10, dims(1, 1, 1), models.CategorySmallParcel)
	assert.Equal(t, 0.0, cost)
}

func TestIsAvailable(t *testing.T) {
	withRows := &mockPickupRepo{
		byScope: map[string][]models.PickupSettings{
			"US|TX": {{Country: "US", State: "TX", ShippingCategory: models.CategoryAll}},
		},
	}
	assert.True(t, newPickupCalc(withRows).IsAvailable(context.Background(), usOrigin(), models.CategoryVehicle))

	assert.False(t, newPickupCalc(&mockPickupRepo{}).IsAvailable(context.Background(), usOrigin(), models.CategoryVehicle))

	noCountry := models.Address{City: "Nowhere"}
	assert.False(t, newPickupCalc(withRows).IsAvailable(context.Background(), noCountry, models.CategoryVehicle))
}
