package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"quote-service/models"
	"quote-service/services"
)

// ---- mock settings repository ----

type mockSettingsRepo struct {
	routeRows  []models.CalculationSettings
	globalRows []models.CalculationSettings
	created    []*models.CalculationSettings
	findErr    error
	createErr  error
}

func (m *mockSettingsRepo) FindByRouteAndMode(_ context.Context, _, _ uint) ([]models.CalculationSettings, error) {
	return m.routeRows, m.findErr
}

func (m *mockSettingsRepo) FindGlobalDefaults(_ context.Context, _ uint) ([]models.CalculationSettings, error) {
	return m.globalRows, m.findErr
}

func (m *mockSettingsRepo) Create(_ context.Context, s *models.CalculationSettings) error {
	m.created = append(m.created, s)
	return m.createErr
}

func newResolver(repo *mockSettingsRepo) *services.SettingsResolver {
	logger, _ := zap.NewDevelopment()
	return services.NewSettingsResolver(repo, logger)
}

func TestResolve_PrefersRouteSpecific(t *testing.T) {
	repo := &mockSettingsRepo{
		routeRows: []models.CalculationSettings{
			{ID: 1, ShippingCategories: []string{"small_parcel"}, PerKgRate: 12},
		},
		globalRows: []models.CalculationSettings{
			{ID: 2, IsGlobalDefault: true, ShippingCategories: []string{"all"}, PerKgRate: 8.5},
		},
	}
	route := &models.Route{ID: 7, TransportModeID: 1}

	got, err := newResolver(repo).Resolve(context.Background(), route, 1, models.CategorySmallParcel)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
	assert.Empty(t, repo.created)
}

func TestResolve_RouteRowSkippedWhenCategoryMismatch(t *testing.T) {
	repo := &mockSettingsRepo{
		routeRows: []models.CalculationSettings{
			{ID: 1, ShippingCategories: []string{"vehicle"}},
		},
		globalRows: []models.CalculationSettings{
			{ID: 2, IsGlobalDefault: true, ShippingCategories: []string{"all"}},
		},
	}
	route := &models.Route{ID: 7, TransportModeID: 1}

	got, err := newResolver(repo).Resolve(context.Background(), route, 1, models.CategorySmallParcel)
	assert.NoError(t, err)
	assert.Equal(t, uint(2), got.ID)
}

func TestResolve_GlobalDefaultWithEmptyCategoriesMatchesAll(t *testing.T) {
	repo := &mockSettingsRepo{
		globalRows: []models.CalculationSettings{
			{ID: 3, IsGlobalDefault: true, ShippingCategories: nil},
		},
	}

	got, err := newResolver(repo).Resolve(context.Background(), nil, 2, models.CategoryVehicle)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), got.ID)
}

func TestResolve_CreatesGlobalDefaultWhenNoneExists(t *testing.T) {
	repo := &mockSettingsRepo{}

	got, err := newResolver(repo).Resolve(context.Background(), nil, 4, models.CategoryHeavyParcel)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.True(t, got.IsGlobalDefault)
	assert.Equal(t, uint(4), got.TransportModeID)
	assert.Equal(t, []string{"all"}, got.ShippingCategories)
	assert.Equal(t, 8.5, got.PerKgRate)
	assert.Len(t, repo.created, 1)

	// The created row resolves again without another create.
	repo.globalRows = []models.CalculationSettings{*got}
	again, err := newResolver(repo).Resolve(context.Background(), nil, 4, models.CategoryHeavyParcel)
	assert.NoError(t, err)
	assert.Equal(t, got.PerKgRate, again.PerKgRate)
	assert.Len(t, repo.created, 1)
}
