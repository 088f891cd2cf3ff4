package repository

import (
	"context"

	"gorm.io/gorm"

	"quote-service/models"
)

// RouteRepository defines data-access operations for routes.
type RouteRepository interface {
	FindAvailable(ctx context.Context, origin, destination string) ([]models.Route, error)
}

// SettingsRepository defines data-access operations for calculation settings.
type SettingsRepository interface {
	FindByRouteAndMode(ctx context.Context, routeID, modeID uint) ([]models.CalculationSettings, error)
	FindGlobalDefaults(ctx context.Context, modeID uint) ([]models.CalculationSettings, error)
	Create(ctx context.Context, settings *models.CalculationSettings) error
}

// PickupRepository defines data-access operations for pickup settings.
type PickupRepository interface {
	FindByScope(ctx context.Context, country, state string, category models.ShippingCategory) ([]models.PickupSettings, error)
	FindCountryFallback(ctx context.Context, country string) (*models.PickupSettings, error)
	FindGlobalFallback(ctx context.Context) (*models.PickupSettings, error)
}

// WarehouseRepository defines data-access operations for warehouses.
type WarehouseRepository interface {
	FindActiveByCountry(ctx context.Context, country string) ([]models.Warehouse, error)
}

// GormRouteRepository implements RouteRepository using GORM.
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GormRouteRepository.
func NewGormRouteRepository(db *gorm.DB) RouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) FindAvailable(ctx context.Context, origin, destination string) ([]models.Route, error) {
	var routes []models.Route
	if err := r.db.WithContext(ctx).
		Preload("TransportMode").
		Where("origin_country = ? AND destination_country = ? AND is_available = ?", origin, destination, true).
		Order("priority DESC").
		Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository.
func NewGormSettingsRepository(db *gorm.DB) SettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) FindByRouteAndMode(ctx context.Context, routeID, modeID uint) ([]models.CalculationSettings, error) {
	var settings []models.CalculationSettings
	if err := r.db.WithContext(ctx).
		Where("route_id = ? AND transport_mode_id = ?", routeID, modeID).
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *GormSettingsRepository) FindGlobalDefaults(ctx context.Context, modeID uint) ([]models.CalculationSettings, error) {
	var settings []models.CalculationSettings
	if err := r.db.WithContext(ctx).
		Where("route_id IS NULL AND transport_mode_id = ? AND is_global_default = ?", modeID, true).
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *GormSettingsRepository) Create(ctx context.Context, settings *models.CalculationSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

// GormPickupRepository implements PickupRepository using GORM.
type GormPickupRepository struct {
	db *gorm.DB
}

// NewGormPickupRepository creates a new GormPickupRepository.
func NewGormPickupRepository(db *gorm.DB) PickupRepository {
	return &GormPickupRepository{db: db}
}

// FindByScope returns active rows for the country and state covering either
// the exact category or the catch-all.
func (r *GormPickupRepository) FindByScope(ctx context.Context, country, state string, category models.ShippingCategory) ([]models.PickupSettings, error) {
	var settings []models.PickupSettings
	if err := r.db.WithContext(ctx).
		Where("country = ? AND state = ? AND shipping_category IN ? AND is_active = ?",
			country, state, []models.ShippingCategory{category, models.CategoryAll}, true).
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *GormPickupRepository) FindCountryFallback(ctx context.Context, country string) (*models.PickupSettings, error) {
	var s models.PickupSettings
	if err := r.db.WithContext(ctx).
		Where("country = ? AND shipping_category = ? AND is_active = ?", country, models.CategoryAll, true).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormPickupRepository) FindGlobalFallback(ctx context.Context) (*models.PickupSettings, error) {
	var s models.PickupSettings
	if err := r.db.WithContext(ctx).
		Where("is_global_fallback = ? AND is_active = ?", true, true).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GormWarehouseRepository implements WarehouseRepository using GORM.
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository.
func NewGormWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func (r *GormWarehouseRepository) FindActiveByCountry(ctx context.Context, country string) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	if err := r.db.WithContext(ctx).
		Where("country = ? AND is_active = ?", country, true).
		Order("priority DESC").
		Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}
