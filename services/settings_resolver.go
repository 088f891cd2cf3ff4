package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"quote-service/models"
	"quote-service/repository"
)

// SettingsResolver finds the calculation settings that govern a pricing run:
// route-specific first, then the mode's global default, creating a standard
// global default when none exists.
type SettingsResolver struct {
	settings repository.SettingsRepository
	logger   *zap.Logger
}

// NewSettingsResolver creates a SettingsResolver.
func NewSettingsResolver(settings repository.SettingsRepository, logger *zap.Logger) *SettingsResolver {
	return &SettingsResolver{settings: settings, logger: logger}
}

// Resolve returns the settings row to use for the route, mode and category.
func (r *SettingsResolver) Resolve(ctx context.Context, route *models.Route, modeID uint, category models.ShippingCategory) (*models.CalculationSettings, error) {
	if route != nil {
		rows, err := r.settings.FindByRouteAndMode(ctx, route.ID, modeID)
		if err != nil {
			return nil, fmt.Errorf("load route settings: %w", err)
		}
		for i := range rows {
			if !rows[i].IsGlobalDefault && rows[i].SupportsCategory(category) {
				r.logger.Debug("using route-specific calculation settings",
					zap.Uint("route_id", route.ID), zap.Uint("settings_id", rows[i].ID))
				return &rows[i], nil
			}
		}
	}

	globals, err := r.settings.FindGlobalDefaults(ctx, modeID)
	if err != nil {
		return nil, fmt.Errorf("load global settings: %w", err)
	}
	for i := range globals {
		if globals[i].SupportsCategory(category) {
			r.logger.Debug("using global default calculation settings",
				zap.Uint("mode_id", modeID), zap.Uint("settings_id", globals[i].ID))
			return &globals[i], nil
		}
	}

	// No row at all for this mode; persist a standard default so the next
	// run finds it.
	created := models.DefaultCalculationSettings(modeID)
	if err := r.settings.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}
	r.logger.Warn("no calculation settings found, created global default",
		zap.Uint("mode_id", modeID), zap.String("category", string(category)))
	return created, nil
}
