package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quote-service/models"
)

const rateCacheTTL = 5 * time.Minute

// CachedRateProvider wraps a RateProvider with a Redis rate cache. Cache
// failures never fail the request; they fall through to the gateway.
type CachedRateProvider struct {
	inner  RateProvider
	client *redis.Client
	logger *zap.Logger
}

// NewCachedRateProvider creates a caching wrapper around inner.
func NewCachedRateProvider(inner RateProvider, client *redis.Client, logger *zap.Logger) *CachedRateProvider {
	return &CachedRateProvider{inner: inner, client: client, logger: logger}
}

// GetRates serves rates from cache when a fresh entry exists, otherwise
// queries the gateway and stores the result.
func (c *CachedRateProvider) GetRates(ctx context.Context, query RateQuery) ([]models.CourierRate, error) {
	key := rateCacheKey(query)

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var rates []models.CourierRate
		if err := json.Unmarshal(data, &rates); err == nil {
			return rates, nil
		}
		c.logger.Warn("corrupt rate cache entry, refetching", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("rate cache read failed", zap.String("key", key), zap.Error(err))
	}

	rates, err := c.inner.GetRates(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rates); err == nil {
		if err := c.client.Set(ctx, key, data, rateCacheTTL).Err(); err != nil {
			c.logger.Warn("rate cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return rates, nil
}

// CreateShipment is never cached.
func (c *CachedRateProvider) CreateShipment(ctx context.Context, query RateQuery, rateID string) (*models.ShipmentLabel, error) {
	return c.inner.CreateShipment(ctx, query, rateID)
}

// ValidateAddress is never cached.
func (c *CachedRateProvider) ValidateAddress(ctx context.Context, address models.Address) (bool, error) {
	return c.inner.ValidateAddress(ctx, address)
}

// Track is never cached.
func (c *CachedRateProvider) Track(ctx context.Context, trackingNumber string) (*models.TrackingStatus, error) {
	return c.inner.Track(ctx, trackingNumber)
}

func rateCacheKey(q RateQuery) string {
	return fmt.Sprintf("rates:%s:%s:%s:%s:%.3f:%.1fx%.1fx%.1f",
		q.Origin.Country, q.Origin.PostalCode,
		q.Destination.Country, q.Destination.PostalCode,
		q.WeightKg,
		q.Dimensions.LengthCm, q.Dimensions.WidthCm, q.Dimensions.HeightCm,
	)
}
