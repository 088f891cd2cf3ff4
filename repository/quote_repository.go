package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"quote-service/models"
)

// QuoteRepository defines data-access operations for quote sessions and the
// shipments they convert into.
type QuoteRepository interface {
	SaveSession(ctx context.Context, session *models.QuoteSession) error
	FindSession(ctx context.Context, id string) (*models.QuoteSession, error)
	MarkConverted(ctx context.Context, id string) error
	CreateShipment(ctx context.Context, shipment *models.Shipment) error
	FindShipmentByNumber(ctx context.Context, number string) (*models.Shipment, error)
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// GormQuoteRepository implements QuoteRepository using GORM.
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository.
func NewGormQuoteRepository(db *gorm.DB) QuoteRepository {
	return &GormQuoteRepository{db: db}
}

func (r *GormQuoteRepository) SaveSession(ctx context.Context, session *models.QuoteSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *GormQuoteRepository) FindSession(ctx context.Context, id string) (*models.QuoteSession, error) {
	var s models.QuoteSession
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormQuoteRepository) MarkConverted(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.QuoteSession{}).
		Where("id = ?", id).
		Update("converted", true).Error
}

func (r *GormQuoteRepository) CreateShipment(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

func (r *GormQuoteRepository) FindShipmentByNumber(ctx context.Context, number string) (*models.Shipment, error) {
	var s models.Shipment
	if err := r.db.WithContext(ctx).
		Where("shipment_number = ?", number).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteExpiredSessions removes unconverted sessions past their expiry.
func (r *GormQuoteRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? AND converted = ?", before, false).
		Delete(&models.QuoteSession{})
	return res.RowsAffected, res.Error
}
