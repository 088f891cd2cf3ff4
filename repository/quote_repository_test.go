package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"quote-service/models"
	"quote-service/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestCreateShipment_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	shipment := &models.Shipment{
		ShipmentNumber: "SH-ABCD1234",
		SessionID:      "11111111-2222-3333-4444-555555555555",
		Mode:           "air",
		WeightKg:       20,
		TotalCost:      165,
		Currency:       "USD",
		Status:         "created",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "shipments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.CreateShipment(context.Background(), shipment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSession_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "quote_sessions"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	s, err := repo.FindSession(context.Background(), "missing-id")
	assert.Error(t, err)
	assert.True(t, repository.IsNotFound(err))
	assert.Nil(t, s)
}

func TestFindSession_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "status", "category", "converted", "expires_at", "created_at", "updated_at"}).
		AddRow("sess-1", "ok", "small_parcel", false, now.Add(time.Hour), now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "quote_sessions"`)).
		WillReturnRows(rows)

	s, err := repo.FindSession(context.Background(), "sess-1")
	assert.NoError(t, err)
	assert.Equal(t, "sess-1", s.ID)
	assert.Equal(t, models.QuoteStatusOK, s.Status)
	assert.False(t, s.Converted)
}

func TestMarkConverted(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "quote_sessions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkConverted(context.Background(), "sess-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredSessions(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "quote_sessions"`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := repo.DeleteExpiredSessions(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
