// Package idempotencyrepo keeps order creation idempotency keys in the
// idempotency_keys table. It is the fallback when Redis is not configured.
package idempotencyrepo

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IdempotencyKeyDTO struct {
	Key       string     `gorm:"column:idempotency_key;type:varchar(128);primaryKey"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	ExpiresAt time.Time  `gorm:"not null;index"`
}

func (IdempotencyKeyDTO) TableName() string {
	return "idempotency_keys"
}

// GormIdempotencyStore implements ports.IdempotencyStore. A key lives for ttl
// after it was reserved or completed; an expired key can be reserved again.
type GormIdempotencyStore struct {
	db    *gorm.DB
	ttl   time.Duration
	clock ports.Clock
}

func NewGormIdempotencyStore(db *gorm.DB, ttl time.Duration, clock ports.Clock) *GormIdempotencyStore {
	return &GormIdempotencyStore{db: db, ttl: ttl, clock: clock}
}

func (s *GormIdempotencyStore) Reserve(ctx context.Context, key string) (ports.Reservation, error) {
	now := s.clock.Now().UTC()
	db := s.db.WithContext(ctx)

	if err := db.Where("idempotency_key = ? AND expires_at <= ?", key, now).Delete(&IdempotencyKeyDTO{}).Error; err != nil {
		return ports.Reservation{}, errs.NewPersistenceError("idempotency.expire", err)
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&IdempotencyKeyDTO{
		Key:       key,
		ExpiresAt: now.Add(s.ttl),
	})
	if result.Error != nil {
		return ports.Reservation{}, errs.NewPersistenceError("idempotency.reserve", result.Error)
	}
	if result.RowsAffected == 1 {
		return ports.Reservation{Acquired: true}, nil
	}

	var dto IdempotencyKeyDTO
	if err := db.First(&dto, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Released between the insert and the read.
			return ports.Reservation{}, nil
		}
		return ports.Reservation{}, errs.NewPersistenceError("idempotency.get", err)
	}
	if dto.OrderID == nil {
		return ports.Reservation{}, nil
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.Reservation{}, err
	}
	return ports.Reservation{OrderID: &orderID}, nil
}

func (s *GormIdempotencyStore) Complete(ctx context.Context, key string, orderID kernel.UUID) error {
	raw := orderID.Bytes()
	err := s.db.WithContext(ctx).
		Model(&IdempotencyKeyDTO{}).
		Where("idempotency_key = ?", key).
		Updates(map[string]any{
			"order_id":   raw.String(),
			"expires_at": s.clock.Now().UTC().Add(s.ttl),
		}).Error
	if err != nil {
		return errs.NewPersistenceError("idempotency.complete", err)
	}
	return nil
}

// Release drops an uncompleted reservation so the client can retry.
func (s *GormIdempotencyStore) Release(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("idempotency_key = ? AND order_id IS NULL", key).
		Delete(&IdempotencyKeyDTO{}).Error
	if err != nil {
		return errs.NewPersistenceError("idempotency.release", err)
	}
	return nil
}
