package outboxrepo

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append writes events as unsent messages. The unit of work calls it inside
// the transaction that stores the aggregates.
func (r *GormOutboxRepository) Append(ctx context.Context, events []order.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, e := range events {
		dto, err := NewMessage(e)
		if err != nil {
			return errs.NewPersistenceError("outbox.encode", err)
		}
		dtos = append(dtos, dto)
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return errs.NewPersistenceError("outbox.append", err)
	}
	return nil
}

// FetchPending uses FOR UPDATE SKIP LOCKED on PostgreSQL; SQLite ignores the clause.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("occurred_at").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("outbox.fetch_pending", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toPort(dto))
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []string, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Update("sent_at", sentAt.UTC()).Error
	if err != nil {
		return errs.NewPersistenceError("outbox.mark_sent", err)
	}
	return nil
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, ids []string, cause error) error {
	if len(ids) == 0 {
		return nil
	}
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}
	err := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": lastError,
		}).Error
	if err != nil {
		return errs.NewPersistenceError("outbox.mark_failed", err)
	}
	return nil
}
