package queries

import (
	"context"
	"database/sql"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads order_status_history directly.
type GetOrderHistoryQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB, timeout time.Duration) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db, timeout: readTimeout(timeout)}
}

// Handle returns entries oldest first, or *errs.ObjectNotFoundError when the
// order does not exist.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	db := h.db.WithContext(ctx)
	id := query.OrderID().String()

	var count int64
	if err := db.Raw(`SELECT COUNT(*) FROM orders WHERE id = ?`, id).Scan(&count).Error; err != nil {
		return nil, errs.NewPersistenceError("order history.exists", err)
	}
	if count == 0 {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	rows, err := db.Raw(`
		SELECT
			from_status,
			to_status,
			changed_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY changed_at, id
	`, id).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("order history.select", err)
	}
	defer rows.Close()

	history := make([]GetOrderHistoryQueryResponse, 0)
	for rows.Next() {
		var (
			from sql.NullString
			to   string
			at   time.Time
		)
		if err = rows.Scan(&from, &to, &at); err != nil {
			return nil, errs.NewPersistenceError("order history.scan", err)
		}

		entry := GetOrderHistoryQueryResponse{From: order.Unknown, ChangedAt: at}
		if from.Valid {
			if entry.From, err = order.ParseStatus(from.String); err != nil {
				return nil, err
			}
		}
		if entry.To, err = order.ParseStatus(to); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("order history.rows", err)
	}

	return history, nil
}
