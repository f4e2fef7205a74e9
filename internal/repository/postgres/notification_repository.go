package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/pkg/errors"
)

type notificationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewNotificationRepository(db *DB) repository.NotificationRepository {
	return &notificationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query := `
		INSERT INTO notifications (title, message)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, n.Title, n.Message).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert notification", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return n, nil
}

func (r *notificationRepository) List(ctx context.Context) ([]*domain.Notification, error) {
	query := `SELECT id, title, message, created_at FROM notifications ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.CreatedAt); err != nil {
			r.logger.Error("Failed to scan notification", zap.Error(err))
			continue
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}
