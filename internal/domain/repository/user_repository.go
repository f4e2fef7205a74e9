package repository

import (
	"context"

	"github.com/city-tourism-backend/internal/domain"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)

	GetByID(ctx context.Context, id int64) (*domain.User, error)

	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	List(ctx context.Context) ([]*domain.User, error)

	Update(ctx context.Context, u *domain.User) error

	Delete(ctx context.Context, id int64) (int64, error)

	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error

	// UpdateRefreshToken overwrites the stored refresh-token hash;
	// nil clears it (logout).
	UpdateRefreshToken(ctx context.Context, id int64, hash *string) error

	// UpdateResetToken manages the dedicated password-reset hash.
	UpdateResetToken(ctx context.Context, id int64, hash *string) error
}

// NotificationRepository определяет методы для работы с уведомлениями
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)

	List(ctx context.Context) ([]*domain.Notification, error)
}
