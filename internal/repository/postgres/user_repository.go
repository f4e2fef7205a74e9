package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/pkg/errors"
)

const userColumns = `
	id, name, lastname, username, password, email, roles,
	refresh_token, reset_token, type_id
`

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, lastname, username, password, email, roles, type_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	roles := u.RoleStrings()
	if len(roles) == 0 {
		roles = []string{string(domain.RoleUser)}
		u.Roles = []domain.UserRole{domain.RoleUser}
	}

	err := r.db.QueryRowContext(ctx, query,
		u.Name, u.Lastname, u.Username, u.Password, u.Email, pq.Array(roles), u.TypeID,
	).Scan(&u.ID)
	if err != nil {
		r.logger.Error("Failed to insert user", zap.String("username", u.Username), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			r.logger.Error("Failed to scan user", zap.Error(err))
			continue
		}
		users = append(users, u)
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users SET
			name = $1, lastname = $2, username = $3, email = $4,
			roles = $5, type_id = $6
		WHERE id = $7
	`

	_, err := r.db.ExecContext(ctx, query,
		u.Name, u.Lastname, u.Username, u.Email,
		pq.Array(u.RoleStrings()), u.TypeID, u.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update user", zap.Int64("id", u.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete user", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return affected, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET password = $1 WHERE id = $2`, hashedPassword, id)
	if err != nil {
		r.logger.Error("Failed to update password", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, id int64, hash *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET refresh_token = $1 WHERE id = $2`, hash, id)
	if err != nil {
		r.logger.Error("Failed to update refresh token", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *userRepository) UpdateResetToken(ctx context.Context, id int64, hash *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET reset_token = $1 WHERE id = $2`, hash, id)
	if err != nil {
		r.logger.Error("Failed to update reset token", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *userRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return u, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var roles []string

	err := row.Scan(
		&u.ID, &u.Name, &u.Lastname, &u.Username, &u.Password, &u.Email,
		pq.Array(&roles), &u.RefreshToken, &u.ResetToken, &u.TypeID,
	)
	if err != nil {
		return nil, err
	}

	u.Roles = make([]domain.UserRole, 0, len(roles))
	for _, role := range roles {
		u.Roles = append(u.Roles, domain.UserRole(role))
	}

	return &u, nil
}
