package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/pkg/errors"
)

type typeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTypeRepository(db *DB) repository.TypeRepository {
	return &typeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *typeRepository) Create(ctx context.Context, t *domain.TypeEntity) (*domain.TypeEntity, error) {
	query := `
		INSERT INTO types (name, description, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, t.Name, t.Description, t.Role).Scan(&t.ID)
	if err != nil {
		r.logger.Error("Failed to insert type", zap.String("name", t.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return t, nil
}

func (r *typeRepository) GetByID(ctx context.Context, id int64) (*domain.TypeEntity, error) {
	query := `SELECT id, name, description, role FROM types WHERE id = $1`

	var t domain.TypeEntity
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description, &t.Role)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTypeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get type by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &t, nil
}

func (r *typeRepository) GetByRole(ctx context.Context, role domain.TypeRole) (*domain.TypeEntity, error) {
	query := `SELECT id, name, description, role FROM types WHERE role = $1`

	var t domain.TypeEntity
	err := r.db.QueryRowContext(ctx, query, role).Scan(&t.ID, &t.Name, &t.Description, &t.Role)
	if err == sql.ErrNoRows {
		// Absence is not an error here: callers use this to check role
		// uniqueness before creating.
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get type by role", zap.String("role", string(role)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &t, nil
}

func (r *typeRepository) List(ctx context.Context) ([]*domain.TypeEntity, error) {
	query := `SELECT id, name, description, role FROM types ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list types", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var types []*domain.TypeEntity
	for rows.Next() {
		var t domain.TypeEntity
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Role); err != nil {
			r.logger.Error("Failed to scan type", zap.Error(err))
			continue
		}
		types = append(types, &t)
	}

	return types, nil
}

func (r *typeRepository) Update(ctx context.Context, t *domain.TypeEntity) error {
	query := `UPDATE types SET name = $1, description = $2, role = $3 WHERE id = $4`

	if _, err := r.db.ExecContext(ctx, query, t.Name, t.Description, t.Role, t.ID); err != nil {
		r.logger.Error("Failed to update type", zap.Int64("id", t.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *typeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM types WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete type", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return affected, nil
}
