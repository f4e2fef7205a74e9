package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/pkg/errors"
)

// Sortable subtype columns; anything else falls back to name.
var subtypeSortFields = map[string]string{
	"id":          "s.id",
	"name":        "s.name",
	"description": "s.description",
}

type subtypeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSubtypeRepository(db *DB) repository.SubtypeRepository {
	return &subtypeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *subtypeRepository) Create(ctx context.Context, s *domain.Subtype) (*domain.Subtype, error) {
	query := `
		INSERT INTO subtypes (name, description, type_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, s.Name, s.Description, s.TypeID).Scan(&s.ID)
	if err != nil {
		r.logger.Error("Failed to insert subtype", zap.String("name", s.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return s, nil
}

func (r *subtypeRepository) GetByID(ctx context.Context, id int64) (*domain.Subtype, error) {
	query := `
		SELECT s.id, s.name, s.description, s.type_id,
		       t.id, t.name, t.description, t.role
		FROM subtypes s
		JOIN types t ON t.id = s.type_id
		WHERE s.id = $1
	`

	var s domain.Subtype
	var t domain.TypeEntity
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.TypeID,
		&t.ID, &t.Name, &t.Description, &t.Role,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSubtypeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get subtype by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	s.Type = &t

	facilities, err := r.loadFacilities(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Facilities = facilities

	return &s, nil
}

func (r *subtypeRepository) GetByName(ctx context.Context, name string) (*domain.Subtype, error) {
	query := `SELECT id, name, description, type_id FROM subtypes WHERE name = $1`

	var s domain.Subtype
	err := r.db.QueryRowContext(ctx, query, name).Scan(&s.ID, &s.Name, &s.Description, &s.TypeID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get subtype by name", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &s, nil
}

func (r *subtypeRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Subtype, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT s.id, s.name, s.description, s.type_id,
		       t.id, t.name, t.description, t.role
		FROM subtypes s
		JOIN types t ON t.id = s.type_id
		WHERE s.id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to get subtypes by IDs", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var subtypes []*domain.Subtype
	for rows.Next() {
		var s domain.Subtype
		var t domain.TypeEntity
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.TypeID,
			&t.ID, &t.Name, &t.Description, &t.Role,
		); err != nil {
			r.logger.Error("Failed to scan subtype", zap.Error(err))
			continue
		}
		s.Type = &t
		subtypes = append(subtypes, &s)
	}

	return subtypes, nil
}

func (r *subtypeRepository) List(
	ctx context.Context,
	typeID int64,
	sortField, sortOrder string,
	limit int,
) ([]*domain.Subtype, error) {
	query := `
		SELECT s.id, s.name, s.description, s.type_id,
		       t.id, t.name, t.description, t.role
		FROM subtypes s
		JOIN types t ON t.id = s.type_id
	`

	var args []interface{}
	if typeID > 0 {
		args = append(args, typeID)
		query += fmt.Sprintf(" WHERE s.type_id = $%d", len(args))
	}

	column, ok := subtypeSortFields[sortField]
	if !ok {
		column = "s.name"
	}
	order := "DESC"
	if sortOrder == "ASC" {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", column, order)

	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list subtypes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var subtypes []*domain.Subtype
	for rows.Next() {
		var s domain.Subtype
		var t domain.TypeEntity
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.TypeID,
			&t.ID, &t.Name, &t.Description, &t.Role,
		); err != nil {
			r.logger.Error("Failed to scan subtype", zap.Error(err))
			continue
		}
		s.Type = &t
		subtypes = append(subtypes, &s)
	}

	return subtypes, nil
}

func (r *subtypeRepository) Update(ctx context.Context, s *domain.Subtype) error {
	query := `UPDATE subtypes SET name = $1, description = $2, type_id = $3 WHERE id = $4`

	if _, err := r.db.ExecContext(ctx, query, s.Name, s.Description, s.TypeID, s.ID); err != nil {
		r.logger.Error("Failed to update subtype", zap.Int64("id", s.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *subtypeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subtypes WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete subtype", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return affected, nil
}

func (r *subtypeRepository) loadFacilities(ctx context.Context, subtypeID int64) ([]domain.Facility, error) {
	query := `
		SELECT f.id, f.name, f.description
		FROM facilities f
		JOIN subtype_facilities sf ON sf.facility_id = f.id
		WHERE sf.subtype_id = $1
		ORDER BY f.id
	`

	rows, err := r.db.QueryContext(ctx, query, subtypeID)
	if err != nil {
		r.logger.Error("Failed to load subtype facilities", zap.Int64("subtype_id", subtypeID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var facilities []domain.Facility
	for rows.Next() {
		var f domain.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Description); err != nil {
			r.logger.Error("Failed to scan facility", zap.Error(err))
			continue
		}
		facilities = append(facilities, f)
	}

	return facilities, nil
}
