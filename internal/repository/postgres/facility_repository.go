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

type facilityRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewFacilityRepository(db *DB) repository.FacilityRepository {
	return &facilityRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *facilityRepository) Create(ctx context.Context, f *domain.Facility, subtypeIDs []int64) (*domain.Facility, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		INSERT INTO facilities (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := tx.QueryRowContext(ctx, query, f.Name, f.Description).Scan(&f.ID); err != nil {
		r.logger.Error("Failed to insert facility", zap.String("name", f.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	for _, subtypeID := range subtypeIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO subtype_facilities (subtype_id, facility_id) VALUES ($1, $2)`,
			subtypeID, f.ID,
		)
		if err != nil {
			r.logger.Error("Failed to link facility to subtype",
				zap.Int64("facility_id", f.ID),
				zap.Int64("subtype_id", subtypeID),
				zap.Error(err),
			)
			return nil, errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit facility create", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return f, nil
}

func (r *facilityRepository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	query := `SELECT id, name, description FROM facilities WHERE id = $1`

	var f domain.Facility
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.Description)
	if err == sql.ErrNoRows {
		return nil, errors.ErrFacilityNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get facility by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	subtypes, err := r.loadSubtypes(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	f.Subtypes = subtypes

	return &f, nil
}

func (r *facilityRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Facility, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, description FROM facilities WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to get facilities by IDs", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanFacilities(rows)
}

func (r *facilityRepository) ListBySubtype(ctx context.Context, subtypeID int64) ([]*domain.Facility, error) {
	query := `
		SELECT f.id, f.name, f.description
		FROM facilities f
		JOIN subtype_facilities sf ON sf.facility_id = f.id
		WHERE sf.subtype_id = $1
		ORDER BY f.id
	`

	rows, err := r.db.QueryContext(ctx, query, subtypeID)
	if err != nil {
		r.logger.Error("Failed to list facilities by subtype", zap.Int64("subtype_id", subtypeID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanFacilities(rows)
}

func (r *facilityRepository) List(ctx context.Context) ([]*domain.Facility, error) {
	query := `SELECT id, name, description FROM facilities ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list facilities", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	facilities, err := r.scanFacilities(rows)
	if err != nil {
		return nil, err
	}

	// Eager-load the subtypes relation for each facility.
	for _, f := range facilities {
		subtypes, err := r.loadSubtypes(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		f.Subtypes = subtypes
	}

	return facilities, nil
}

func (r *facilityRepository) Update(ctx context.Context, f *domain.Facility) error {
	query := `UPDATE facilities SET name = $1, description = $2 WHERE id = $3`

	if _, err := r.db.ExecContext(ctx, query, f.Name, f.Description, f.ID); err != nil {
		r.logger.Error("Failed to update facility", zap.Int64("id", f.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *facilityRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete facility", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return affected, nil
}

func (r *facilityRepository) scanFacilities(rows *sql.Rows) ([]*domain.Facility, error) {
	var facilities []*domain.Facility
	for rows.Next() {
		var f domain.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Description); err != nil {
			r.logger.Error("Failed to scan facility", zap.Error(err))
			continue
		}
		facilities = append(facilities, &f)
	}
	return facilities, nil
}

func (r *facilityRepository) loadSubtypes(ctx context.Context, facilityID int64) ([]domain.Subtype, error) {
	query := `
		SELECT s.id, s.name, s.description, s.type_id
		FROM subtypes s
		JOIN subtype_facilities sf ON sf.subtype_id = s.id
		WHERE sf.facility_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, facilityID)
	if err != nil {
		r.logger.Error("Failed to load facility subtypes", zap.Int64("facility_id", facilityID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var subtypes []domain.Subtype
	for rows.Next() {
		var s domain.Subtype
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.TypeID); err != nil {
			r.logger.Error("Failed to scan subtype", zap.Error(err))
			continue
		}
		subtypes = append(subtypes, s)
	}

	return subtypes, nil
}
