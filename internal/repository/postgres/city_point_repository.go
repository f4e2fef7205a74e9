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

// Sortable columns. "type" and "subtype" sort by the joined taxonomy
// name; anything unknown falls back to the point name.
var cityPointSortFields = map[string]string{
	"id":        "cp.id",
	"name":      "cp.name",
	"address":   "cp.address",
	"state":     "cp.state",
	"stars":     "cp.stars",
	"startDate": "cp.start_date",
	"createdAt": "cp.created_at",
	"type":      "t.name",
	"subtype":   "s.name",
}

const cityPointColumns = `
	cp.id, cp.name, cp.contact, cp.address, cp.description,
	cp.start_date, cp.state, cp.stars, cp.places, cp.images,
	cp.id_user, cp.type_id, cp.subtype_id,
	cp.created_at, cp.updated_at, cp.deleted_at,
	t.id, t.name, t.description, t.role,
	s.id, s.name, s.description, s.type_id
`

type cityPointRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCityPointRepository(db *DB) repository.CityPointRepository {
	return &cityPointRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *cityPointRepository) Create(ctx context.Context, p *domain.CityPoint, facilityIDs []int64) (*domain.CityPoint, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		INSERT INTO citypoints (
			name, contact, address, description, start_date, state,
			stars, places, images, id_user, type_id, subtype_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		p.Name, p.Contact, p.Address, p.Description, p.StartDate, p.State,
		p.Stars, p.Places, pq.Array(p.Images), p.UserID, p.TypeID, p.SubtypeID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert city point", zap.String("name", p.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := r.linkFacilities(ctx, tx, p.ID, facilityIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit city point create", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return p, nil
}

func (r *cityPointRepository) GetByID(ctx context.Context, id int64, mode domain.QueryMode) (*domain.CityPoint, error) {
	query := `
		SELECT ` + cityPointColumns + `
		FROM citypoints cp
		JOIN types t ON t.id = cp.type_id
		LEFT JOIN subtypes s ON s.id = cp.subtype_id
		WHERE cp.id = $1` + lifecycleClause(mode)

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := r.scanCityPoint(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPointNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get city point by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	facilities, err := r.loadFacilities(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.Facilities = facilities[p.ID]

	return p, nil
}

func (r *cityPointRepository) GetByName(ctx context.Context, name string) (*domain.CityPoint, error) {
	query := `
		SELECT id, name FROM citypoints
		WHERE name = $1 AND deleted_at IS NULL
	`

	var p domain.CityPoint
	err := r.db.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get city point by name", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &p, nil
}

func (r *cityPointRepository) List(ctx context.Context, filter domain.CityPointFilter) ([]*domain.CityPoint, int, error) {
	query := `
		SELECT ` + cityPointColumns + `, COUNT(*) OVER() AS total
		FROM citypoints cp
		JOIN types t ON t.id = cp.type_id
		LEFT JOIN subtypes s ON s.id = cp.subtype_id
		WHERE 1=1` + lifecycleClause(filter.Mode)

	var args []interface{}

	if filter.TypeID > 0 {
		args = append(args, filter.TypeID)
		query += fmt.Sprintf(" AND cp.type_id = $%d", len(args))
	}
	if filter.SubtypeID > 0 {
		args = append(args, filter.SubtypeID)
		query += fmt.Sprintf(" AND cp.subtype_id = $%d", len(args))
	}
	if filter.UserID > 0 {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND cp.id_user = $%d", len(args))
	}
	if filter.EventsOnly {
		// Events listing: EVENTS role, hidden state excluded, soonest first.
		args = append(args, domain.RoleEvents)
		query += fmt.Sprintf(" AND t.role = $%d AND cp.state <> 1", len(args))
	}

	if filter.EventsOnly {
		query += " ORDER BY cp.start_date ASC"
	} else {
		column, ok := cityPointSortFields[filter.SortField]
		if !ok {
			column = "cp.name"
		}
		order := "DESC"
		if filter.SortOrder == "ASC" {
			order = "ASC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s", column, order)
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, (filter.Page-1)*filter.Limit)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list city points", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}
	defer rows.Close()

	var points []*domain.CityPoint
	var total int
	for rows.Next() {
		p, rowTotal, err := r.scanCityPointWithTotal(rows)
		if err != nil {
			r.logger.Error("Failed to scan city point", zap.Error(err))
			continue
		}
		total = rowTotal
		points = append(points, p)
	}

	if len(points) > 0 {
		ids := make([]int64, 0, len(points))
		for _, p := range points {
			ids = append(ids, p.ID)
		}
		facilities, err := r.loadFacilities(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for _, p := range points {
			p.Facilities = facilities[p.ID]
		}
	}

	return points, total, nil
}

func (r *cityPointRepository) Update(ctx context.Context, p *domain.CityPoint, facilityIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		UPDATE citypoints SET
			name = $1, contact = $2, address = $3, description = $4,
			start_date = $5, state = $6, stars = $7, places = $8,
			images = $9, subtype_id = $10, updated_at = NOW()
		WHERE id = $11 AND deleted_at IS NULL
	`

	_, err = tx.ExecContext(ctx, query,
		p.Name, p.Contact, p.Address, p.Description,
		p.StartDate, p.State, p.Stars, p.Places,
		pq.Array(p.Images), p.SubtypeID, p.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update city point", zap.Int64("id", p.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if facilityIDs != nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM citypoint_facilities WHERE citypoint_id = $1`, p.ID)
		if err != nil {
			r.logger.Error("Failed to clear facility links", zap.Int64("id", p.ID), zap.Error(err))
			return errors.ErrDatabaseError
		}
		if err := r.linkFacilities(ctx, tx, p.ID, facilityIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit city point update", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *cityPointRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE citypoints SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		r.logger.Error("Failed to soft-delete city point", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return affected, nil
}

func (r *cityPointRepository) Restore(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE citypoints SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		r.logger.Error("Failed to restore city point", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return affected, nil
}

func (r *cityPointRepository) ListImagePaths(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT unnest(images) FROM citypoints`)
	if err != nil {
		r.logger.Error("Failed to list image paths", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, errors.ErrDatabaseError
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return paths, nil
}

func lifecycleClause(mode domain.QueryMode) string {
	switch mode {
	case domain.IncludeDeleted:
		return ""
	case domain.DeletedOnly:
		return " AND cp.deleted_at IS NOT NULL"
	default:
		return " AND cp.deleted_at IS NULL"
	}
}

func (r *cityPointRepository) linkFacilities(ctx context.Context, tx *sqlx.Tx, pointID int64, facilityIDs []int64) error {
	for _, facilityID := range facilityIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO citypoint_facilities (citypoint_id, facility_id) VALUES ($1, $2)`,
			pointID, facilityID,
		)
		if err != nil {
			r.logger.Error("Failed to link facility to city point",
				zap.Int64("citypoint_id", pointID),
				zap.Int64("facility_id", facilityID),
				zap.Error(err),
			)
			return errors.ErrDatabaseError
		}
	}
	return nil
}

// loadFacilities batch-loads facility relations for a page of points.
func (r *cityPointRepository) loadFacilities(ctx context.Context, pointIDs []int64) (map[int64][]domain.Facility, error) {
	query := `
		SELECT cf.citypoint_id, f.id, f.name, f.description
		FROM facilities f
		JOIN citypoint_facilities cf ON cf.facility_id = f.id
		WHERE cf.citypoint_id = ANY($1)
		ORDER BY f.id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(pointIDs))
	if err != nil {
		r.logger.Error("Failed to load city point facilities", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	result := make(map[int64][]domain.Facility, len(pointIDs))
	for rows.Next() {
		var pointID int64
		var f domain.Facility
		if err := rows.Scan(&pointID, &f.ID, &f.Name, &f.Description); err != nil {
			r.logger.Error("Failed to scan facility", zap.Error(err))
			continue
		}
		result[pointID] = append(result[pointID], f)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *cityPointRepository) scanCityPoint(row rowScanner) (*domain.CityPoint, error) {
	var p domain.CityPoint
	var t domain.TypeEntity
	var sID, sTypeID sql.NullInt64
	var sName, sDescription sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &p.Contact, &p.Address, &p.Description,
		&p.StartDate, &p.State, &p.Stars, &p.Places, pq.Array(&p.Images),
		&p.UserID, &p.TypeID, &p.SubtypeID,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		&t.ID, &t.Name, &t.Description, &t.Role,
		&sID, &sName, &sDescription, &sTypeID,
	)
	if err != nil {
		return nil, err
	}

	p.Type = &t
	if sID.Valid {
		p.Subtype = &domain.Subtype{
			ID:          sID.Int64,
			Name:        sName.String,
			Description: sDescription.String,
			TypeID:      sTypeID.Int64,
		}
	}

	return &p, nil
}

func (r *cityPointRepository) scanCityPointWithTotal(rows *sql.Rows) (*domain.CityPoint, int, error) {
	var p domain.CityPoint
	var t domain.TypeEntity
	var sID, sTypeID sql.NullInt64
	var sName, sDescription sql.NullString
	var total int

	err := rows.Scan(
		&p.ID, &p.Name, &p.Contact, &p.Address, &p.Description,
		&p.StartDate, &p.State, &p.Stars, &p.Places, pq.Array(&p.Images),
		&p.UserID, &p.TypeID, &p.SubtypeID,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		&t.ID, &t.Name, &t.Description, &t.Role,
		&sID, &sName, &sDescription, &sTypeID,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}

	p.Type = &t
	if sID.Valid {
		p.Subtype = &domain.Subtype{
			ID:          sID.Int64,
			Name:        sName.String,
			Description: sDescription.String,
			TypeID:      sTypeID.Int64,
		}
	}

	return &p, total, nil
}
