package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/db"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/logger"
)

// GrievanceFilters narrows grievance listings. VisibleTo restricts results to
// rows the given user submitted plus anonymous ones; nil means no ownership
// restriction (authority/admin view).
type GrievanceFilters struct {
	Status    *models.GrievanceStatus
	Category  *models.GrievanceCategory
	VisibleTo *uuid.UUID
}

// IGrievanceRepository defines the interface for grievance database operations
type IGrievanceRepository interface {
	CreateWithInitialUpdate(ctx context.Context, grievance *models.Grievance, update *models.GrievanceUpdate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Grievance, error)
	List(ctx context.Context, filters GrievanceFilters, page, size int) ([]models.Grievance, int64, error)
	AppendUpdate(ctx context.Context, update *models.GrievanceUpdate, assignTo *uuid.UUID) error
	AddPhoto(ctx context.Context, id uuid.UUID, path string) error
}

// GrievanceRepository handles grievance database operations
type GrievanceRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewGrievanceRepository creates a new GrievanceRepository
func NewGrievanceRepository(database *db.PostgresDB) *GrievanceRepository {
	return &GrievanceRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const grievanceColumns = `id, submitter_id, title, description, category, priority, location, status, is_anonymous, photos, assigned_to, created_at, updated_at`

func scanGrievance(row pgx.Row) (*models.Grievance, error) {
	g := &models.Grievance{}
	err := row.Scan(&g.ID, &g.SubmitterID, &g.Title, &g.Description, &g.Category,
		&g.Priority, &g.Location, &g.Status, &g.IsAnonymous, &g.Photos,
		&g.AssignedTo, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("error scanning grievance: %w", err)
	}
	return g, nil
}

// CreateWithInitialUpdate inserts the grievance row and its first audit trail
// entry in a single transaction, so a grievance never exists without the
// update that backs its denormalized status.
func (r *GrievanceRepository) CreateWithInitialUpdate(ctx context.Context, grievance *models.Grievance, update *models.GrievanceUpdate) error {
	if grievance.ID == uuid.Nil {
		grievance.ID = uuid.New()
	}
	if update.ID == uuid.Nil {
		update.ID = uuid.New()
	}
	if grievance.Photos == nil {
		grievance.Photos = []string{}
	}
	update.GrievanceID = grievance.ID

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO grievances (id, submitter_id, title, description, category, priority, location, status, is_anonymous, photos)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at, updated_at`,
			grievance.ID, grievance.SubmitterID, grievance.Title, grievance.Description,
			grievance.Category, grievance.Priority, grievance.Location, grievance.Status,
			grievance.IsAnonymous, grievance.Photos).
			Scan(&grievance.CreatedAt, &grievance.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating grievance: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO grievance_updates (id, grievance_id, updated_by, status, remark)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`,
			update.ID, update.GrievanceID, update.UpdatedBy, update.Status, update.Remark).
			Scan(&update.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating initial grievance update: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a grievance with its full update trail
func (r *GrievanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Grievance, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+grievanceColumns+` FROM grievances WHERE id = $1`, id)
	g, err := scanGrievance(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, grievance_id, updated_by, status, remark, created_at
		FROM grievance_updates
		WHERE grievance_id = $1
		ORDER BY created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query grievance updates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u models.GrievanceUpdate
		if err := rows.Scan(&u.ID, &u.GrievanceID, &u.UpdatedBy, &u.Status, &u.Remark, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning grievance update: %w", err)
		}
		g.Updates = append(g.Updates, u)
	}
	return g, rows.Err()
}

// List retrieves grievances newest first with optional filters
func (r *GrievanceRepository) List(ctx context.Context, filters GrievanceFilters, page, size int) ([]models.Grievance, int64, error) {
	whereCondition := squirrel.And{}
	if filters.Status != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"status": *filters.Status})
	}
	if filters.Category != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"category": *filters.Category})
	}
	if filters.VisibleTo != nil {
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.Eq{"submitter_id": *filters.VisibleTo},
			squirrel.Eq{"is_anonymous": true},
		})
	}

	countSelect := r.sb.Select("COUNT(*)").From("grievances")
	if len(whereCondition) > 0 {
		countSelect = countSelect.Where(whereCondition)
	}
	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count grievances query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count grievances query")
		return nil, 0, fmt.Errorf("failed to count grievances: %w", err)
	}
	if total == 0 {
		return []models.Grievance{}, 0, nil
	}

	offset := uint64((page - 1) * size)
	sel := r.sb.Select(grievanceColumns).
		From("grievances").
		OrderBy("created_at DESC").
		Limit(uint64(size)).
		Offset(offset)
	if len(whereCondition) > 0 {
		sel = sel.Where(whereCondition)
	}

	querySql, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list grievances query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, querySql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list grievances query")
		return nil, 0, fmt.Errorf("failed to query grievances: %w", err)
	}
	defer rows.Close()

	grievances := []models.Grievance{}
	for rows.Next() {
		g, err := scanGrievance(rows)
		if err != nil {
			return nil, 0, err
		}
		grievances = append(grievances, *g)
	}
	return grievances, total, rows.Err()
}

// AppendUpdate appends an audit trail entry and synchronizes the grievance's
// denormalized status in one transaction. When assignTo is non-nil the
// grievance is also assigned to that user.
func (r *GrievanceRepository) AppendUpdate(ctx context.Context, update *models.GrievanceUpdate, assignTo *uuid.UUID) error {
	if update.ID == uuid.Nil {
		update.ID = uuid.New()
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO grievance_updates (id, grievance_id, updated_by, status, remark)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`,
			update.ID, update.GrievanceID, update.UpdatedBy, update.Status, update.Remark).
			Scan(&update.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating grievance update: %w", err)
		}

		var tag string
		if assignTo != nil {
			tag = `UPDATE grievances SET status = $2, assigned_to = $3, updated_at = NOW() WHERE id = $1`
			res, err := tx.Exec(ctx, tag, update.GrievanceID, update.Status, *assignTo)
			if err != nil {
				return fmt.Errorf("error updating grievance status: %w", err)
			}
			if res.RowsAffected() == 0 {
				return apperrors.ErrGrievanceNotFound
			}
			return nil
		}

		tag = `UPDATE grievances SET status = $2, updated_at = NOW() WHERE id = $1`
		res, err := tx.Exec(ctx, tag, update.GrievanceID, update.Status)
		if err != nil {
			return fmt.Errorf("error updating grievance status: %w", err)
		}
		if res.RowsAffected() == 0 {
			return apperrors.ErrGrievanceNotFound
		}
		return nil
	})
}

// AddPhoto appends a stored photo path to the grievance's photos array
func (r *GrievanceRepository) AddPhoto(ctx context.Context, id uuid.UUID, path string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE grievances SET photos = array_append(photos, $2), updated_at = NOW() WHERE id = $1`,
		id, path)
	if err != nil {
		return fmt.Errorf("error adding grievance photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGrievanceNotFound
	}
	return nil
}
