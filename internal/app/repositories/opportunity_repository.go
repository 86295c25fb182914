package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/db"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/dberrors"
	"github.com/aegisplatform/aegis/internal/pkg/logger"
)

// OpportunityFilters narrows opportunity listings
type OpportunityFilters struct {
	Type          *models.OpportunityType
	IsOpen        *bool
	DeadlineAfter *time.Time
}

// IOpportunityRepository defines the interface for opportunity and
// application database operations
type IOpportunityRepository interface {
	Create(ctx context.Context, opportunity *models.Opportunity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error)
	List(ctx context.Context, filters OpportunityFilters, page, size int) ([]models.Opportunity, int64, error)
	Close(ctx context.Context, id uuid.UUID) error
	CreateApplication(ctx context.Context, application *models.Application) error
	GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListApplicationsByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]models.Application, error)
	ListApplicationsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	SetResumePath(ctx context.Context, id uuid.UUID, path string) error
}

// OpportunityRepository handles opportunity database operations
type OpportunityRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewOpportunityRepository creates a new OpportunityRepository
func NewOpportunityRepository(database *db.PostgresDB) *OpportunityRepository {
	return &OpportunityRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const opportunityColumns = `id, faculty_id, title, description, type, skills, duration, stipend, deadline, is_open, created_at, updated_at`

func scanOpportunity(row pgx.Row) (*models.Opportunity, error) {
	o := &models.Opportunity{}
	err := row.Scan(&o.ID, &o.FacultyID, &o.Title, &o.Description, &o.Type, &o.Skills,
		&o.Duration, &o.Stipend, &o.Deadline, &o.IsOpen, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("error scanning opportunity: %w", err)
	}
	return o, nil
}

// Create inserts a new opportunity posting
func (r *OpportunityRepository) Create(ctx context.Context, opportunity *models.Opportunity) error {
	if opportunity.ID == uuid.Nil {
		opportunity.ID = uuid.New()
	}
	if opportunity.Skills == nil {
		opportunity.Skills = []string{}
	}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO opportunities (id, faculty_id, title, description, type, skills, duration, stipend, deadline, is_open)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		opportunity.ID, opportunity.FacultyID, opportunity.Title, opportunity.Description,
		opportunity.Type, opportunity.Skills, opportunity.Duration, opportunity.Stipend,
		opportunity.Deadline, opportunity.IsOpen).
		Scan(&opportunity.CreatedAt, &opportunity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating opportunity: %w", err)
	}
	return nil
}

// GetByID retrieves an opportunity by ID
func (r *OpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`, id)
	return scanOpportunity(row)
}

// List retrieves opportunities newest first with optional filters
func (r *OpportunityRepository) List(ctx context.Context, filters OpportunityFilters, page, size int) ([]models.Opportunity, int64, error) {
	whereCondition := squirrel.And{}
	if filters.Type != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"type": *filters.Type})
	}
	if filters.IsOpen != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"is_open": *filters.IsOpen})
	}
	if filters.DeadlineAfter != nil {
		whereCondition = append(whereCondition, squirrel.GtOrEq{"deadline": *filters.DeadlineAfter})
	}

	countSelect := r.sb.Select("COUNT(*)").From("opportunities")
	if len(whereCondition) > 0 {
		countSelect = countSelect.Where(whereCondition)
	}
	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count opportunities query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count opportunities query")
		return nil, 0, fmt.Errorf("failed to count opportunities: %w", err)
	}
	if total == 0 {
		return []models.Opportunity{}, 0, nil
	}

	offset := uint64((page - 1) * size)
	sel := r.sb.Select(opportunityColumns).
		From("opportunities").
		OrderBy("created_at DESC").
		Limit(uint64(size)).
		Offset(offset)
	if len(whereCondition) > 0 {
		sel = sel.Where(whereCondition)
	}

	querySql, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list opportunities query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, querySql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list opportunities query")
		return nil, 0, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer rows.Close()

	opportunities := []models.Opportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, 0, err
		}
		opportunities = append(opportunities, *o)
	}
	return opportunities, total, rows.Err()
}

// Close marks an opportunity as no longer accepting applications
func (r *OpportunityRepository) Close(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE opportunities SET is_open = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error closing opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}

// CreateApplication inserts a new application.
// UNIQUE(opportunity_id, student_id) is the authoritative duplicate guard.
func (r *OpportunityRepository) CreateApplication(ctx context.Context, application *models.Application) error {
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO applications (id, opportunity_id, student_id, status, cover_letter, resume_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING applied_at, updated_at`,
		application.ID, application.OpportunityID, application.StudentID,
		application.Status, application.CoverLetter, application.ResumePath).
		Scan(&application.AppliedAt, &application.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyApplied
		}
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

const applicationColumns = `id, opportunity_id, student_id, status, cover_letter, resume_path, applied_at, updated_at`

// GetApplicationByID retrieves an application by ID
func (r *OpportunityRepository) GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	a := &models.Application{}
	err := r.db.Pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id).
		Scan(&a.ID, &a.OpportunityID, &a.StudentID, &a.Status, &a.CoverLetter,
			&a.ResumePath, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error getting application: %w", err)
	}
	return a, nil
}

// ListApplicationsByOpportunity retrieves all applications for an opportunity
func (r *OpportunityRepository) ListApplicationsByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]models.Application, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE opportunity_id = $1
		ORDER BY applied_at DESC`, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// ListApplicationsByStudent retrieves a student's applications with the
// opportunity attached
func (r *OpportunityRepository) ListApplicationsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Application, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT a.id, a.opportunity_id, a.student_id, a.status, a.cover_letter,
		       a.resume_path, a.applied_at, a.updated_at,
		       o.id, o.faculty_id, o.title, o.description, o.type, o.skills,
		       o.duration, o.stipend, o.deadline, o.is_open, o.created_at, o.updated_at
		FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id
		WHERE a.student_id = $1
		ORDER BY a.applied_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	applications := []models.Application{}
	for rows.Next() {
		var a models.Application
		var o models.Opportunity
		if err := rows.Scan(&a.ID, &a.OpportunityID, &a.StudentID, &a.Status, &a.CoverLetter,
			&a.ResumePath, &a.AppliedAt, &a.UpdatedAt,
			&o.ID, &o.FacultyID, &o.Title, &o.Description, &o.Type, &o.Skills,
			&o.Duration, &o.Stipend, &o.Deadline, &o.IsOpen, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		a.Opportunity = &o
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

// UpdateApplicationStatus records a review decision
func (r *OpportunityRepository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// SetResumePath records the stored resume blob path
func (r *OpportunityRepository) SetResumePath(ctx context.Context, id uuid.UUID, path string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE applications SET resume_path = $2, updated_at = NOW() WHERE id = $1`, id, path)
	if err != nil {
		return fmt.Errorf("error setting resume path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

func collectApplications(rows pgx.Rows) ([]models.Application, error) {
	applications := []models.Application{}
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(&a.ID, &a.OpportunityID, &a.StudentID, &a.Status, &a.CoverLetter,
			&a.ResumePath, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}
