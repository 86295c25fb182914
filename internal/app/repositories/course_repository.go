package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/db"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/dberrors"
	"github.com/aegisplatform/aegis/internal/pkg/logger"
)

// CourseFilters narrows course listings
type CourseFilters struct {
	Department string
	Semester   string
}

// ICourseRepository defines the interface for course-related database operations
type ICourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context, filters CourseFilters, page, size int) ([]models.Course, int64, error)
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error)
	CreateResource(ctx context.Context, resource *models.Resource) error
	GetResourceByID(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	ListResources(ctx context.Context, courseID uuid.UUID, resourceType *models.ResourceType) ([]models.Resource, error)
	SetResourceFilePath(ctx context.Context, id uuid.UUID, filePath string) error
	IncrementDownloads(ctx context.Context, id uuid.UUID) error
	CreateCalendarEvent(ctx context.Context, event *models.CalendarEvent) error
	ListCalendarEvents(ctx context.Context, courseID uuid.UUID) ([]models.CalendarEvent, error)
}

// CourseRepository handles course, enrollment, resource and calendar
// database operations
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateCourse inserts a new course. The courses_code_key unique constraint
// is the authoritative duplicate guard.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO courses (id, code, name, credits, semester, department, professor_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		course.ID, course.Code, course.Name, course.Credits, course.Semester,
		course.Department, course.ProfessorID, course.Description).
		Scan(&course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetCourseByID retrieves a course with its enrollment count
func (r *CourseRepository) GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	c := &models.Course{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT c.id, c.code, c.name, c.credits, c.semester, c.department,
		       c.professor_id, c.description, c.created_at, c.updated_at,
		       COUNT(e.id) AS enrollment_count
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`, id).
		Scan(&c.ID, &c.Code, &c.Name, &c.Credits, &c.Semester, &c.Department,
			&c.ProfessorID, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.EnrollmentCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return c, nil
}

// ListCourses retrieves courses with optional department/semester filters
func (r *CourseRepository) ListCourses(ctx context.Context, filters CourseFilters, page, size int) ([]models.Course, int64, error) {
	whereCondition := squirrel.And{}
	if dep := strings.TrimSpace(filters.Department); dep != "" {
		whereCondition = append(whereCondition, squirrel.ILike{"c.department": "%" + dep + "%"})
	}
	if sem := strings.TrimSpace(filters.Semester); sem != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"c.semester": sem})
	}

	countSelect := r.sb.Select("COUNT(*)").From("courses c")
	if len(whereCondition) > 0 {
		countSelect = countSelect.Where(whereCondition)
	}
	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count courses query")
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}
	if total == 0 {
		return []models.Course{}, 0, nil
	}

	offset := uint64((page - 1) * size)
	baseSelect := r.sb.Select(
		"c.id", "c.code", "c.name", "c.credits", "c.semester", "c.department",
		"c.professor_id", "c.description", "c.created_at", "c.updated_at",
		"COUNT(e.id) AS enrollment_count",
	).
		From("courses c").
		LeftJoin("enrollments e ON e.course_id = c.id").
		GroupBy("c.id").
		OrderBy("c.code ASC").
		Limit(uint64(size)).
		Offset(offset)
	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
	}

	querySql, args, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, querySql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Credits, &c.Semester, &c.Department,
			&c.ProfessorID, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.EnrollmentCount); err != nil {
			return nil, 0, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, total, rows.Err()
}

// CreateEnrollment inserts a new enrollment. UNIQUE(student_id, course_id)
// is the authoritative duplicate guard against concurrent enrollment.
func (r *CourseRepository) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO enrollments (id, student_id, course_id, semester, attendance_count, total_classes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING enrolled_at`,
		enrollment.ID, enrollment.StudentID, enrollment.CourseID, enrollment.Semester,
		enrollment.AttendanceCount, enrollment.TotalClasses).
		Scan(&enrollment.EnrolledAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// IsEnrolled checks whether a student is enrolled in a course
func (r *CourseRepository) IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

// ListEnrollmentsByStudent retrieves a student's enrollments with course data
func (r *CourseRepository) ListEnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT e.id, e.student_id, e.course_id, e.semester, e.attendance_count,
		       e.total_classes, e.enrolled_at,
		       c.id, c.code, c.name, c.credits, c.semester, c.department,
		       c.professor_id, c.description, c.created_at, c.updated_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []models.Enrollment{}
	for rows.Next() {
		var e models.Enrollment
		var c models.Course
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Semester, &e.AttendanceCount,
			&e.TotalClasses, &e.EnrolledAt,
			&c.ID, &c.Code, &c.Name, &c.Credits, &c.Semester, &c.Department,
			&c.ProfessorID, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning enrollment: %w", err)
		}
		e.Course = &c
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// CreateResource inserts course resource metadata
func (r *CourseRepository) CreateResource(ctx context.Context, resource *models.Resource) error {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	if resource.Tags == nil {
		resource.Tags = []string{}
	}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO resources (id, course_id, uploader_id, type, title, year, exam_type, file_path, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		resource.ID, resource.CourseID, resource.UploaderID, resource.Type, resource.Title,
		resource.Year, resource.ExamType, resource.FilePath, resource.Tags).
		Scan(&resource.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating resource: %w", err)
	}
	return nil
}

// GetResourceByID retrieves a resource by ID
func (r *CourseRepository) GetResourceByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	res := &models.Resource{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, course_id, uploader_id, type, title, year, exam_type, file_path, tags, downloads, created_at
		FROM resources WHERE id = $1`, id).
		Scan(&res.ID, &res.CourseID, &res.UploaderID, &res.Type, &res.Title, &res.Year,
			&res.ExamType, &res.FilePath, &res.Tags, &res.Downloads, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting resource: %w", err)
	}
	return res, nil
}

// ListResources retrieves resources for a course, optionally filtered by type
func (r *CourseRepository) ListResources(ctx context.Context, courseID uuid.UUID, resourceType *models.ResourceType) ([]models.Resource, error) {
	sel := r.sb.Select("id", "course_id", "uploader_id", "type", "title", "year",
		"exam_type", "file_path", "tags", "downloads", "created_at").
		From("resources").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at DESC")
	if resourceType != nil {
		sel = sel.Where(squirrel.Eq{"type": *resourceType})
	}

	querySql, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list resources query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, querySql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var res models.Resource
		if err := rows.Scan(&res.ID, &res.CourseID, &res.UploaderID, &res.Type, &res.Title,
			&res.Year, &res.ExamType, &res.FilePath, &res.Tags, &res.Downloads, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning resource: %w", err)
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// SetResourceFilePath records the stored blob path for a resource
func (r *CourseRepository) SetResourceFilePath(ctx context.Context, id uuid.UUID, filePath string) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE resources SET file_path = $2 WHERE id = $1`, id, filePath)
	if err != nil {
		return fmt.Errorf("error setting resource file path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// IncrementDownloads bumps the download counter
func (r *CourseRepository) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE resources SET downloads = downloads + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing downloads: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CreateCalendarEvent inserts a calendar event
func (r *CourseRepository) CreateCalendarEvent(ctx context.Context, event *models.CalendarEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO calendar_events (id, course_id, title, description, event_type, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		event.ID, event.CourseID, event.Title, event.Description, event.EventType,
		event.StartDate, event.EndDate, event.CreatedBy).
		Scan(&event.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating calendar event: %w", err)
	}
	return nil
}

// ListCalendarEvents retrieves a course's events ordered by start date
func (r *CourseRepository) ListCalendarEvents(ctx context.Context, courseID uuid.UUID) ([]models.CalendarEvent, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, course_id, title, description, event_type, start_date, end_date, created_by, created_at
		FROM calendar_events
		WHERE course_id = $1
		ORDER BY start_date ASC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	events := []models.CalendarEvent{}
	for rows.Next() {
		var e models.CalendarEvent
		if err := rows.Scan(&e.ID, &e.CourseID, &e.Title, &e.Description, &e.EventType,
			&e.StartDate, &e.EndDate, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning calendar event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
