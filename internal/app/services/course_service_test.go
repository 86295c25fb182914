package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/aegisplatform/aegis/internal/app/auth"
	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
)

func createCourseRequest(code string) *dto.CreateCourseRequest {
	return &dto.CreateCourseRequest{
		Code:       code,
		Name:       "Operating Systems",
		Credits:    4,
		Semester:   "2026-MONSOON",
		Department: "CSE",
	}
}

func TestCreateCourseSetsProfessorByRole(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, zerolog.Nop())
	ctx := context.Background()

	faculty := appauth.Actor{ID: uuid.New(), Role: models.RoleFaculty}
	fc, err := svc.Create(ctx, faculty, createCourseRequest("CS302"))
	if err != nil {
		t.Fatalf("faculty create: %v", err)
	}
	if fc.ProfessorID == nil || *fc.ProfessorID != faculty.ID {
		t.Errorf("faculty creator not set as professor")
	}

	admin := appauth.Actor{ID: uuid.New(), Role: models.RoleAdmin}
	ac, err := svc.Create(ctx, admin, createCourseRequest("CS303"))
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if ac.ProfessorID != nil {
		t.Errorf("admin-created course has professor %s", ac.ProfessorID)
	}

	student := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}
	if _, err := svc.Create(ctx, student, createCourseRequest("CS304")); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("student create: err = %v, want ErrPermissionDenied", err)
	}
}

func TestCreateCourseDuplicateCodeConflicts(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), zerolog.Nop())
	ctx := context.Background()
	admin := appauth.Actor{ID: uuid.New(), Role: models.RoleAdmin}

	if _, err := svc.Create(ctx, admin, createCourseRequest("CS302")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, admin, createCourseRequest("CS302")); !errors.Is(err, apperrors.ErrCourseCodeExists) {
		t.Fatalf("err = %v, want ErrCourseCodeExists", err)
	}
}

func TestEnroll(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, zerolog.Nop())
	ctx := context.Background()
	admin := appauth.Actor{ID: uuid.New(), Role: models.RoleAdmin}
	student := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}

	course, err := svc.Create(ctx, admin, createCourseRequest("CS302"))
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	enrollment, err := svc.Enroll(ctx, student, course.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if enrollment.Semester != course.Semester {
		t.Errorf("semester = %q, want copied %q", enrollment.Semester, course.Semester)
	}
	if enrollment.AttendanceCount != 0 || enrollment.TotalClasses != 0 {
		t.Errorf("counters not zero: %+v", enrollment)
	}

	if _, err := svc.Enroll(ctx, student, course.ID); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Errorf("duplicate enroll: err = %v, want ErrAlreadyEnrolled", err)
	}
	if _, err := svc.Enroll(ctx, admin, course.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("admin enroll: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Enroll(ctx, student, uuid.New()); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("missing course: err = %v, want ErrCourseNotFound", err)
	}

	mine, err := svc.MyEnrollments(ctx, student)
	if err != nil {
		t.Fatalf("MyEnrollments: %v", err)
	}
	if len(mine) != 1 || mine[0].Course == nil || mine[0].Course.Code != "CS302" {
		t.Errorf("enrollments = %+v", mine)
	}
}

func TestCourseDetailGate(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, zerolog.Nop())
	ctx := context.Background()

	faculty := appauth.Actor{ID: uuid.New(), Role: models.RoleFaculty}
	course, err := svc.Create(ctx, faculty, createCourseRequest("CS302"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	student := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}
	if _, err := svc.Get(ctx, student, course.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("unenrolled student: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Enroll(ctx, student, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	got, err := svc.Get(ctx, student, course.ID)
	if err != nil {
		t.Fatalf("enrolled student get: %v", err)
	}
	if got.EnrollmentCount != 1 {
		t.Errorf("enrollment count = %d, want 1", got.EnrollmentCount)
	}
	if _, err := svc.Get(ctx, faculty, course.ID); err != nil {
		t.Errorf("professor get: %v", err)
	}
	other := appauth.Actor{ID: uuid.New(), Role: models.RoleFaculty}
	if _, err := svc.Get(ctx, other, course.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("unrelated faculty: err = %v, want ErrPermissionDenied", err)
	}
}

func TestResources(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, zerolog.Nop())
	ctx := context.Background()

	faculty := appauth.Actor{ID: uuid.New(), Role: models.RoleFaculty}
	course, err := svc.Create(ctx, faculty, createCourseRequest("CS302"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := &dto.CreateResourceRequest{Type: "PAPER", Title: "Midterm 2025"}
	res, err := svc.CreateResource(ctx, faculty, course.ID, req)
	if err != nil {
		t.Fatalf("CreateResource: %v", err)
	}
	if res.Type != models.ResourcePaper || res.UploaderID != faculty.ID {
		t.Errorf("resource = %+v", res)
	}

	student := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}
	if _, err := svc.CreateResource(ctx, student, course.ID, req); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("student upload: err = %v, want ErrPermissionDenied", err)
	}

	bad := &dto.CreateResourceRequest{Type: "VIDEO", Title: "x"}
	if _, err := svc.CreateResource(ctx, faculty, course.ID, bad); !errors.Is(err, apperrors.ErrResourceTypeInvalid) {
		t.Errorf("bad type: err = %v, want ErrResourceTypeInvalid", err)
	}

	// Unknown list filter values are ignored.
	all, err := svc.ListResources(ctx, course.ID, "WHATEVER")
	if err != nil {
		t.Fatalf("ListResources: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("resources = %d, want 1", len(all))
	}
	papers, err := svc.ListResources(ctx, course.ID, "NOTES")
	if err != nil {
		t.Fatalf("ListResources(NOTES): %v", err)
	}
	if len(papers) != 0 {
		t.Errorf("NOTES filter returned %d resources", len(papers))
	}

	if err := svc.RecordDownload(ctx, res.ID); err != nil {
		t.Fatalf("RecordDownload: %v", err)
	}
	got, err := svc.courseRepo.GetResourceByID(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetResourceByID: %v", err)
	}
	if got.Downloads != 1 {
		t.Errorf("downloads = %d, want 1", got.Downloads)
	}
}

func TestCalendarEvents(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, zerolog.Nop())
	ctx := context.Background()

	faculty := appauth.Actor{ID: uuid.New(), Role: models.RoleFaculty}
	course, err := svc.Create(ctx, faculty, createCourseRequest("CS302"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := &dto.CreateCalendarEventRequest{
		Title:     "Midterm",
		EventType: "EXAM",
		StartDate: time.Now().Add(72 * time.Hour),
	}
	event, err := svc.CreateCalendarEvent(ctx, faculty, course.ID, req)
	if err != nil {
		t.Fatalf("CreateCalendarEvent: %v", err)
	}
	if event.CourseID == nil || *event.CourseID != course.ID || event.CreatedBy != faculty.ID {
		t.Errorf("event = %+v", event)
	}

	student := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}
	if _, err := svc.CreateCalendarEvent(ctx, student, course.ID, req); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("student create event: err = %v, want ErrPermissionDenied", err)
	}

	events, err := svc.ListCalendar(ctx, course.ID)
	if err != nil {
		t.Fatalf("ListCalendar: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("events = %d, want 1", len(events))
	}
}
