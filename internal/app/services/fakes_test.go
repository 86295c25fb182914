package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/repositories"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests. They enforce the
// same uniqueness rules as the SQL schema so conflict paths are exercised.

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, displayName string, department, avatarURL *string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.DisplayName = displayName
	u.Department = department
	u.AvatarURL = avatarURL
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role models.Role) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, page, size int) ([]models.User, int64, error) {
	users := []models.User{}
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, int64(len(f.users)), nil
}

type fakeGrievanceRepo struct {
	grievances map[uuid.UUID]*models.Grievance
	updates    map[uuid.UUID][]models.GrievanceUpdate
	lastList   repositories.GrievanceFilters
}

func newFakeGrievanceRepo() *fakeGrievanceRepo {
	return &fakeGrievanceRepo{
		grievances: map[uuid.UUID]*models.Grievance{},
		updates:    map[uuid.UUID][]models.GrievanceUpdate{},
	}
}

func (f *fakeGrievanceRepo) CreateWithInitialUpdate(_ context.Context, g *models.Grievance, update *models.GrievanceUpdate) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if update.ID == uuid.Nil {
		update.ID = uuid.New()
	}
	update.GrievanceID = g.ID
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	update.CreatedAt = g.CreatedAt
	if g.Photos == nil {
		g.Photos = []string{}
	}
	cp := *g
	f.grievances[g.ID] = &cp
	f.updates[g.ID] = []models.GrievanceUpdate{*update}
	return nil
}

func (f *fakeGrievanceRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Grievance, error) {
	g, ok := f.grievances[id]
	if !ok {
		return nil, apperrors.ErrGrievanceNotFound
	}
	cp := *g
	cp.Updates = append([]models.GrievanceUpdate{}, f.updates[id]...)
	return &cp, nil
}

func (f *fakeGrievanceRepo) List(_ context.Context, filters repositories.GrievanceFilters, page, size int) ([]models.Grievance, int64, error) {
	f.lastList = filters
	out := []models.Grievance{}
	for _, g := range f.grievances {
		if filters.Status != nil && g.Status != *filters.Status {
			continue
		}
		if filters.Category != nil && g.Category != *filters.Category {
			continue
		}
		if filters.VisibleTo != nil && !g.IsAnonymous &&
			(g.SubmitterID == nil || *g.SubmitterID != *filters.VisibleTo) {
			continue
		}
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (f *fakeGrievanceRepo) AppendUpdate(_ context.Context, update *models.GrievanceUpdate, assignTo *uuid.UUID) error {
	g, ok := f.grievances[update.GrievanceID]
	if !ok {
		return apperrors.ErrGrievanceNotFound
	}
	if update.ID == uuid.Nil {
		update.ID = uuid.New()
	}
	update.CreatedAt = time.Now()
	f.updates[g.ID] = append(f.updates[g.ID], *update)
	g.Status = update.Status
	if assignTo != nil {
		g.AssignedTo = assignTo
	}
	return nil
}

func (f *fakeGrievanceRepo) AddPhoto(_ context.Context, id uuid.UUID, path string) error {
	g, ok := f.grievances[id]
	if !ok {
		return apperrors.ErrGrievanceNotFound
	}
	g.Photos = append(g.Photos, path)
	return nil
}

type fakeCourseRepo struct {
	courses     map[uuid.UUID]*models.Course
	enrollments []models.Enrollment
	resources   map[uuid.UUID]*models.Resource
	events      []models.CalendarEvent
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:   map[uuid.UUID]*models.Course{},
		resources: map[uuid.UUID]*models.Resource{},
	}
}

func (f *fakeCourseRepo) CreateCourse(_ context.Context, course *models.Course) error {
	for _, c := range f.courses {
		if c.Code == course.Code {
			return apperrors.ErrCourseCodeExists
		}
	}
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	cp := *course
	f.courses[course.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) GetCourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	for _, e := range f.enrollments {
		if e.CourseID == id {
			cp.EnrollmentCount++
		}
	}
	return &cp, nil
}

func (f *fakeCourseRepo) ListCourses(_ context.Context, filters repositories.CourseFilters, page, size int) ([]models.Course, int64, error) {
	out := []models.Course{}
	for _, c := range f.courses {
		if filters.Semester != "" && c.Semester != filters.Semester {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseRepo) CreateEnrollment(_ context.Context, enrollment *models.Enrollment) error {
	for _, e := range f.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	enrollment.EnrolledAt = time.Now()
	f.enrollments = append(f.enrollments, *enrollment)
	return nil
}

func (f *fakeCourseRepo) IsEnrolled(_ context.Context, studentID, courseID uuid.UUID) (bool, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepo) ListEnrollmentsByStudent(_ context.Context, studentID uuid.UUID) ([]models.Enrollment, error) {
	out := []models.Enrollment{}
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			if c, ok := f.courses[e.CourseID]; ok {
				cp := *c
				e.Course = &cp
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) CreateResource(_ context.Context, resource *models.Resource) error {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	resource.CreatedAt = time.Now()
	cp := *resource
	f.resources[resource.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) GetResourceByID(_ context.Context, id uuid.UUID) (*models.Resource, error) {
	r, ok := f.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeCourseRepo) ListResources(_ context.Context, courseID uuid.UUID, resourceType *models.ResourceType) ([]models.Resource, error) {
	out := []models.Resource{}
	for _, r := range f.resources {
		if r.CourseID != courseID {
			continue
		}
		if resourceType != nil && r.Type != *resourceType {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeCourseRepo) SetResourceFilePath(_ context.Context, id uuid.UUID, filePath string) error {
	r, ok := f.resources[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	r.FilePath = &filePath
	return nil
}

func (f *fakeCourseRepo) IncrementDownloads(_ context.Context, id uuid.UUID) error {
	r, ok := f.resources[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	r.Downloads++
	return nil
}

func (f *fakeCourseRepo) CreateCalendarEvent(_ context.Context, event *models.CalendarEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeCourseRepo) ListCalendarEvents(_ context.Context, courseID uuid.UUID) ([]models.CalendarEvent, error) {
	out := []models.CalendarEvent{}
	for _, e := range f.events {
		if e.CourseID != nil && *e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeOpportunityRepo struct {
	opportunities map[uuid.UUID]*models.Opportunity
	applications  map[uuid.UUID]*models.Application
}

func newFakeOpportunityRepo() *fakeOpportunityRepo {
	return &fakeOpportunityRepo{
		opportunities: map[uuid.UUID]*models.Opportunity{},
		applications:  map[uuid.UUID]*models.Application{},
	}
}

func (f *fakeOpportunityRepo) Create(_ context.Context, o *models.Opportunity) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	f.opportunities[o.ID] = &cp
	return nil
}

func (f *fakeOpportunityRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Opportunity, error) {
	o, ok := f.opportunities[id]
	if !ok {
		return nil, apperrors.ErrOpportunityNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOpportunityRepo) List(_ context.Context, filters repositories.OpportunityFilters, page, size int) ([]models.Opportunity, int64, error) {
	out := []models.Opportunity{}
	for _, o := range f.opportunities {
		if filters.Type != nil && o.Type != *filters.Type {
			continue
		}
		if filters.IsOpen != nil && o.IsOpen != *filters.IsOpen {
			continue
		}
		if filters.DeadlineAfter != nil && o.Deadline.Before(*filters.DeadlineAfter) {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOpportunityRepo) Close(_ context.Context, id uuid.UUID) error {
	o, ok := f.opportunities[id]
	if !ok {
		return apperrors.ErrOpportunityNotFound
	}
	o.IsOpen = false
	return nil
}

func (f *fakeOpportunityRepo) CreateApplication(_ context.Context, a *models.Application) error {
	for _, existing := range f.applications {
		if existing.OpportunityID == a.OpportunityID && existing.StudentID == a.StudentID {
			return apperrors.ErrAlreadyApplied
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.AppliedAt = time.Now()
	a.UpdatedAt = a.AppliedAt
	cp := *a
	f.applications[a.ID] = &cp
	return nil
}

func (f *fakeOpportunityRepo) GetApplicationByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	a, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeOpportunityRepo) ListApplicationsByOpportunity(_ context.Context, opportunityID uuid.UUID) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range f.applications {
		if a.OpportunityID == opportunityID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeOpportunityRepo) ListApplicationsByStudent(_ context.Context, studentID uuid.UUID) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range f.applications {
		if a.StudentID == studentID {
			cp := *a
			if o, ok := f.opportunities[a.OpportunityID]; ok {
				oc := *o
				cp.Opportunity = &oc
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeOpportunityRepo) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	a, ok := f.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeOpportunityRepo) SetResumePath(_ context.Context, id uuid.UUID, path string) error {
	a, ok := f.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	a.ResumePath = &path
	return nil
}

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uuid.UUID]*models.Task{}}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByIDAndOwner(_ context.Context, id, studentID uuid.UUID) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.StudentID != studentID {
		return nil, apperrors.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) ListByOwner(_ context.Context, studentID uuid.UUID) ([]models.Task, error) {
	out := []models.Task{}
	for _, t := range f.tasks {
		if t.StudentID == studentID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	t, ok := f.tasks[task.ID]
	if !ok || t.StudentID != task.StudentID {
		return apperrors.ErrTaskNotFound
	}
	cp := *task
	cp.UpdatedAt = time.Now()
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id, studentID uuid.UUID) error {
	t, ok := f.tasks[id]
	if !ok || t.StudentID != studentID {
		return apperrors.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}
