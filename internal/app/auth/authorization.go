package auth

import (
	"github.com/google/uuid"

	"github.com/aegisplatform/aegis/internal/app/models"
)

// Actor identifies the authenticated principal performing an operation.
// Predicates in this package are pure: they answer from the actor and the
// target entity alone, with no repository access, so services can consult
// them before or after loading rows as needed.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

// CanCreateCourse reports whether the actor may create courses.
func CanCreateCourse(a Actor) bool {
	return a.Role == models.RoleFaculty || a.Role == models.RoleAdmin
}

// CanViewCourseDetail reports whether the actor may open a course's detail
// view. Students must be enrolled; the professor and admins always may.
func CanViewCourseDetail(a Actor, course *models.Course, enrolled bool) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	if course.ProfessorID != nil && *course.ProfessorID == a.ID {
		return true
	}
	return a.Role == models.RoleStudent && enrolled
}

// CanEnroll reports whether the actor may enroll in courses.
func CanEnroll(a Actor) bool {
	return a.Role == models.RoleStudent
}

// CanManageCourseContent reports whether the actor may upload resources or
// create calendar events for the course.
func CanManageCourseContent(a Actor, course *models.Course) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	return course.ProfessorID != nil && *course.ProfessorID == a.ID
}

// CanViewGrievance reports whether the actor may see the grievance. Authority
// and admin accounts see everything; everyone else sees anonymous grievances
// and their own submissions.
func CanViewGrievance(a Actor, g *models.Grievance) bool {
	switch a.Role {
	case models.RoleAdmin, models.RoleAuthority:
		return true
	}
	if g.IsAnonymous {
		return true
	}
	return g.SubmitterID != nil && *g.SubmitterID == a.ID
}

// CanUpdateGrievance reports whether the actor may append status updates.
func CanUpdateGrievance(a Actor) bool {
	return a.Role == models.RoleAuthority || a.Role == models.RoleAdmin
}

// CanUploadGrievancePhoto reports whether the actor may attach photos.
// Anonymous grievances have no submitter, so nobody can attach to them.
func CanUploadGrievancePhoto(a Actor, g *models.Grievance) bool {
	return g.SubmitterID != nil && *g.SubmitterID == a.ID
}

// CanCreateOpportunity reports whether the actor may post opportunities.
func CanCreateOpportunity(a Actor) bool {
	return a.Role == models.RoleFaculty || a.Role == models.RoleAuthority
}

// CanManageOpportunity reports whether the actor may close the opportunity or
// review its applications.
func CanManageOpportunity(a Actor, o *models.Opportunity) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	return o.FacultyID == a.ID
}

// CanApply reports whether the actor may apply to opportunities.
func CanApply(a Actor) bool {
	return a.Role == models.RoleStudent
}

// CanUploadResume reports whether the actor may attach a resume to the
// application.
func CanUploadResume(a Actor, app *models.Application) bool {
	return app.StudentID == a.ID
}

// CanListUsers reports whether the actor may list all user accounts.
func CanListUsers(a Actor) bool {
	return a.Role == models.RoleAdmin
}

// CanChangeRole reports whether the actor may change another user's role.
func CanChangeRole(a Actor) bool {
	return a.Role == models.RoleAdmin
}
