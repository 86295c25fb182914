package auth

import (
	"testing"

	"github.com/google/uuid"

	"github.com/aegisplatform/aegis/internal/app/models"
)

func actor(role models.Role) Actor {
	return Actor{ID: uuid.New(), Role: role}
}

func TestCanCreateCourse(t *testing.T) {
	cases := []struct {
		role models.Role
		want bool
	}{
		{models.RoleStudent, false},
		{models.RoleFaculty, true},
		{models.RoleAuthority, false},
		{models.RoleAdmin, true},
	}
	for _, c := range cases {
		if got := CanCreateCourse(actor(c.role)); got != c.want {
			t.Errorf("CanCreateCourse(%s) = %v, want %v", c.role, got, c.want)
		}
	}
}

func TestCanViewCourseDetail(t *testing.T) {
	prof := actor(models.RoleFaculty)
	course := &models.Course{ID: uuid.New(), ProfessorID: &prof.ID}

	if !CanViewCourseDetail(prof, course, false) {
		t.Errorf("professor denied their own course")
	}
	if !CanViewCourseDetail(actor(models.RoleAdmin), course, false) {
		t.Errorf("admin denied course detail")
	}
	if CanViewCourseDetail(actor(models.RoleFaculty), course, false) {
		t.Errorf("unrelated faculty allowed course detail")
	}
	student := actor(models.RoleStudent)
	if CanViewCourseDetail(student, course, false) {
		t.Errorf("unenrolled student allowed course detail")
	}
	if !CanViewCourseDetail(student, course, true) {
		t.Errorf("enrolled student denied course detail")
	}

	adminCourse := &models.Course{ID: uuid.New()} // no professor
	if CanViewCourseDetail(actor(models.RoleStudent), adminCourse, false) {
		t.Errorf("student allowed detail of course with no professor")
	}
}

func TestGrievanceVisibility(t *testing.T) {
	submitter := actor(models.RoleStudent)
	own := &models.Grievance{SubmitterID: &submitter.ID}
	anon := &models.Grievance{IsAnonymous: true}
	other := &models.Grievance{SubmitterID: ptr(uuid.New())}

	if !CanViewGrievance(submitter, own) {
		t.Errorf("submitter denied own grievance")
	}
	if !CanViewGrievance(submitter, anon) {
		t.Errorf("student denied anonymous grievance")
	}
	if CanViewGrievance(submitter, other) {
		t.Errorf("student allowed another student's grievance")
	}
	if !CanViewGrievance(actor(models.RoleAuthority), other) {
		t.Errorf("authority denied grievance")
	}
	if !CanViewGrievance(actor(models.RoleAdmin), other) {
		t.Errorf("admin denied grievance")
	}
	if CanViewGrievance(actor(models.RoleFaculty), other) {
		t.Errorf("faculty allowed unrelated grievance")
	}
}

func TestCanUploadGrievancePhoto(t *testing.T) {
	submitter := actor(models.RoleStudent)
	own := &models.Grievance{SubmitterID: &submitter.ID}
	anon := &models.Grievance{IsAnonymous: true}

	if !CanUploadGrievancePhoto(submitter, own) {
		t.Errorf("submitter denied photo upload")
	}
	if CanUploadGrievancePhoto(submitter, anon) {
		t.Errorf("photo upload allowed on anonymous grievance")
	}
	if CanUploadGrievancePhoto(actor(models.RoleAdmin), own) {
		t.Errorf("admin allowed photo upload on someone else's grievance")
	}
}

func TestOpportunityPredicates(t *testing.T) {
	if !CanCreateOpportunity(actor(models.RoleFaculty)) || !CanCreateOpportunity(actor(models.RoleAuthority)) {
		t.Errorf("faculty/authority denied opportunity creation")
	}
	if CanCreateOpportunity(actor(models.RoleStudent)) || CanCreateOpportunity(actor(models.RoleAdmin)) {
		t.Errorf("student/admin allowed opportunity creation")
	}

	creator := actor(models.RoleFaculty)
	opp := &models.Opportunity{FacultyID: creator.ID}
	if !CanManageOpportunity(creator, opp) {
		t.Errorf("creator denied management")
	}
	if !CanManageOpportunity(actor(models.RoleAdmin), opp) {
		t.Errorf("admin denied management")
	}
	if CanManageOpportunity(actor(models.RoleFaculty), opp) {
		t.Errorf("unrelated faculty allowed management")
	}
}

func TestAdminOnlyPredicates(t *testing.T) {
	for _, role := range []models.Role{models.RoleStudent, models.RoleFaculty, models.RoleAuthority} {
		if CanListUsers(actor(role)) || CanChangeRole(actor(role)) {
			t.Errorf("%s passed admin-only predicate", role)
		}
	}
	admin := actor(models.RoleAdmin)
	if !CanListUsers(admin) || !CanChangeRole(admin) {
		t.Errorf("admin denied admin-only predicate")
	}
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }
