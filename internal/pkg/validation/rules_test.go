package validation

import "testing"

var domains = Domains{
	Institute: "iitmandi.ac.in",
	Student:   "students.iitmandi.ac.in",
}

func TestEmailMatchesRole(t *testing.T) {
	tests := []struct {
		name  string
		email string
		role  string
		want  bool
	}{
		{"student email for student role", "s1@students.iitmandi.ac.in", "STUDENT", true},
		{"staff email for student role", "prof@iitmandi.ac.in", "STUDENT", false},
		{"staff email for faculty role", "prof@iitmandi.ac.in", "FACULTY", true},
		{"student email for faculty role", "s1@students.iitmandi.ac.in", "FACULTY", false},
		{"staff email for authority role", "dean@iitmandi.ac.in", "AUTHORITY", true},
		{"staff email for admin role", "root@iitmandi.ac.in", "ADMIN", true},
		{"outside domain for student role", "s1@gmail.com", "STUDENT", false},
		{"outside domain for faculty role", "prof@gmail.com", "FACULTY", false},
		{"lookalike domain for faculty role", "x@notiitmandi.ac.in", "FACULTY", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domains.EmailMatchesRole(tt.email, tt.role); got != tt.want {
				t.Fatalf("EmailMatchesRole(%q, %q) = %v, want %v", tt.email, tt.role, got, tt.want)
			}
		})
	}
}

func TestStudentAndStaffSuffixesAreExclusive(t *testing.T) {
	studentMail := "s1@students.iitmandi.ac.in"
	staffMail := "prof@iitmandi.ac.in"

	if domains.IsStaffEmail(studentMail) {
		t.Fatalf("student email %q must not satisfy the staff suffix test", studentMail)
	}
	if domains.IsStudentEmail(staffMail) {
		t.Fatalf("staff email %q must not satisfy the student suffix test", staffMail)
	}
}

func TestIsEmail(t *testing.T) {
	if !IsEmail("user@iitmandi.ac.in") {
		t.Fatalf("expected valid email")
	}
	if IsEmail("not-an-email") {
		t.Fatalf("expected invalid email")
	}
}
