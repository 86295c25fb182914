package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// EmailPattern matches a basic email shape; domain rules are applied separately
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 8
)

var emailRegex = regexp.MustCompile(EmailPattern)

// IsEmail reports whether the value looks like an email address.
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// Domains holds the institute mail domains used for role validation.
type Domains struct {
	// Institute is the staff domain, e.g. "iitmandi.ac.in"
	Institute string
	// Student is the student domain, e.g. "students.iitmandi.ac.in"
	Student string
}

// IsStudentEmail reports whether the email belongs to the student domain.
func (d Domains) IsStudentEmail(email string) bool {
	return strings.HasSuffix(email, "@"+d.Student)
}

// IsStaffEmail reports whether the email belongs to the staff domain.
// A student-domain address never counts as staff even though the student
// domain ends with the institute domain.
func (d Domains) IsStaffEmail(email string) bool {
	return strings.HasSuffix(email, "@"+d.Institute)
}

// EmailMatchesRole applies the role-to-domain rule: students must use the
// student domain, every other role must use the staff domain. The two suffix
// tests are mutually exclusive because the staff test requires the "@" to sit
// directly before the institute domain.
func (d Domains) EmailMatchesRole(email, role string) bool {
	if role == "STUDENT" {
		return d.IsStudentEmail(email)
	}
	return d.IsStaffEmail(email)
}
