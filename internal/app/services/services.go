package services

// Services defined in this package:
// - AuthService: registration, login, stateless token refresh
// - UserService: profiles, password changes, admin user management
// - GrievanceService: grievance lifecycle and append-only audit trail
// - CourseService: courses, enrollments, resources, calendar events
// - OpportunityService: opportunity postings and applications
// - TaskService: personal task tracker
