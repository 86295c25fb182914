package repositories

import (
	"github.com/aegisplatform/aegis/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	CourseRepository      *CourseRepository
	GrievanceRepository   *GrievanceRepository
	OpportunityRepository *OpportunityRepository
	TaskRepository        *TaskRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(database),
		CourseRepository:      NewCourseRepository(database),
		GrievanceRepository:   NewGrievanceRepository(database),
		OpportunityRepository: NewOpportunityRepository(database),
		TaskRepository:        NewTaskRepository(database),
	}
}
