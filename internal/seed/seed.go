package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/repositories"
	"github.com/aegisplatform/aegis/internal/db"
	"github.com/aegisplatform/aegis/internal/pkg/auth"
)

// defaultPassword is shared by all seeded demo accounts.
const defaultPassword = "password123"

type seedAccount struct {
	email       string
	role        models.Role
	displayName string
	department  string
}

var seedAccounts = []seedAccount{
	{"admin@iitmandi.ac.in", models.RoleAdmin, "System Administrator", "Administration"},
	{"faculty1@iitmandi.ac.in", models.RoleFaculty, "Dr. Asha Verma", "CSE"},
	{"faculty2@iitmandi.ac.in", models.RoleFaculty, "Dr. Rohan Mehta", "EE"},
	{"authority1@iitmandi.ac.in", models.RoleAuthority, "Dean of Students", "Student Affairs"},
	{"b21001@students.iitmandi.ac.in", models.RoleStudent, "Priya Sharma", "CSE"},
	{"b21002@students.iitmandi.ac.in", models.RoleStudent, "Arjun Singh", "EE"},
}

// CreateDefaultData seeds demo accounts when they don't exist yet. Failures
// on individual accounts are collected so one bad row doesn't abort the rest.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(database)

	lgr.Info().Msg("Checking/Creating default accounts...")
	var finalErr error

	for _, account := range seedAccounts {
		exists, err := userRepo.EmailExists(ctx, account.email)
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error checking seed account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		hash, err := auth.HashPassword(defaultPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing seed password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		department := account.department
		user := &models.User{
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
			DisplayName:  account.displayName,
			Department:   &department,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating seed account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("email", account.email).Str("role", string(account.role)).Msg("Seed account created")
	}

	lgr.Info().Msg("Default account check finished")
	return finalErr
}
