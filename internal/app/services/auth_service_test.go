package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/auth"
	"github.com/aegisplatform/aegis/internal/pkg/validation"
)

var testDomains = validation.Domains{
	Institute: "iitmandi.ac.in",
	Student:   "students.iitmandi.ac.in",
}

func newAuthService(repo *fakeUserRepo) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 168 * time.Hour,
		TokenIssuer:     "aegis.test",
	})
	return NewAuthService(repo, jwtService, testDomains, zerolog.Nop())
}

func registerRequest(email, role string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:       email,
		Password:    "password123",
		DisplayName: "Test User",
		Role:        role,
	}
}

func TestRegisterEnforcesEmailDomainPerRole(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	ctx := context.Background()

	cases := []struct {
		name    string
		email   string
		role    string
		wantErr error
	}{
		{"student on student domain", "b21001@students.iitmandi.ac.in", "STUDENT", nil},
		{"faculty on staff domain", "prof@iitmandi.ac.in", "FACULTY", nil},
		{"authority on staff domain", "dean@iitmandi.ac.in", "AUTHORITY", nil},
		{"student on staff domain", "b21002@iitmandi.ac.in", "STUDENT", apperrors.ErrEmailDomainInvalid},
		{"faculty on student domain", "prof2@students.iitmandi.ac.in", "FACULTY", apperrors.ErrEmailDomainInvalid},
		{"outsider domain", "someone@gmail.com", "STUDENT", apperrors.ErrEmailDomainInvalid},
	}
	for _, c := range cases {
		_, err := svc.Register(ctx, registerRequest(c.email, c.role))
		if c.wantErr == nil && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if c.wantErr != nil && !errors.Is(err, c.wantErr) {
			t.Errorf("%s: err = %v, want %v", c.name, err, c.wantErr)
		}
	}
}

func TestRegisterRejectsAdmin(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), registerRequest("root@iitmandi.ac.in", "ADMIN"))
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("b21001@students.iitmandi.ac.in", "STUDENT")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, registerRequest("b21001@students.iitmandi.ac.in", "STUDENT"))
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("err = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest("b21001@students.iitmandi.ac.in", "STUDENT"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, user.Email, "wrong-password"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "missing@students.iitmandi.ac.in", "password123"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}

	loggedIn, tokens, err := svc.Login(ctx, user.Email, "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in user = %s, want %s", loggedIn.ID, user.ID)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" || tokens.TokenType != "Bearer" {
		t.Errorf("incomplete token response: %+v", tokens)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest("b21001@students.iitmandi.ac.in", "STUDENT"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.users[user.ID].IsActive = false

	// Deactivation is only reported when the password is correct.
	if _, _, err := svc.Login(ctx, user.Email, "password123"); !errors.Is(err, apperrors.ErrAccountDeactivated) {
		t.Errorf("correct password: err = %v, want ErrAccountDeactivated", err)
	}
	if _, _, err := svc.Login(ctx, user.Email, "wrong-password"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefresh(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest("b21001@students.iitmandi.ac.in", "STUDENT"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, tokens, err := svc.Login(ctx, user.Email, "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, fresh, err := svc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.ID != user.ID {
		t.Errorf("refreshed user = %s, want %s", refreshed.ID, user.ID)
	}
	if fresh.AccessToken == "" || fresh.RefreshToken == "" {
		t.Errorf("incomplete refreshed tokens: %+v", fresh)
	}

	if _, _, err := svc.Refresh(ctx, "not-a-jwt"); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("garbage token: err = %v, want ErrTokenInvalid", err)
	}

	// A deactivated account fails refresh the same way a deleted one does.
	repo.users[user.ID].IsActive = false
	if _, _, err := svc.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("deactivated user: err = %v, want ErrTokenInvalid", err)
	}

	delete(repo.users, user.ID)
	if _, _, err := svc.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("deleted user: err = %v, want ErrTokenInvalid", err)
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), registerRequest("b21001@students.iitmandi.ac.in", "STUDENT"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	stored := repo.users[user.ID]
	if stored.PasswordHash == "password123" || stored.PasswordHash == "" {
		t.Fatalf("password stored in the clear or empty")
	}
	if !auth.CheckPassword(stored.PasswordHash, "password123") {
		t.Fatalf("stored hash does not verify")
	}
	if stored.Role != models.RoleStudent || !stored.IsActive {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
}
