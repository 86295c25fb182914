package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessTTL,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "aegis.test",
	})
}

func newTestRouter(jwtService *auth.JWTService, roles ...models.Role) *gin.Engine {
	authMiddleware := NewAuthMiddleware(jwtService)

	router := gin.New()
	group := router.Group("/", authMiddleware.JWTAuth())
	if len(roles) > 0 {
		group.Use(authMiddleware.RoleRequired(roles...))
	}
	group.GET("/whoami", func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "role": string(actor.Role)})
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	jwtService := newTestJWTService(time.Minute)
	router := newTestRouter(jwtService)

	userID := uuid.New()
	access, _, _, err := jwtService.GenerateTokenPair(userID, "b21001@students.iitmandi.ac.in", string(models.RoleStudent))
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	t.Run("missing header", func(t *testing.T) {
		if w := doRequest(t, router, ""); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		if w := doRequest(t, router, access); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if w := doRequest(t, router, "Bearer not-a-jwt"); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		w := doRequest(t, router, "Bearer "+access)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewJWTService(auth.JWTConfig{
			SecretKey:       "another-secret",
			AccessTokenExp:  time.Minute,
			RefreshTokenExp: time.Hour,
			TokenIssuer:     "aegis.test",
		})
		forged, _, _, err := other.GenerateTokenPair(userID, "b21001@students.iitmandi.ac.in", string(models.RoleStudent))
		if err != nil {
			t.Fatalf("GenerateTokenPair: %v", err)
		}
		if w := doRequest(t, router, "Bearer "+forged); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestJWTAuthExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	router := newTestRouter(newTestJWTService(time.Minute))

	access, _, _, err := jwtService.GenerateTokenPair(uuid.New(), "b21001@students.iitmandi.ac.in", string(models.RoleStudent))
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if w := doRequest(t, router, "Bearer "+access); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRoleRequired(t *testing.T) {
	jwtService := newTestJWTService(time.Minute)
	router := newTestRouter(jwtService, models.RoleFaculty, models.RoleAdmin)

	studentToken, _, _, err := jwtService.GenerateTokenPair(uuid.New(), "b21001@students.iitmandi.ac.in", string(models.RoleStudent))
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	facultyToken, _, _, err := jwtService.GenerateTokenPair(uuid.New(), "faculty1@iitmandi.ac.in", string(models.RoleFaculty))
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if w := doRequest(t, router, "Bearer "+studentToken); w.Code != http.StatusForbidden {
		t.Errorf("student status = %d, want 403", w.Code)
	}
	if w := doRequest(t, router, "Bearer "+facultyToken); w.Code != http.StatusOK {
		t.Errorf("faculty status = %d, want 200", w.Code)
	}
}
