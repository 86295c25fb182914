package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/aegisplatform/aegis/internal/app/auth"
	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/repositories"
	"github.com/aegisplatform/aegis/internal/app/services"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/filestorage"
)

type fakeOpportunityRepo struct {
	applications map[uuid.UUID]*models.Application
}

func newFakeOpportunityRepo() *fakeOpportunityRepo {
	return &fakeOpportunityRepo{applications: make(map[uuid.UUID]*models.Application)}
}

func (r *fakeOpportunityRepo) Create(_ context.Context, _ *models.Opportunity) error { return nil }

func (r *fakeOpportunityRepo) GetByID(_ context.Context, _ uuid.UUID) (*models.Opportunity, error) {
	return nil, apperrors.ErrOpportunityNotFound
}

func (r *fakeOpportunityRepo) List(_ context.Context, _ repositories.OpportunityFilters, _, _ int) ([]models.Opportunity, int64, error) {
	return nil, 0, nil
}

func (r *fakeOpportunityRepo) Close(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeOpportunityRepo) CreateApplication(_ context.Context, application *models.Application) error {
	copied := *application
	r.applications[application.ID] = &copied
	return nil
}

func (r *fakeOpportunityRepo) GetApplicationByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	application, ok := r.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *application
	return &copied, nil
}

func (r *fakeOpportunityRepo) ListApplicationsByOpportunity(_ context.Context, _ uuid.UUID) ([]models.Application, error) {
	return nil, nil
}

func (r *fakeOpportunityRepo) ListApplicationsByStudent(_ context.Context, _ uuid.UUID) ([]models.Application, error) {
	return nil, nil
}

func (r *fakeOpportunityRepo) UpdateApplicationStatus(_ context.Context, _ uuid.UUID, _ models.ApplicationStatus) error {
	return nil
}

func (r *fakeOpportunityRepo) SetResumePath(_ context.Context, id uuid.UUID, path string) error {
	application, ok := r.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	application.ResumePath = &path
	return nil
}

func resumeUploadRequest(t *testing.T, applicationID uuid.UUID, filename string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("resume bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/"+applicationID.String()+"/resume", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadResumeAcceptsOnlyPDF(t *testing.T) {
	repo := newFakeOpportunityRepo()
	service := services.NewOpportunityService(repo, zerolog.Nop())

	storage, err := filestorage.NewLocalStorage(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	controller := NewOpportunityController(service, storage)

	applicant := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}
	application := &models.Application{
		ID:            uuid.New(),
		OpportunityID: uuid.New(),
		StudentID:     applicant.ID,
		Status:        models.ApplicationSubmitted,
	}
	if err := repo.CreateApplication(context.Background(), application); err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}

	router := gin.New()
	router.POST("/api/v1/applications/:applicationId/resume", func(c *gin.Context) {
		c.Set("actor", applicant)
		c.Next()
	}, controller.UploadResume)

	t.Run("zip rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, resumeUploadRequest(t, application.ID, "resume.zip"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
		}
		got, err := repo.GetApplicationByID(context.Background(), application.ID)
		if err != nil {
			t.Fatalf("GetApplicationByID: %v", err)
		}
		if got.ResumePath != nil {
			t.Errorf("resume path = %q, want none after rejected upload", *got.ResumePath)
		}
	})

	t.Run("docx rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, resumeUploadRequest(t, application.ID, "resume.docx"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("pdf accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, resumeUploadRequest(t, application.ID, "resume.pdf"))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}
		got, err := repo.GetApplicationByID(context.Background(), application.ID)
		if err != nil {
			t.Fatalf("GetApplicationByID: %v", err)
		}
		if got.ResumePath == nil {
			t.Fatal("resume path not set after upload")
		}
	})
}
