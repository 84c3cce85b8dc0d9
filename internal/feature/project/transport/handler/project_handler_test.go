package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foresight_backend/internal/feature/project/domain/entity"
	"foresight_backend/internal/feature/project/transport/handler"
	"foresight_backend/internal/feature/project/usecase"
	jwtmw "foresight_backend/internal/platform/jwt"
)

// mockProjectUsecase はProjectUsecaseインターフェースのモック実装です。
type mockProjectUsecase struct {
	CreateProjectFunc  func(ctx context.Context, userID string, in usecase.CreateProjectInput) (*entity.Project, error)
	GetProjectFunc     func(ctx context.Context, userID string, id int64) (*entity.Project, error)
	AppendResponseFunc func(ctx context.Context, userID string, id int64, response json.RawMessage) error
	UpsertProfileFunc  func(ctx context.Context, userID, email string) (*entity.Profile, error)
}

func (m *mockProjectUsecase) CreateProject(ctx context.Context, userID string, in usecase.CreateProjectInput) (*entity.Project, error) {
	return m.CreateProjectFunc(ctx, userID, in)
}

func (m *mockProjectUsecase) GetProject(ctx context.Context, userID string, id int64) (*entity.Project, error) {
	return m.GetProjectFunc(ctx, userID, id)
}

func (m *mockProjectUsecase) AppendResponse(ctx context.Context, userID string, id int64, response json.RawMessage) error {
	return m.AppendResponseFunc(ctx, userID, id, response)
}

func (m *mockProjectUsecase) UpsertProfile(ctx context.Context, userID, email string) (*entity.Profile, error) {
	return m.UpsertProfileFunc(ctx, userID, email)
}

// setupRouter はuserIDが空でなければ認証済みとして扱うルーターを返します。
func setupRouter(uc handler.ProjectUsecase, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewProjectHandler(uc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(jwtmw.ContextUserID, userID)
		}
		c.Next()
	})
	r.POST("/api/projects", h.Create)
	r.GET("/api/projects/:id", h.Get)
	r.POST("/api/projects/:id/response", h.AppendResponse)
	r.POST("/api/profiles", h.UpsertProfile)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProjectHandler_Create(t *testing.T) {
	created := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		userID         string
		body           string
		mockFunc       func(ctx context.Context, userID string, in usecase.CreateProjectInput) (*entity.Project, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success",
			userID: "user-1",
			body:   `{"companyName":"Acme","researchGoal":"Churn","questions":[{"id":"q1"}]}`,
			mockFunc: func(ctx context.Context, userID string, in usecase.CreateProjectInput) (*entity.Project, error) {
				assert.Equal(t, "user-1", userID)
				assert.JSONEq(t, `[{"id":"q1"}]`, string(in.Questions))
				return &entity.Project{
					ID: 1, UserID: userID, CompanyName: in.CompanyName, ResearchGoal: in.ResearchGoal,
					Status: entity.StatusDraft, Questions: in.Questions, CreatedAt: created, UpdatedAt: created,
				}, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody: `{"project":{"id":1,"userId":"user-1","companyName":"Acme","researchGoal":"Churn","status":"Draft",
				"questions":[{"id":"q1"}],"companyAnalysis":null,"report":null,"responses":[],
				"createdAt":"2025-01-15T09:00:00Z","updatedAt":"2025-01-15T09:00:00Z"}}`,
		},
		{
			name:           "error: unauthenticated",
			body:           `{"companyName":"Acme","researchGoal":"Churn"}`,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:   "error: invalid input",
			userID: "user-1",
			body:   `{"companyName":"Acme"}`,
			mockFunc: func(ctx context.Context, userID string, in usecase.CreateProjectInput) (*entity.Project, error) {
				return nil, usecase.ErrInvalidInput
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "error: repository failure",
			userID: "user-1",
			body:   `{"companyName":"Acme","researchGoal":"Churn"}`,
			mockFunc: func(ctx context.Context, userID string, in usecase.CreateProjectInput) (*entity.Project, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"プロジェクトの作成に失敗しました"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockProjectUsecase{CreateProjectFunc: tt.mockFunc}, tt.userID)

			w := doRequest(r, http.MethodPost, "/api/projects", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestProjectHandler_Get(t *testing.T) {
	uc := &mockProjectUsecase{GetProjectFunc: func(ctx context.Context, userID string, id int64) (*entity.Project, error) {
		if id != 7 {
			return nil, usecase.ErrProjectNotFound
		}
		return &entity.Project{
			ID: id, UserID: userID, Status: entity.StatusDraft,
			Responses: []json.RawMessage{json.RawMessage(`{"q1":"a"}`)},
		}, nil
	}}
	r := setupRouter(uc, "user-1")

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		contains       string
	}{
		{name: "success", path: "/api/projects/7", expectedStatus: http.StatusOK, contains: `"responses":[{"q1":"a"}]`},
		{name: "not found", path: "/api/projects/8", expectedStatus: http.StatusNotFound, contains: `"error":"Project not found"`},
		{name: "non-numeric id", path: "/api/projects/abc", expectedStatus: http.StatusBadRequest},
		{name: "negative id", path: "/api/projects/-1", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}

func TestProjectHandler_AppendResponse(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{name: "success", body: `{"response":{"q1":"a"}}`, expectedStatus: http.StatusOK, expectedBody: `{"success":true}`},
		{name: "error: invalid body", body: `{"response":`, expectedStatus: http.StatusBadRequest},
		{name: "error: missing response", body: `{}`, mockErr: usecase.ErrInvalidInput, expectedStatus: http.StatusBadRequest},
		{name: "error: project not found", body: `{"response":{}}`, mockErr: usecase.ErrProjectNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockProjectUsecase{AppendResponseFunc: func(ctx context.Context, userID string, id int64, response json.RawMessage) error {
				assert.Equal(t, int64(3), id)
				return tt.mockErr
			}}
			r := setupRouter(uc, "user-1")

			w := doRequest(r, http.MethodPost, "/api/projects/3/response", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestProjectHandler_UpsertProfile(t *testing.T) {
	updated := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	uc := &mockProjectUsecase{UpsertProfileFunc: func(ctx context.Context, userID, email string) (*entity.Profile, error) {
		if email == "" {
			return nil, usecase.ErrInvalidInput
		}
		return &entity.Profile{ID: userID, Email: email, UpdatedAt: updated}, nil
	}}
	r := setupRouter(uc, "user-1")

	w := doRequest(r, http.MethodPost, "/api/profiles", `{"email":"a@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"profile":{"id":"user-1","email":"a@example.com","updatedAt":"2025-02-01T00:00:00Z"}}`, w.Body.String())

	w = doRequest(r, http.MethodPost, "/api/profiles", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
