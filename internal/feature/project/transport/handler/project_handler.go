// Package handler はprojectフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"foresight_backend/internal/api"
	"foresight_backend/internal/feature/project/domain/entity"
	"foresight_backend/internal/feature/project/usecase"
	jwtmw "foresight_backend/internal/platform/jwt"
)

// ProjectUsecase はプロジェクトとプロフィールのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ProjectUsecase interface {
	CreateProject(ctx context.Context, userID string, in usecase.CreateProjectInput) (*entity.Project, error)
	GetProject(ctx context.Context, userID string, id int64) (*entity.Project, error)
	AppendResponse(ctx context.Context, userID string, id int64, response json.RawMessage) error
	UpsertProfile(ctx context.Context, userID, email string) (*entity.Profile, error)
}

// ProjectHandler はプロジェクト関連のHTTPリクエストを処理します。
// すべてのエンドポイントはjwtmw.AuthRequiredの後段で使用します。
type ProjectHandler struct {
	uc ProjectUsecase
}

// NewProjectHandler はProjectHandlerの新しいインスタンスを生成します。
func NewProjectHandler(uc ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create はプロジェクトを作成します。
//
// エンドポイント: POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req api.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("プロジェクト作成リクエストの解析に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "リクエストボディが不正です"})
		return
	}

	p, err := h.uc.CreateProject(c.Request.Context(), userID, usecase.CreateProjectInput{
		CompanyName:     req.CompanyName,
		ResearchGoal:    req.ResearchGoal,
		Status:          req.Status,
		Questions:       req.Questions,
		CompanyAnalysis: req.CompanyAnalysis,
		Report:          req.Report,
	})
	if err != nil {
		respondError(c, "プロジェクトの作成に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, api.ProjectResponse{Project: toProjectDTO(p)})
}

// Get はプロジェクトを回答付きで返します。
//
// エンドポイント: GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := bindProjectID(c)
	if !ok {
		return
	}

	p, err := h.uc.GetProject(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, "プロジェクトの取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, api.ProjectResponse{Project: toProjectDTO(p)})
}

// AppendResponse はプロジェクトに回答を1件追加します。
//
// エンドポイント: POST /api/projects/:id/response
func (h *ProjectHandler) AppendResponse(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := bindProjectID(c)
	if !ok {
		return
	}

	var req api.AppendResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("回答リクエストの解析に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "リクエストボディが不正です"})
		return
	}

	if err := h.uc.AppendResponse(c.Request.Context(), userID, id, req.Response); err != nil {
		respondError(c, "回答の保存に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

// UpsertProfile はプロフィールを作成または更新します。
//
// エンドポイント: POST /api/profiles
func (h *ProjectHandler) UpsertProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req api.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "リクエストボディが不正です"})
		return
	}

	p, err := h.uc.UpsertProfile(c.Request.Context(), userID, req.Email)
	if err != nil {
		respondError(c, "プロフィールの保存に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, api.ProfileResponse{Profile: api.Profile{ID: p.ID, Email: p.Email, UpdatedAt: p.UpdatedAt}})
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// bindProjectID はパスパラメータ :id を整数として取り出します。
func bindProjectID(c *gin.Context) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "プロジェクトIDが不正です"})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "入力が不正です", Details: err.Error()})
	case errors.Is(err, usecase.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Project not found"})
	default:
		slog.Error(msg, "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msg})
	}
}

func toProjectDTO(p *entity.Project) api.Project {
	responses := p.Responses
	if responses == nil {
		responses = []json.RawMessage{}
	}
	return api.Project{
		ID:              p.ID,
		UserID:          p.UserID,
		CompanyName:     p.CompanyName,
		ResearchGoal:    p.ResearchGoal,
		Status:          p.Status,
		Questions:       p.Questions,
		CompanyAnalysis: p.CompanyAnalysis,
		Report:          p.Report,
		Responses:       responses,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
