// Package handler はquestionnaireフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"foresight_backend/internal/api"
	"foresight_backend/internal/feature/questionnaire/domain"
	"foresight_backend/internal/feature/questionnaire/domain/entity"
	"foresight_backend/internal/platform/http/middleware"
)

// QuestionnaireUsecase はアンケート生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuestionnaireUsecase interface {
	AnalyzeCompany(ctx context.Context, companyName string) (*entity.CompanyAnalysis, error)
	GenerateInitialQuestions(ctx context.Context, companyName, researchGoal string, analysis *entity.CompanyAnalysis) ([]entity.Question, error)
	GenerateMultipleChoiceOptions(ctx context.Context, questionText, researchGoal string) ([]entity.Option, error)
	GenerateFollowUpQuestion(ctx context.Context, originalQuestion, userAnswer, language string) (*entity.FollowUp, error)
	GenerateProjectReport(ctx context.Context, responses []json.RawMessage, researchGoal string) (*entity.Report, error)
}

// QuestionnaireHandler はアンケート生成のHTTPリクエストを処理します。
type QuestionnaireHandler struct {
	uc QuestionnaireUsecase
}

// NewQuestionnaireHandler はQuestionnaireHandlerの新しいインスタンスを生成します。
func NewQuestionnaireHandler(uc QuestionnaireUsecase) *QuestionnaireHandler {
	return &QuestionnaireHandler{uc: uc}
}

// AnalyzeCompany は企業分析を生成します。
//
// エンドポイント: POST /api/ai/analyze-company
func (h *QuestionnaireHandler) AnalyzeCompany(c *gin.Context) {
	var req api.AnalyzeCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	analysis, err := h.uc.AnalyzeCompany(c.Request.Context(), req.CompanyName)
	if err != nil {
		respondError(c, "企業分析に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, api.AnalyzeCompanyResponse{Analysis: analysis})
}

// GenerateQuestions は初期アンケートを生成します。
//
// エンドポイント: POST /api/ai/generate-questions
func (h *QuestionnaireHandler) GenerateQuestions(c *gin.Context) {
	var req api.GenerateQuestionsRequest
	if !bindJSON(c, &req) {
		return
	}

	questions, err := h.uc.GenerateInitialQuestions(c.Request.Context(), req.CompanyName, req.ResearchGoal, req.CompanyAnalysis)
	if err != nil {
		respondError(c, "質問の生成に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, api.GenerateQuestionsResponse{Questions: questions})
}

// GenerateMCOptions は選択肢を生成します。
//
// エンドポイント: POST /api/ai/generate-mc-options
func (h *QuestionnaireHandler) GenerateMCOptions(c *gin.Context) {
	var req api.GenerateMCOptionsRequest
	if !bindJSON(c, &req) {
		return
	}

	options, err := h.uc.GenerateMultipleChoiceOptions(c.Request.Context(), req.QuestionText, req.ResearchGoal)
	if err != nil {
		respondError(c, "選択肢の生成に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, api.GenerateMCOptionsResponse{Options: options})
}

// GenerateFollowUp は深掘り質問を生成します。
//
// エンドポイント: POST /api/ai/generate-followup
func (h *QuestionnaireHandler) GenerateFollowUp(c *gin.Context) {
	var req api.GenerateFollowUpRequest
	if !bindJSON(c, &req) {
		return
	}

	followUp, err := h.uc.GenerateFollowUpQuestion(c.Request.Context(), req.OriginalQuestion, req.UserAnswer, req.Language)
	if err != nil {
		respondError(c, "深掘り質問の生成に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, followUp)
}

// GenerateProjectReport は回答一覧からレポートを生成します。
//
// エンドポイント: POST /api/ai/generate-project-report
func (h *QuestionnaireHandler) GenerateProjectReport(c *gin.Context) {
	var req api.GenerateProjectReportRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.uc.GenerateProjectReport(c.Request.Context(), req.Responses, req.ResearchGoal)
	if err != nil {
		respondError(c, "レポートの生成に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, api.GenerateProjectReportResponse{Report: report})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("リクエストボディの解析に失敗", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "リクエストボディが不正です"})
		return false
	}
	return true
}

// respondError はユースケースのエラーを分類してHTTPステータスに変換します。
//
//	ErrValidation      → 400
//	ErrUpstream        → 502（期限切れの場合は504）
//	ErrMalformedOutput → 500
func respondError(c *gin.Context, msg string, err error) {
	attrs := []any{"error", err, "path", c.FullPath(), "remote_addr", c.ClientIP(), "request_id", middleware.RequestIDFrom(c)}

	switch {
	case errors.Is(err, domain.ErrValidation):
		slog.Warn("入力のバリデーションに失敗", attrs...)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "入力が不正です", Details: err.Error()})
	case errors.Is(err, domain.ErrUpstream):
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		slog.Error(msg, attrs...)
		c.JSON(status, api.ErrorResponse{Error: msg, Details: err.Error()})
	case errors.Is(err, domain.ErrMalformedOutput):
		slog.Error(msg, attrs...)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msg, Details: err.Error()})
	default:
		slog.Error(msg, attrs...)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msg})
	}
}
