// Package api はHTTP APIのリクエスト・レスポンス型を定義します。
package api

import (
	"encoding/json"
	"time"

	"foresight_backend/internal/feature/questionnaire/domain/entity"
)

// ErrorResponse はすべてのエラー応答の共通形式です。
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse はヘルスチェックの応答です。
type HealthResponse struct {
	Status string `json:"status"`
}

// AnalyzeCompanyRequest は POST /api/ai/analyze-company のリクエストです。
type AnalyzeCompanyRequest struct {
	CompanyName string `json:"companyName"`
}

type AnalyzeCompanyResponse struct {
	Analysis *entity.CompanyAnalysis `json:"analysis"`
}

// GenerateQuestionsRequest は POST /api/ai/generate-questions のリクエストです。
type GenerateQuestionsRequest struct {
	CompanyName     string                  `json:"companyName"`
	ResearchGoal    string                  `json:"researchGoal"`
	CompanyAnalysis *entity.CompanyAnalysis `json:"companyAnalysis"`
}

type GenerateQuestionsResponse struct {
	Questions []entity.Question `json:"questions"`
}

// GenerateMCOptionsRequest は POST /api/ai/generate-mc-options のリクエストです。
type GenerateMCOptionsRequest struct {
	QuestionText string `json:"questionText"`
	ResearchGoal string `json:"researchGoal"`
}

type GenerateMCOptionsResponse struct {
	Options []entity.Option `json:"options"`
}

// GenerateFollowUpRequest は POST /api/ai/generate-followup のリクエストです。
// 応答はentity.FollowUpをそのまま返します。
type GenerateFollowUpRequest struct {
	OriginalQuestion string `json:"originalQuestion"`
	UserAnswer       string `json:"userAnswer"`
	Language         string `json:"language"`
}

// GenerateProjectReportRequest は POST /api/ai/generate-project-report のリクエストです。
type GenerateProjectReportRequest struct {
	Responses    []json.RawMessage `json:"responses"`
	ResearchGoal string            `json:"researchGoal"`
}

type GenerateProjectReportResponse struct {
	Report *entity.Report `json:"report"`
}

// CreateProjectRequest は POST /api/projects のリクエストです。
// questions / companyAnalysis / report は解釈せずに保存します。
type CreateProjectRequest struct {
	CompanyName     string          `json:"companyName"`
	ResearchGoal    string          `json:"researchGoal"`
	Status          string          `json:"status"`
	Questions       json.RawMessage `json:"questions"`
	CompanyAnalysis json.RawMessage `json:"companyAnalysis"`
	Report          json.RawMessage `json:"report"`
}

// Project はプロジェクトの応答表現です。
type Project struct {
	ID              int64             `json:"id"`
	UserID          string            `json:"userId"`
	CompanyName     string            `json:"companyName"`
	ResearchGoal    string            `json:"researchGoal"`
	Status          string            `json:"status"`
	Questions       json.RawMessage   `json:"questions"`
	CompanyAnalysis json.RawMessage   `json:"companyAnalysis"`
	Report          json.RawMessage   `json:"report"`
	Responses       []json.RawMessage `json:"responses"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

type ProjectResponse struct {
	Project Project `json:"project"`
}

// AppendResponseRequest は POST /api/projects/:id/response のリクエストです。
type AppendResponseRequest struct {
	Response json.RawMessage `json:"response"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// UpsertProfileRequest は POST /api/profiles のリクエストです。
type UpsertProfileRequest struct {
	Email string `json:"email"`
}

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProfileResponse struct {
	Profile Profile `json:"profile"`
}

// TTSRequest は POST /api/tts のリクエストです。
type TTSRequest struct {
	Text string `json:"text"`
}
