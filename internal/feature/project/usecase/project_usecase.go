// Package usecase implements the business logic for the project feature.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	"foresight_backend/internal/feature/project/domain/entity"
)

// ProjectRepository はプロジェクトの永続化を抽象化します。
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	// FindByID は所有者がuserIDのプロジェクトを回答付きで返します。存在しない場合はErrProjectNotFoundです。
	FindByID(ctx context.Context, userID string, id int64) (*entity.Project, error)
	// AppendResponse は回答を1件追加します。既存の回答は変更しません。
	AppendResponse(ctx context.Context, userID string, id int64, response json.RawMessage) error
}

// ProfileRepository はプロフィールの永続化を抽象化します。
type ProfileRepository interface {
	Upsert(ctx context.Context, p *entity.Profile) (*entity.Profile, error)
}

// CreateProjectInput はプロジェクト作成の入力です。
type CreateProjectInput struct {
	CompanyName     string
	ResearchGoal    string
	Status          string
	Questions       json.RawMessage
	CompanyAnalysis json.RawMessage
	Report          json.RawMessage
}

type projectUsecase struct {
	projects ProjectRepository
	profiles ProfileRepository
}

// NewProjectUsecase はprojectUsecaseの新しいインスタンスを生成します。
func NewProjectUsecase(projects ProjectRepository, profiles ProfileRepository) *projectUsecase {
	return &projectUsecase{projects: projects, profiles: profiles}
}

// CreateProject はプロジェクトを作成します。statusの既定値はDraft、questionsの既定値は空配列です。
func (u *projectUsecase) CreateProject(ctx context.Context, userID string, in CreateProjectInput) (*entity.Project, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.CompanyName) == "" || strings.TrimSpace(in.ResearchGoal) == "" {
		return nil, fmt.Errorf("%w: companyName and researchGoal are required", ErrInvalidInput)
	}

	p := &entity.Project{
		UserID:          userID,
		CompanyName:     in.CompanyName,
		ResearchGoal:    in.ResearchGoal,
		Status:          in.Status,
		Questions:       in.Questions,
		CompanyAnalysis: nullIfEmpty(in.CompanyAnalysis),
		Report:          nullIfEmpty(in.Report),
		Responses:       []json.RawMessage{},
	}
	if strings.TrimSpace(p.Status) == "" {
		p.Status = entity.StatusDraft
	}
	if isNull(p.Questions) {
		p.Questions = json.RawMessage(`[]`)
	}

	if err := u.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

// GetProject は所有者本人のプロジェクトを返します。
func (u *projectUsecase) GetProject(ctx context.Context, userID string, id int64) (*entity.Project, error) {
	p, err := u.projects.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// AppendResponse はプロジェクトに回答を追加します。
func (u *projectUsecase) AppendResponse(ctx context.Context, userID string, id int64, response json.RawMessage) error {
	if isNull(response) {
		return fmt.Errorf("%w: response is required", ErrInvalidInput)
	}
	if !json.Valid(response) {
		return fmt.Errorf("%w: response is not valid JSON", ErrInvalidInput)
	}
	return u.projects.AppendResponse(ctx, userID, id, response)
}

// UpsertProfile はユーザーのプロフィールを作成または更新します。
func (u *projectUsecase) UpsertProfile(ctx context.Context, userID, email string) (*entity.Profile, error) {
	email = strings.TrimSpace(email)
	if strings.TrimSpace(userID) == "" || email == "" {
		return nil, fmt.Errorf("%w: user id and email are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email: %w", ErrInvalidInput, err)
	}

	p, err := u.profiles.Upsert(ctx, &entity.Profile{ID: userID, Email: email})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return p, nil
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

func nullIfEmpty(raw json.RawMessage) json.RawMessage {
	if isNull(raw) {
		return json.RawMessage(`null`)
	}
	return raw
}
