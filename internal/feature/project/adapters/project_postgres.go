// Package adapters はprojectフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foresight_backend/internal/feature/project/domain/entity"
	"foresight_backend/internal/feature/project/usecase"
)

// PostgreSQLエラー23503: 外部キー制約違反
const pgForeignKeyViolation = "23503"

// ProjectModel はprojectsテーブルの行です。JSON列はクライアントの値をそのまま保存します。
type ProjectModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	UserID          string          `gorm:"size:64;not null;index"`
	CompanyName     string          `gorm:"size:255;not null"`
	ResearchGoal    string          `gorm:"type:text;not null"`
	Status          string          `gorm:"size:32;not null"`
	Questions       json.RawMessage `gorm:"serializer:json;type:text"`
	CompanyAnalysis json.RawMessage `gorm:"serializer:json;type:text"`
	Report          json.RawMessage `gorm:"serializer:json;type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ProjectModel) TableName() string {
	return "projects"
}

// ProjectResponseModel はproject_responsesテーブルの行です。回答は追記のみで、IDの昇順が追加順です。
type ProjectResponseModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	ProjectID int64           `gorm:"not null;index"`
	Payload   json.RawMessage `gorm:"serializer:json;type:text;not null"`
	CreatedAt time.Time

	Project *ProjectModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (ProjectResponseModel) TableName() string {
	return "project_responses"
}

type projectPostgres struct {
	db *gorm.DB
}

// projectPostgresがProjectRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ProjectRepository = (*projectPostgres)(nil)

// NewProjectRepository は指定されたDB接続でprojectPostgresの新しいインスタンスを生成します。
func NewProjectRepository(db *gorm.DB) *projectPostgres {
	return &projectPostgres{db: db}
}

func toProjectModel(p *entity.Project) ProjectModel {
	return ProjectModel{
		ID:              p.ID,
		UserID:          p.UserID,
		CompanyName:     p.CompanyName,
		ResearchGoal:    p.ResearchGoal,
		Status:          p.Status,
		Questions:       p.Questions,
		CompanyAnalysis: p.CompanyAnalysis,
		Report:          p.Report,
	}
}

func toProjectEntity(m ProjectModel, responses []ProjectResponseModel) *entity.Project {
	out := make([]json.RawMessage, 0, len(responses))
	for _, r := range responses {
		out = append(out, r.Payload)
	}
	return &entity.Project{
		ID:              m.ID,
		UserID:          m.UserID,
		CompanyName:     m.CompanyName,
		ResearchGoal:    m.ResearchGoal,
		Status:          m.Status,
		Questions:       m.Questions,
		CompanyAnalysis: m.CompanyAnalysis,
		Report:          m.Report,
		Responses:       out,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// Create はプロジェクトを追加し、採番されたIDと時刻をpに反映します。
func (r *projectPostgres) Create(ctx context.Context, p *entity.Project) error {
	m := toProjectModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID は所有者がuserIDのプロジェクトを回答付きで返します。
// 他のユーザーのプロジェクトはusecase.ErrProjectNotFoundとして扱います。
func (r *projectPostgres) FindByID(ctx context.Context, userID string, id int64) (*entity.Project, error) {
	db := r.db.WithContext(ctx)

	var m ProjectModel
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProjectNotFound
		}
		return nil, err
	}

	var responses []ProjectResponseModel
	if err := db.Where("project_id = ?", id).Order("id ASC").Find(&responses).Error; err != nil {
		return nil, err
	}
	return toProjectEntity(m, responses), nil
}

// AppendResponse は回答を1行追加します。既存の回答を読み直して書き戻さないため、同時追加でも回答は失われません。
func (r *projectPostgres) AppendResponse(ctx context.Context, userID string, id int64, response json.RawMessage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ProjectModel{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrProjectNotFound
		}

		row := ProjectResponseModel{ProjectID: id, Payload: response}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		// updated_at のみ更新
		return tx.Model(&ProjectModel{}).Where("id = ?", id).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		// 確認後にプロジェクトが削除された場合
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return usecase.ErrProjectNotFound
		}
		return err
	}
	return nil
}
