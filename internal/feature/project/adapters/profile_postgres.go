package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foresight_backend/internal/feature/project/domain/entity"
	"foresight_backend/internal/feature/project/usecase"
)

// ProfileModel はprofilesテーブルの行です。IDは認証プロバイダのsubjectです。
type ProfileModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Email     string `gorm:"size:255;not null"`
	UpdatedAt time.Time
}

func (ProfileModel) TableName() string {
	return "profiles"
}

type profilePostgres struct {
	db *gorm.DB
}

var _ usecase.ProfileRepository = (*profilePostgres)(nil)

// NewProfileRepository は指定されたDB接続でprofilePostgresの新しいインスタンスを生成します。
func NewProfileRepository(db *gorm.DB) *profilePostgres {
	return &profilePostgres{db: db}
}

// Upsert はIDが衝突した場合にemailを上書きし、保存後の行を返します。
func (r *profilePostgres) Upsert(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	m := ProfileModel{ID: p.ID, Email: p.Email}
	db := r.db.WithContext(ctx)

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "updated_at"}),
	}).Create(&m).Error; err != nil {
		return nil, err
	}

	var saved ProfileModel
	if err := db.Where("id = ?", p.ID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &entity.Profile{ID: saved.ID, Email: saved.Email, UpdatedAt: saved.UpdatedAt}, nil
}
