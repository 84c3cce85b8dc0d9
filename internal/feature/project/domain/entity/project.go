// Package entity はprojectフィーチャーのエンティティを定義します。
package entity

import (
	"encoding/json"
	"time"
)

// StatusDraft は作成直後のプロジェクトの既定ステータスです。
const StatusDraft = "Draft"

// Project はユーザーが作成したリサーチプロジェクトです。
// Questions / CompanyAnalysis / Report はクライアントが送ったJSONをそのまま保持します。
type Project struct {
	ID              int64
	UserID          string
	CompanyName     string
	ResearchGoal    string
	Status          string
	Questions       json.RawMessage
	CompanyAnalysis json.RawMessage
	Report          json.RawMessage
	Responses       []json.RawMessage // 追加順
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
