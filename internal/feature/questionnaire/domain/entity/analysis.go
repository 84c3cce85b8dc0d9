// Package entity はquestionnaireフィーチャーのドメインモデルを定義します。
package entity

// CompanyAnalysis はAIが生成した企業分析を表します。
type CompanyAnalysis struct {
	Category    string   `json:"category"`    // 主な業種・カテゴリ
	Domain      string   `json:"domain"`      // 企業のWebドメイン
	Summary     string   `json:"summary"`     // 1〜2文の事業概要
	Competitors []string `json:"competitors"` // 主要な競合（3〜5社）
}

// IsZero はすべてのフィールドが空の場合にtrueを返します。
func (a CompanyAnalysis) IsZero() bool {
	return a.Category == "" && a.Domain == "" && a.Summary == "" && len(a.Competitors) == 0
}
