package entity

// QuestionType は質問の回答形式です。
type QuestionType string

const (
	QuestionTypeOpenText       QuestionType = "open-text"
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeRatingScale    QuestionType = "rating-scale"
)

// Valid は既知の回答形式かどうかを返します。
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeOpenText, QuestionTypeMultipleChoice, QuestionTypeRatingScale:
		return true
	}
	return false
}

const (
	// RatingIcon は評価1〜4に使うアイコンです。
	RatingIcon = "star_border"
	// RatingIconFilled は評価5に使うアイコンです。
	RatingIconFilled = "star"
)

// Option は選択肢1件を表します。IconはMaterial Iconsの名前です。
type Option struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Question はアンケートの質問1件を表します。
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []Option     `json:"options"`
}

// RatingScaleOptions は評価スケール質問の標準選択肢（"1"〜"5"）を返します。
func RatingScaleOptions() []Option {
	return []Option{
		{Label: "1", Icon: RatingIcon},
		{Label: "2", Icon: RatingIcon},
		{Label: "3", Icon: RatingIcon},
		{Label: "4", Icon: RatingIcon},
		{Label: "5", Icon: RatingIconFilled},
	}
}
