package entity

// Report はインタビュー回答から生成したリサーチレポートです。
type Report struct {
	Title              string     `json:"title"`
	ExecutiveSummary   string     `json:"executiveSummary"`
	KeyThemes          []KeyTheme `json:"keyThemes"`
	DetailedAnalysis   string     `json:"detailedAnalysis"`
	ActionableInsights []string   `json:"actionableInsights"`
	NotableQuotes      []Quote    `json:"notableQuotes"`
}

// KeyTheme は回答全体に現れたテーマと、その出現割合（0〜100）です。
type KeyTheme struct {
	Theme       string  `json:"theme"`
	Percentage  float64 `json:"percentage"`
	Description string  `json:"description"`
}

// Quote は印象的な回答の引用です。
type Quote struct {
	Quote   string `json:"quote"`
	Context string `json:"context,omitempty"`
}
