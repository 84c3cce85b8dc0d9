// Package dto はElevenLabs APIのリクエスト・レスポンス型を定義します。
package dto

// TextToSpeechRequest は POST /v1/text-to-speech/{voice_id} のリクエストボディです。
type TextToSpeechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Detail struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"detail"`
}
