package entity

// FollowUp は回答に対する深掘り質問です。
type FollowUp struct {
	FollowUp string   `json:"followUp"`
	Options  []Option `json:"options"`
}
