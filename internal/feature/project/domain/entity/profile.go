package entity

import "time"

// Profile は認証済みユーザーのプロフィールです。IDはJWTのsubjectです。
type Profile struct {
	ID        string
	Email     string
	UpdatedAt time.Time
}
