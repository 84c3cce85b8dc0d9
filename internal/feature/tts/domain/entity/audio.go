// Package entity はttsフィーチャーのエンティティを定義します。
package entity

import "io"

// Audio は合成された音声のストリームです。Bodyは呼び出し側が必ずCloseします。
type Audio struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64 // 不明な場合は-1
}
