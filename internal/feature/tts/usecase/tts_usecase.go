// Package usecase はttsフィーチャーのユースケースを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"foresight_backend/internal/feature/tts/domain/entity"
)

// MaxTextLength は1回の合成で受け付ける最大文字数（rune数）です。
const MaxTextLength = 5000

var (
	// ErrInvalidText is returned when the text is empty or too long.
	ErrInvalidText = errors.New("invalid text")
	// ErrSynthesis is returned when the speech provider fails.
	ErrSynthesis = errors.New("speech synthesis failed")
)

// Synthesizer はテキストを音声ストリームに変換します。
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*entity.Audio, error)
}

type ttsUsecase struct {
	synth Synthesizer
}

// NewTTSUsecase はttsUsecaseの新しいインスタンスを生成します。
func NewTTSUsecase(synth Synthesizer) *ttsUsecase {
	return &ttsUsecase{synth: synth}
}

// Speak はテキストを検証して音声を合成します。
func (u *ttsUsecase) Speak(ctx context.Context, text string) (*entity.Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidText)
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return nil, fmt.Errorf("%w: text exceeds maximum length of %d characters", ErrInvalidText, MaxTextLength)
	}

	audio, err := u.synth.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	return audio, nil
}
