// Package domain はquestionnaireフィーチャーのドメインエラーを定義します。
package domain

import "errors"

// 生成パイプラインの失敗分類。上位層はerrors.Isで判定します。
var (
	// ErrValidation は呼び出し元の入力が不足・不正な場合のエラーです。
	// モデル呼び出しの前に検出されます。
	ErrValidation = errors.New("validation failed")

	// ErrUpstream は生成モデルに到達できない、またはモデル側がエラーを返した場合のエラーです。
	ErrUpstream = errors.New("upstream generation failed")

	// ErrMalformedOutput はモデルには到達できたが、出力から期待する構造を取り出せなかった場合のエラーです。
	ErrMalformedOutput = errors.New("malformed model output")
)
