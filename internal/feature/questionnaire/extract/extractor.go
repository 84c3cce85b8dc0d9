// Package extract はモデルの応答テキストに埋め込まれたJSON値を取り出します。
//
// 応答はコードフェンスや前後の説明文を含むことがあり、整形済みJSONである保証はありません。
// 取り出しに失敗しても panic せず、センチネルエラーを返します。
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoStructure はテキストに '{' も '[' も見つからない場合のエラーです。
	ErrNoStructure = errors.New("no JSON structure found")
	// ErrInvalidJSON は切り出した範囲がJSONとして解釈できない場合のエラーです。
	ErrInvalidJSON = errors.New("extracted text is not valid JSON")
	// ErrKindMismatch は期待と異なる種類（オブジェクト/配列）が得られた場合のエラーです。
	ErrKindMismatch = errors.New("unexpected JSON kind")
)

// Kind は取り出したJSON値の種類です。
type Kind int

const (
	KindObject Kind = iota + 1
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Value は取り出しに成功したJSON値です。
type Value struct {
	Raw  json.RawMessage
	Kind Kind
}

// Strategy はテキストからJSON値を1つ取り出す方式です。
type Strategy func(text string) (Value, error)

// 各行頭の ```lang と行末の ``` を取り除きます。
var fenceRegex = regexp.MustCompile("(?m)^```[a-zA-Z]*\\s*|```$")

// stripFences はコードフェンス記号を除去し、前後の空白を取り除きます。
func stripFences(text string) string {
	return strings.TrimSpace(fenceRegex.ReplaceAllString(text, ""))
}

// locateOpen は最初の '{' と '[' の位置から対象の種類と開始位置を決めます。
// '[' が存在し、かつ '{' が無いか '[' の方が前にある場合は配列です。
func locateOpen(s string) (Kind, int, bool) {
	brace := strings.IndexByte(s, '{')
	bracket := strings.IndexByte(s, '[')
	if brace == -1 && bracket == -1 {
		return 0, -1, false
	}
	if bracket != -1 && (brace == -1 || bracket < brace) {
		return KindArray, bracket, true
	}
	return KindObject, brace, true
}

func closingToken(k Kind) byte {
	if k == KindArray {
		return ']'
	}
	return '}'
}

// LastClose は最初の開きトークンから、同じ種類の「最後の」閉じトークンまでを切り出して解析します。
// 括弧の深さは数えないため、ペイロードの後ろに同じ種類の別の断片があると失敗します。
func LastClose(text string) (Value, error) {
	s := stripFences(text)
	kind, start, ok := locateOpen(s)
	if !ok {
		return Value{}, ErrNoStructure
	}
	end := strings.LastIndexByte(s, closingToken(kind))
	if end == -1 || end < start {
		return Value{}, fmt.Errorf("%w: no closing %q for %s", ErrInvalidJSON, closingToken(kind), kind)
	}
	return parse(s[start:end+1], kind)
}

// Balanced は開きトークンから括弧の深さを追跡し、深さが0に戻った位置で切り出します。
// JSON文字列内の括弧とエスケープは無視します。
func Balanced(text string) (Value, error) {
	s := stripFences(text)
	kind, start, ok := locateOpen(s)
	if !ok {
		return Value{}, ErrNoStructure
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return parse(s[start:i+1], kind)
			}
		}
	}
	return Value{}, fmt.Errorf("%w: unbalanced %s", ErrInvalidJSON, kind)
}

func parse(candidate string, kind Kind) (Value, error) {
	if !json.Valid([]byte(candidate)) {
		return Value{}, ErrInvalidJSON
	}
	return Value{Raw: json.RawMessage(candidate), Kind: kind}, nil
}

// Extractor は設定された方式でJSON値を取り出します。
type Extractor struct {
	strategy Strategy
}

// New は指定された方式のExtractorを生成します。nilの場合はLastCloseを使います。
func New(strategy Strategy) *Extractor {
	if strategy == nil {
		strategy = LastClose
	}
	return &Extractor{strategy: strategy}
}

// StrategyByName は設定値から方式を選びます。未知の値はLastCloseです。
func StrategyByName(name string) Strategy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "balanced":
		return Balanced
	default:
		return LastClose
	}
}

// Extract はテキストからJSON値を1つ取り出します。
func (e *Extractor) Extract(text string) (Value, error) {
	return e.strategy(text)
}

// Decode はJSON値を取り出し、種類を確認したうえでdstにデコードします。
func (e *Extractor) Decode(text string, want Kind, dst any) error {
	v, err := e.strategy(text)
	if err != nil {
		return err
	}
	if v.Kind != want {
		return fmt.Errorf("%w: want %s, got %s", ErrKindMismatch, want, v.Kind)
	}
	if err := json.Unmarshal(v.Raw, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
