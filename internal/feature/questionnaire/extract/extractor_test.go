package extract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foresight_backend/internal/feature/questionnaire/extract"
)

// TestLastClose_Identity は前後にノイズのないJSONをそのまま解析した結果と一致することを検証します。
func TestLastClose_Identity(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"a":1}`,
		`{"category":"SaaS","competitors":["A","B","C"]}`,
		`[{"id":"q1","options":[]},{"id":"q2","options":[{"label":"x","icon":"store"}]}]`,
		`[]`,
		`{"nested":{"deep":[1,{"k":"v"}]}}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			v, err := extract.LastClose(in)
			require.NoError(t, err)
			assert.JSONEq(t, in, string(v.Raw))
		})
	}
}

func TestLastClose_NoisyInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantJSON string
		wantKind extract.Kind
	}{
		{
			name:     "json code fence",
			text:     "```json\n{\"a\":1}\n```",
			wantJSON: `{"a":1}`,
			wantKind: extract.KindObject,
		},
		{
			name:     "bare code fence with surrounding prose",
			text:     "Here you go:\n```\n[1,2,3]\n```\nThanks",
			wantJSON: `[1,2,3]`,
			wantKind: extract.KindArray,
		},
		{
			name:     "leading and trailing prose",
			text:     `Sure! Here is the analysis: {"category":"Retail"} Hope it helps.`,
			wantJSON: `{"category":"Retail"}`,
			wantKind: extract.KindObject,
		},
		{
			name:     "array before object",
			text:     `Result: [{"label":"A","icon":"store"}]`,
			wantJSON: `[{"label":"A","icon":"store"}]`,
			wantKind: extract.KindArray,
		},
		{
			name:     "object containing array",
			text:     `note {"items":[1,2]}`,
			wantJSON: `{"items":[1,2]}`,
			wantKind: extract.KindObject,
		},
		{
			name:     "fence with surrounding whitespace",
			text:     "\n\n  ```JSON\n  {\"a\": [true, null]}\n```  \n",
			wantJSON: `{"a":[true,null]}`,
			wantKind: extract.KindObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := extract.LastClose(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, v.Kind)
			assert.JSONEq(t, tt.wantJSON, string(v.Raw))
		})
	}
}

func TestLastClose_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{name: "empty", text: "", wantErr: extract.ErrNoStructure},
		{name: "prose only", text: "I could not find that company.", wantErr: extract.ErrNoStructure},
		{name: "fence only", text: "```json\n```", wantErr: extract.ErrNoStructure},
		{name: "dangling comma", text: `{"a":1,}`, wantErr: extract.ErrInvalidJSON},
		{name: "truncated object", text: `{"a":1,`, wantErr: extract.ErrInvalidJSON},
		{name: "truncated array", text: `[1,2`, wantErr: extract.ErrInvalidJSON},
		{name: "unmatched bracket", text: `{"a": [1, 2}`, wantErr: extract.ErrInvalidJSON},
		{name: "close before open", text: `} then {`, wantErr: extract.ErrInvalidJSON},
		{
			// 最初の '{' から最後の '}' までを切り出すため、2つのオブジェクトをまたいで失敗する
			name:    "second fragment after payload",
			text:    "```json\n{\"a\":1}\n``` extra trailing note {\"b\":2} ```",
			wantErr: extract.ErrInvalidJSON,
		},
		{
			name:    "brace inside string followed by trailing brace",
			text:    `{"a":"}{"} trailing }`,
			wantErr: extract.ErrInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := extract.LastClose(tt.text)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, v.Raw)
		})
	}
}

func TestBalanced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantJSON string
		wantErr  error
	}{
		{
			name:     "second fragment after payload",
			text:     "```json\n{\"a\":1}\n``` extra trailing note {\"b\":2} ```",
			wantJSON: `{"a":1}`,
		},
		{
			name:     "brackets inside strings",
			text:     `{"a":"}{","b":"[\"]"} trailing }`,
			wantJSON: `{"a":"}{","b":"[\"]"}`,
		},
		{
			name:     "nested mixed containers",
			text:     `prefix [{"options":[{"label":"1"}]}] suffix [2]`,
			wantJSON: `[{"options":[{"label":"1"}]}]`,
		},
		{
			name:    "unbalanced",
			text:    `{"a":{"b":1}`,
			wantErr: extract.ErrInvalidJSON,
		},
		{
			name:    "balanced but invalid",
			text:    `{"a":1,}`,
			wantErr: extract.ErrInvalidJSON,
		},
		{
			name:    "no structure",
			text:    "nothing here",
			wantErr: extract.ErrNoStructure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := extract.Balanced(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, v.Raw)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(v.Raw))
		})
	}
}

func TestExtractor_Decode(t *testing.T) {
	t.Parallel()

	type payload struct {
		A int `json:"a"`
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var got payload
		err := extract.New(nil).Decode("```json\n{\"a\":7}\n```", extract.KindObject, &got)
		require.NoError(t, err)
		assert.Equal(t, 7, got.A)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		t.Parallel()

		var got payload
		err := extract.New(nil).Decode(`[{"a":1}]`, extract.KindObject, &got)
		assert.ErrorIs(t, err, extract.ErrKindMismatch)
	})

	t.Run("type mismatch", func(t *testing.T) {
		t.Parallel()

		var got payload
		err := extract.New(nil).Decode(`{"a":"seven"}`, extract.KindObject, &got)
		assert.ErrorIs(t, err, extract.ErrInvalidJSON)
	})

	t.Run("extraction failure is returned as is", func(t *testing.T) {
		t.Parallel()

		var got []json.RawMessage
		err := extract.New(extract.Balanced).Decode("no json", extract.KindArray, &got)
		assert.ErrorIs(t, err, extract.ErrNoStructure)
		assert.Nil(t, got)
	})
}

func TestStrategyByName(t *testing.T) {
	t.Parallel()

	text := "```json\n{\"a\":1}\n``` extra trailing note {\"b\":2} ```"

	_, err := extract.New(extract.StrategyByName("")).Extract(text)
	assert.ErrorIs(t, err, extract.ErrInvalidJSON)

	v, err := extract.New(extract.StrategyByName(" Balanced ")).Extract(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(v.Raw))
}
