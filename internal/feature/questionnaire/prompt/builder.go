// Package prompt は生成モデルに渡すプロンプトを組み立てます。
//
// 各プロンプトは役割の指定、呼び出し元の入力（そのまま埋め込み）、出力形式の厳密な説明、
// そしてその形式以外を出力しない指示から構成されます。モデルを呼ぶ前に必須パラメータを検証します。
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"foresight_backend/internal/feature/questionnaire/domain"
	"foresight_backend/internal/feature/questionnaire/domain/entity"
)

// Operation は生成操作の識別子です。
type Operation string

const (
	OpAnalyzeCompany           Operation = "analyze_company"
	OpGenerateInitialQuestions Operation = "generate_initial_questions"
	OpGenerateMCOptions        Operation = "generate_mc_options"
	OpGenerateFollowUp         Operation = "generate_followup"
	OpGenerateProjectReport    Operation = "generate_project_report"
)

const (
	// MaxCompanyNameLength は企業名の最大文字数（rune数）です。
	MaxCompanyNameLength = 100
	// MaxTextLength は自由入力パラメータの最大文字数（rune数）です。
	MaxTextLength = 4000
)

// rawOnly はすべてのプロンプトの末尾に付ける出力指示です。
const rawOnly = "Do NOT wrap the output in markdown code fences and do NOT add any commentary before or after it."

// optionShape は選択肢オブジェクトの形式です。
const optionShape = `{ "label": "Option text", "icon": "material_icon_name" }`

// Params は操作ごとの型付きパラメータです。
type Params interface {
	Operation() Operation
	validate() error
	render() string
}

// Build はパラメータを検証してプロンプト文字列を返します。
// 検証エラーはdomain.ErrValidationをラップします。
func Build(p Params) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: params are required", domain.ErrValidation)
	}
	if err := p.validate(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrValidation, p.Operation(), err)
	}
	return p.render(), nil
}

// AnalyzeCompanyParams は企業分析のパラメータです。
type AnalyzeCompanyParams struct {
	CompanyName string
}

func (AnalyzeCompanyParams) Operation() Operation { return OpAnalyzeCompany }

func (p AnalyzeCompanyParams) validate() error {
	return requireName("companyName", p.CompanyName)
}

func (p AnalyzeCompanyParams) render() string {
	var b strings.Builder
	b.WriteString("You are a concise business analyst. Analyze the company provided.\n")
	fmt.Fprintf(&b, "Company Name: \"%s\"\n", p.CompanyName)
	b.WriteString("Use up-to-date public information about the company.\n")
	b.WriteString("Provide your analysis as a single valid JSON object. The JSON object must have the following structure and nothing else:\n")
	b.WriteString(`{
  "category": "The primary industry or category the company operates in.",
  "domain": "The main website domain of the company.",
  "summary": "A brief one or two-sentence summary of what the company does.",
  "competitors": ["A list of 3-5 main competitors."]
}` + "\n")
	b.WriteString(rawOnly)
	return b.String()
}

// InitialQuestionsParams はアンケート初期質問生成のパラメータです。
type InitialQuestionsParams struct {
	CompanyName     string
	ResearchGoal    string
	CompanyAnalysis *entity.CompanyAnalysis
}

func (InitialQuestionsParams) Operation() Operation { return OpGenerateInitialQuestions }

func (p InitialQuestionsParams) validate() error {
	if err := requireName("companyName", p.CompanyName); err != nil {
		return err
	}
	if err := requireText("researchGoal", p.ResearchGoal); err != nil {
		return err
	}
	if p.CompanyAnalysis == nil || p.CompanyAnalysis.IsZero() {
		return fmt.Errorf("companyAnalysis is required")
	}
	return nil
}

func (p InitialQuestionsParams) render() string {
	var b strings.Builder
	b.WriteString("You are a world-class user researcher. Your task is to generate a structured questionnaire.\n")
	b.WriteString("Use the following context to create highly relevant questions:\n")
	fmt.Fprintf(&b, "- Company Name: \"%s\"\n", p.CompanyName)
	fmt.Fprintf(&b, "- Company Details: %s\n", compactJSON(p.CompanyAnalysis))
	fmt.Fprintf(&b, "- Primary Research Goal: \"%s\"\n", p.ResearchGoal)
	b.WriteString("Based on ALL the context above, generate a diverse questionnaire with 5-7 questions (a mix of 'open-text', 'multiple-choice', and 'rating-scale' from 1 to 5).\n")
	b.WriteString("Each question must be short, clear, and concise (ideally under 15 words). Do not include extra context, explanations, or multi-part questions.\n")
	b.WriteString("For each option, provide a relevant Material icon name (e.g., 'attach_money', 'store', 'star') in an 'icon' field that matches the meaning of the option.\n")
	b.WriteString("IMPORTANT: Your response MUST be a valid JSON array of objects, and NOTHING else.\n")
	b.WriteString("Each object in the array must have this exact structure:\n")
	b.WriteString(`{
  "id": "A unique string identifier",
  "text": "The full question text",
  "type": "one of 'open-text', 'multiple-choice', or 'rating-scale'",
  "options": [ ` + optionShape + ` ]
}` + "\n")
	b.WriteString("- For 'multiple-choice' questions, you MUST populate 'options' with 3-5 relevant and distinct choices, each with an appropriate icon.\n")
	fmt.Fprintf(&b, "- For 'rating-scale', populate 'options' with exactly %s.\n", compactJSON(entity.RatingScaleOptions()))
	b.WriteString("- For 'open-text', 'options' MUST be an empty array [].\n")
	b.WriteString(rawOnly)
	return b.String()
}

// MCOptionsParams は選択肢生成のパラメータです。
type MCOptionsParams struct {
	QuestionText string
	ResearchGoal string
}

func (MCOptionsParams) Operation() Operation { return OpGenerateMCOptions }

func (p MCOptionsParams) validate() error {
	if err := requireText("questionText", p.QuestionText); err != nil {
		return err
	}
	return requireText("researchGoal", p.ResearchGoal)
}

func (p MCOptionsParams) render() string {
	var b strings.Builder
	b.WriteString("You are a user research expert. Based on the provided research goal and a specific question, generate 3 to 5 relevant and distinct multiple-choice options.\n")
	fmt.Fprintf(&b, "- Research Goal: \"%s\"\n", p.ResearchGoal)
	fmt.Fprintf(&b, "- Question: \"%s\"\n", p.QuestionText)
	b.WriteString("IMPORTANT: Your response MUST be a valid JSON array of objects, and NOTHING else.\n")
	b.WriteString("Each object must have this structure: " + optionShape + ". The icon must be a relevant Material icon name (e.g., 'check_box', 'store').\n")
	b.WriteString(`Example response: [ { "label": "Option A", "icon": "check_box" }, { "label": "Option B", "icon": "store" }, { "label": "Option C", "icon": "schedule" } ]` + "\n")
	b.WriteString(rawOnly)
	return b.String()
}

// FollowUpParams は深掘り質問生成のパラメータです。
type FollowUpParams struct {
	OriginalQuestion string
	UserAnswer       string
	Language         string
}

func (FollowUpParams) Operation() Operation { return OpGenerateFollowUp }

func (p FollowUpParams) validate() error {
	if err := requireText("originalQuestion", p.OriginalQuestion); err != nil {
		return err
	}
	if err := requireText("userAnswer", p.UserAnswer); err != nil {
		return err
	}
	return requireName("language", p.Language)
}

func (p FollowUpParams) render() string {
	var b strings.Builder
	b.WriteString("You are a world-class user researcher. Given the following question and user answer, generate a single, concise follow-up question (under 15 words) and 2-4 relevant options (each with a Material icon name).\n\n")
	fmt.Fprintf(&b, "Original Question: \"%s\"\n", p.OriginalQuestion)
	fmt.Fprintf(&b, "User Answer: \"%s\"\n", p.UserAnswer)
	fmt.Fprintf(&b, "Language: %s\n\n", p.Language)
	b.WriteString("Write the follow-up question and the option labels in that language.\n")
	b.WriteString("Respond with a single valid JSON object with this exact structure and nothing else:\n")
	b.WriteString(`{
  "followUp": "The follow-up question text",
  "options": [ ` + optionShape + ` ]
}` + "\n")
	b.WriteString(rawOnly)
	return b.String()
}

// ProjectReportParams はリサーチレポート生成のパラメータです。
// Responsesは回答をそのままJSONで保持します。
type ProjectReportParams struct {
	Responses    []json.RawMessage
	ResearchGoal string
}

func (ProjectReportParams) Operation() Operation { return OpGenerateProjectReport }

func (p ProjectReportParams) validate() error {
	if len(p.Responses) == 0 {
		return fmt.Errorf("responses are required")
	}
	for i, r := range p.Responses {
		if !json.Valid(r) {
			return fmt.Errorf("responses[%d] is not valid JSON", i)
		}
	}
	return requireText("researchGoal", p.ResearchGoal)
}

func (p ProjectReportParams) render() string {
	var b strings.Builder
	b.WriteString("You are a world-class research analyst. Given the following research goal and a set of interview responses, generate a detailed research report.\n\n")
	fmt.Fprintf(&b, "Research Goal: \"%s\"\n\n", p.ResearchGoal)
	fmt.Fprintf(&b, "Responses: %s\n\n", compactJSON(p.Responses))
	b.WriteString("Your report must be a single valid JSON object with this exact structure and nothing else:\n")
	b.WriteString(`{
  "title": string,
  "executiveSummary": string,
  "keyThemes": [ { "theme": string, "percentage": number between 0 and 100, "description": string } ],
  "detailedAnalysis": string,
  "actionableInsights": string[],
  "notableQuotes": [ { "quote": string, "context"?: string } ]
}` + "\n")
	b.WriteString(rawOnly)
	return b.String()
}

func requireName(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(v) > MaxCompanyNameLength {
		return fmt.Errorf("%s exceeds maximum length of %d characters", field, MaxCompanyNameLength)
	}
	return nil
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(v) > MaxTextLength {
		return fmt.Errorf("%s exceeds maximum length of %d characters", field, MaxTextLength)
	}
	return nil
}

// compactJSON は値をコンパクトなJSONに変換します。入力は検証済みの型に限ります。
func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
