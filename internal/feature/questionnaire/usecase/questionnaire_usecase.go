// Package usecase はquestionnaireフィーチャーの生成操作を実装します。
//
// 各操作は プロンプト組み立て → モデル呼び出し → JSON抽出 → 形式検証 の順に処理し、
// 失敗はdomain.ErrValidation / domain.ErrUpstream / domain.ErrMalformedOutputのいずれかに分類します。
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"foresight_backend/internal/feature/questionnaire/domain"
	"foresight_backend/internal/feature/questionnaire/domain/entity"
	"foresight_backend/internal/feature/questionnaire/extract"
	"foresight_backend/internal/feature/questionnaire/prompt"
)

// TextGenerator は生成モデルを呼び出して生の応答テキストを返すインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextGenerator interface {
	// Generate はプロンプトをモデルに送り、応答テキストを解釈せずに返します。
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnalysisCache は企業分析結果のキャッシュです。キャッシュの失敗は呼び出し元に伝播しません。
type AnalysisCache interface {
	Get(ctx context.Context, companyName string) (*entity.CompanyAnalysis, bool)
	Set(ctx context.Context, companyName string, analysis *entity.CompanyAnalysis)
}

// questionnaireUsecase は5つの生成操作を提供します。
type questionnaireUsecase struct {
	generator TextGenerator
	extractor *extract.Extractor
	cache     AnalysisCache
}

// NewQuestionnaireUsecase はquestionnaireUsecaseの新しいインスタンスを生成します。
// cacheはnilでも構いません。
func NewQuestionnaireUsecase(g TextGenerator, ex *extract.Extractor, cache AnalysisCache) *questionnaireUsecase {
	if ex == nil {
		ex = extract.New(nil)
	}
	return &questionnaireUsecase{generator: g, extractor: ex, cache: cache}
}

// AnalyzeCompany は企業名から企業分析を生成します。
func (u *questionnaireUsecase) AnalyzeCompany(ctx context.Context, companyName string) (*entity.CompanyAnalysis, error) {
	companyName = strings.TrimSpace(companyName)
	p := prompt.AnalyzeCompanyParams{CompanyName: companyName}
	if u.cache != nil && companyName != "" {
		if cached, ok := u.cache.Get(ctx, companyName); ok {
			return cached, nil
		}
	}

	var out entity.CompanyAnalysis
	if err := u.run(ctx, p, extract.KindObject, &out); err != nil {
		return nil, err
	}
	if err := validateAnalysis(&out); err != nil {
		return nil, malformed(p.Operation(), err)
	}

	if u.cache != nil {
		u.cache.Set(ctx, companyName, &out)
	}
	return &out, nil
}

// GenerateInitialQuestions は企業情報と調査目的から5〜7問のアンケートを生成します。
func (u *questionnaireUsecase) GenerateInitialQuestions(ctx context.Context, companyName, researchGoal string, analysis *entity.CompanyAnalysis) ([]entity.Question, error) {
	p := prompt.InitialQuestionsParams{
		CompanyName:     companyName,
		ResearchGoal:    researchGoal,
		CompanyAnalysis: analysis,
	}

	var out []entity.Question
	if err := u.run(ctx, p, extract.KindArray, &out); err != nil {
		return nil, err
	}
	if err := validateQuestions(out); err != nil {
		return nil, malformed(p.Operation(), err)
	}
	return out, nil
}

// GenerateMultipleChoiceOptions は質問に対する3〜5件の選択肢を生成します。
func (u *questionnaireUsecase) GenerateMultipleChoiceOptions(ctx context.Context, questionText, researchGoal string) ([]entity.Option, error) {
	p := prompt.MCOptionsParams{QuestionText: questionText, ResearchGoal: researchGoal}

	var out []entity.Option
	if err := u.run(ctx, p, extract.KindArray, &out); err != nil {
		return nil, err
	}
	if err := validateOptions(out, MinChoiceOptions, MaxChoiceOptions); err != nil {
		return nil, malformed(p.Operation(), err)
	}
	return out, nil
}

// GenerateFollowUpQuestion は回答を受けて深掘り質問と2〜4件の選択肢を生成します。
func (u *questionnaireUsecase) GenerateFollowUpQuestion(ctx context.Context, originalQuestion, userAnswer, language string) (*entity.FollowUp, error) {
	p := prompt.FollowUpParams{
		OriginalQuestion: originalQuestion,
		UserAnswer:       userAnswer,
		Language:         language,
	}

	var out entity.FollowUp
	if err := u.run(ctx, p, extract.KindObject, &out); err != nil {
		return nil, err
	}
	if err := validateFollowUp(&out); err != nil {
		return nil, malformed(p.Operation(), err)
	}
	return &out, nil
}

// GenerateProjectReport は回答一覧からリサーチレポートを生成します。
func (u *questionnaireUsecase) GenerateProjectReport(ctx context.Context, responses []json.RawMessage, researchGoal string) (*entity.Report, error) {
	p := prompt.ProjectReportParams{Responses: responses, ResearchGoal: researchGoal}

	var out entity.Report
	if err := u.run(ctx, p, extract.KindObject, &out); err != nil {
		return nil, err
	}
	if err := validateReport(&out); err != nil {
		return nil, malformed(p.Operation(), err)
	}
	return &out, nil
}

// run はプロンプトを組み立ててモデルを呼び出し、期待する種類のJSONをdstにデコードします。
func (u *questionnaireUsecase) run(ctx context.Context, p prompt.Params, kind extract.Kind, dst any) error {
	text, err := prompt.Build(p)
	if err != nil {
		return err
	}

	raw, err := u.generator.Generate(ctx, text)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrUpstream, p.Operation(), err)
	}

	if err := u.extractor.Decode(raw, kind, dst); err != nil {
		slog.Warn("モデル出力からJSONを抽出できませんでした",
			"operation", p.Operation(), "error", err, "response_length", len(raw))
		return malformed(p.Operation(), err)
	}
	return nil
}

func malformed(op prompt.Operation, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrMalformedOutput, op, err)
}
