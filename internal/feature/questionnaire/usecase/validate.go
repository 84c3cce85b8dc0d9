package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"foresight_backend/internal/feature/questionnaire/domain/entity"
)

// 生成結果の件数制約です。
const (
	MinQuestions       = 5
	MaxQuestions       = 7
	MinChoiceOptions   = 3
	MaxChoiceOptions   = 5
	MinFollowUpOptions = 2
	MaxFollowUpOptions = 4
	MinCompetitors     = 3
	MaxCompetitors     = 5
	RatingScaleSize    = 5
)

func validateAnalysis(a *entity.CompanyAnalysis) error {
	switch {
	case strings.TrimSpace(a.Category) == "":
		return fmt.Errorf("category is empty")
	case strings.TrimSpace(a.Domain) == "":
		return fmt.Errorf("domain is empty")
	case strings.TrimSpace(a.Summary) == "":
		return fmt.Errorf("summary is empty")
	}
	if n := len(a.Competitors); n < MinCompetitors || n > MaxCompetitors {
		return fmt.Errorf("competitors: got %d, want %d-%d", n, MinCompetitors, MaxCompetitors)
	}
	for i, c := range a.Competitors {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("competitors[%d] is empty", i)
		}
	}
	return nil
}

// validateQuestions は質問一覧を検証します。
// IDが空の質問にはUUIDを割り当て、optionsがnullの場合は空配列に揃えます。
func validateQuestions(qs []entity.Question) error {
	if n := len(qs); n < MinQuestions || n > MaxQuestions {
		return fmt.Errorf("questions: got %d, want %d-%d", n, MinQuestions, MaxQuestions)
	}

	seen := make(map[string]struct{}, len(qs))
	for i := range qs {
		q := &qs[i]
		if strings.TrimSpace(q.ID) == "" {
			q.ID = uuid.NewString()
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("questions[%d]: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = struct{}{}

		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("questions[%d]: text is empty", i)
		}
		if q.Options == nil {
			q.Options = []entity.Option{}
		}
		if err := validateQuestionOptions(q); err != nil {
			return fmt.Errorf("questions[%d] (%s): %w", i, q.Type, err)
		}
	}
	return nil
}

func validateQuestionOptions(q *entity.Question) error {
	switch q.Type {
	case entity.QuestionTypeOpenText:
		if len(q.Options) != 0 {
			return fmt.Errorf("open-text question must have no options, got %d", len(q.Options))
		}
		return nil
	case entity.QuestionTypeMultipleChoice:
		return validateOptions(q.Options, MinChoiceOptions, MaxChoiceOptions)
	case entity.QuestionTypeRatingScale:
		return validateRatingScale(q.Options)
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
}

// validateRatingScale は評価スケールが "1"〜"5" の順で、1〜4が同一アイコン、5が別アイコンであることを検証します。
func validateRatingScale(opts []entity.Option) error {
	if len(opts) != RatingScaleSize {
		return fmt.Errorf("rating scale must have exactly %d options, got %d", RatingScaleSize, len(opts))
	}
	for i, o := range opts {
		if want := strconv.Itoa(i + 1); o.Label != want {
			return fmt.Errorf("rating option %d: label %q, want %q", i, o.Label, want)
		}
		if strings.TrimSpace(o.Icon) == "" {
			return fmt.Errorf("rating option %d: icon is empty", i)
		}
	}
	base := opts[0].Icon
	for i := 1; i < RatingScaleSize-1; i++ {
		if opts[i].Icon != base {
			return fmt.Errorf("rating option %d: icon %q differs from %q", i, opts[i].Icon, base)
		}
	}
	if opts[RatingScaleSize-1].Icon == base {
		return fmt.Errorf("rating option %d: icon must differ from %q", RatingScaleSize-1, base)
	}
	return nil
}

func validateOptions(opts []entity.Option, minN, maxN int) error {
	if n := len(opts); n < minN || n > maxN {
		return fmt.Errorf("options: got %d, want %d-%d", n, minN, maxN)
	}
	for i, o := range opts {
		if strings.TrimSpace(o.Label) == "" {
			return fmt.Errorf("options[%d]: label is empty", i)
		}
		if strings.TrimSpace(o.Icon) == "" {
			return fmt.Errorf("options[%d]: icon is empty", i)
		}
	}
	return nil
}

func validateFollowUp(f *entity.FollowUp) error {
	if strings.TrimSpace(f.FollowUp) == "" {
		return fmt.Errorf("followUp is empty")
	}
	return validateOptions(f.Options, MinFollowUpOptions, MaxFollowUpOptions)
}

func validateReport(r *entity.Report) error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return fmt.Errorf("title is empty")
	case strings.TrimSpace(r.ExecutiveSummary) == "":
		return fmt.Errorf("executiveSummary is empty")
	case strings.TrimSpace(r.DetailedAnalysis) == "":
		return fmt.Errorf("detailedAnalysis is empty")
	}
	for i, th := range r.KeyThemes {
		if strings.TrimSpace(th.Theme) == "" {
			return fmt.Errorf("keyThemes[%d]: theme is empty", i)
		}
		if th.Percentage < 0 || th.Percentage > 100 {
			return fmt.Errorf("keyThemes[%d]: percentage %v out of range 0-100", i, th.Percentage)
		}
	}
	for i, q := range r.NotableQuotes {
		if strings.TrimSpace(q.Quote) == "" {
			return fmt.Errorf("notableQuotes[%d]: quote is empty", i)
		}
	}
	if r.KeyThemes == nil {
		r.KeyThemes = []entity.KeyTheme{}
	}
	if r.ActionableInsights == nil {
		r.ActionableInsights = []string{}
	}
	if r.NotableQuotes == nil {
		r.NotableQuotes = []entity.Quote{}
	}
	return nil
}
