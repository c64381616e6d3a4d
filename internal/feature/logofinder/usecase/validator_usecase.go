package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"logo_finder/internal/feature/logofinder/domain/entity"
	"logo_finder/internal/shared/ratelimiter"
)

// ErrAllOracleCallsFailed は検証対象の全候補でオラクル呼び出しが
// 失敗したことを表します。「探したが見つからなかった」と
// 「そもそも探せなかった」を区別するためのセンチネルエラーです。
var ErrAllOracleCallsFailed = errors.New("all oracle calls failed")

// verdictPromptTemplate はオラクルにJSON形式の判定を要求するプロンプトです。
const verdictPromptTemplate = `Please analyze this image and determine if it is the logo for the website: %s

Website/Business name hint: %s

Consider the following criteria:
1. Does this appear to be a logo or brand mark?
2. Does it contain text, symbols, or graphics that would identify a business?
3. Is it professionally designed and suitable as a brand identifier?
4. Does it appear to be the main logo (not a social media icon, advertisement, or decoration)?
5. Is the image quality and resolution appropriate for a logo?

Respond with a JSON object containing:
- "is_logo": boolean (true if this is likely the website's logo)
- "confidence": integer from 0-100 (how confident you are)
- "reasoning": string (1-2 sentences explaining your decision)
- "logo_type": string ("text", "symbol", "combination", "wordmark", or "other")
- "has_business_name": boolean (does the logo contain readable business name)
- "quality": string ("high", "medium", "low") based on image quality and professionalism`

// ImageFetcher は候補画像のバイト列を取得するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ImageFetcher interface {
	// Fetch は画像URLからバイト列を取得します。
	Fetch(ctx context.Context, imageURL string) ([]byte, error)
}

// LogoJudge は画像がロゴかどうかを判定する外部ビジョンオラクルの
// インターフェースです。応答は生テキストで、形式の解釈はusecase側で行います。
type LogoJudge interface {
	// Judge は画像とプロンプトから判定応答テキストを生成します。
	Judge(ctx context.Context, imageData []byte, prompt string) (string, error)
}

// ValidationOutcome はランク済み候補リストに対する検証の結果です。
type ValidationOutcome struct {
	Accepted  *entity.ScoredCandidate   // 受理された候補（なければnil）
	Verdict   *entity.ValidationVerdict // 受理候補に対する判定（なければnil）
	Attempted int                       // 実際に試行した候補数
}

// LogoValidator はランク済み候補を順に外部オラクルで検証します。
type LogoValidator struct {
	fetcher ImageFetcher
	judge   LogoJudge
	pacer   ratelimiter.RateLimiterInterface
	cfg     Config
}

// NewLogoValidator はLogoValidatorの新しいインスタンスを生成します。
func NewLogoValidator(fetcher ImageFetcher, judge LogoJudge, pacer ratelimiter.RateLimiterInterface, cfg Config) *LogoValidator {
	return &LogoValidator{fetcher: fetcher, judge: judge, pacer: pacer, cfg: cfg}
}

// ValidateSite はスコア降順の候補を上限数まで順に検証します。
// 画像取得の失敗は候補単位でスキップし、不正形式の応答は拒否として扱います。
// オラクルが is_logo かつ信頼度がしきい値以上と判定した最初の候補で
// 反復を打ち切ります（「最良」ではなく「最初の十分良い」候補の採用）。
// 到達した全オラクル呼び出しが失敗した場合のみエラーを返します。
func (v *LogoValidator) ValidateSite(ctx context.Context, ranked []entity.ScoredCandidate, siteURL, nameHint string) (*ValidationOutcome, error) {
	outcome := &ValidationOutcome{}
	prompt := fmt.Sprintf(verdictPromptTemplate, siteURL, nameHint)

	judged := 0
	judgeFailures := 0

	for i := range ranked {
		if outcome.Attempted >= v.cfg.MaxAttempts {
			break
		}
		candidate := &ranked[i]
		outcome.Attempted++

		if outcome.Attempted > 1 {
			v.pacer.WaitIfNeeded()
		}

		imageData, err := v.fetcher.Fetch(ctx, candidate.ImageSource)
		if err != nil {
			// 画像取得の失敗は候補単位の問題。次の候補へ進む。
			slog.Warn("候補画像の取得に失敗", "url", candidate.ImageSource, "error", err)
			continue
		}

		raw, err := v.judge.Judge(ctx, imageData, prompt)
		judged++
		if err != nil {
			judgeFailures++
			slog.Warn("オラクル呼び出しに失敗", "url", candidate.ImageSource, "error", err)
			continue
		}

		verdict, err := ParseVerdict(raw)
		if err != nil {
			// 解釈できない応答は拒否として扱い、反復を続ける
			slog.Warn("オラクル応答の解釈に失敗", "url", candidate.ImageSource, "error", err)
			continue
		}

		if verdict.IsLogo && verdict.Confidence >= v.cfg.AcceptThreshold {
			outcome.Accepted = candidate
			outcome.Verdict = verdict
			return outcome, nil
		}
	}

	if judged > 0 && judgeFailures == judged {
		return outcome, ErrAllOracleCallsFailed
	}
	return outcome, nil
}

// ParseVerdict はオラクルの生応答をValidationVerdictに変換します。
// マークダウンのコードフェンスに包まれたJSONも受け付けます。
func ParseVerdict(raw string) (*entity.ValidationVerdict, error) {
	text := stripCodeFences(strings.TrimSpace(raw))

	var verdict entity.ValidationVerdict
	if err := json.Unmarshal([]byte(text), &verdict); err != nil {
		return nil, fmt.Errorf("verdict is not valid JSON: %w", err)
	}
	if verdict.Confidence < 0 || verdict.Confidence > 100 {
		return nil, fmt.Errorf("verdict confidence %d out of range", verdict.Confidence)
	}
	verdict.LogoType = normalizeLogoType(verdict.LogoType)
	verdict.Quality = normalizeQuality(verdict.Quality)
	return &verdict, nil
}

// stripCodeFences は```json ... ```または``` ... ```の包みを取り除きます。
func stripCodeFences(text string) string {
	for _, fence := range []string{"```json", "```"} {
		start := strings.Index(text, fence)
		if start < 0 {
			continue
		}
		rest := text[start+len(fence):]
		end := strings.Index(rest, "```")
		if end < 0 {
			continue
		}
		return strings.TrimSpace(rest[:end])
	}
	return text
}

func normalizeLogoType(t entity.LogoType) entity.LogoType {
	switch entity.LogoType(strings.ToLower(string(t))) {
	case entity.LogoTypeText, entity.LogoTypeSymbol, entity.LogoTypeCombination, entity.LogoTypeWordmark:
		return entity.LogoType(strings.ToLower(string(t)))
	default:
		return entity.LogoTypeOther
	}
}

func normalizeQuality(q entity.Quality) entity.Quality {
	switch entity.Quality(strings.ToLower(string(q))) {
	case entity.QualityHigh:
		return entity.QualityHigh
	case entity.QualityMedium:
		return entity.QualityMedium
	default:
		return entity.QualityLow
	}
}
