package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"logo_finder/internal/feature/logofinder/domain/entity"
)

// PageRenderer はURLからレンダリング済みDOMスナップショットを取得する
// リポジトリインターフェースです。ヘッドレスブラウザの実装を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PageRenderer interface {
	// Render はURLのページをレンダリングし、画像要素のスナップショットを返します。
	Render(ctx context.Context, url string) (*entity.RenderedPage, error)
}

// SiteUsecase は1サイトのロゴ探索（レンダリング→スキャン→ランク付け→検証）を
// オーケストレーションします。
type SiteUsecase struct {
	renderer  PageRenderer
	scanner   *CandidateScanner
	ranker    *CandidateRanker
	validator *LogoValidator
}

// NewSiteUsecase はSiteUsecaseの新しいインスタンスを生成します。
func NewSiteUsecase(renderer PageRenderer, scanner *CandidateScanner, ranker *CandidateRanker, validator *LogoValidator) *SiteUsecase {
	return &SiteUsecase{renderer: renderer, scanner: scanner, ranker: ranker, validator: validator}
}

// ProcessSite は1サイトを処理し、必ず1件のSiteResultを返します。
// レンダリング・検証のいかなる失敗もresult.Errorに記録され、
// 呼び出し元にエラーとして伝播することはありません。
func (u *SiteUsecase) ProcessSite(ctx context.Context, site entity.Site) entity.SiteResult {
	result := entity.SiteResult{
		URL:         site.URL,
		WebsiteName: site.Name,
		Timestamp:   time.Now(),
	}

	page, err := u.renderer.Render(ctx, NormalizeURL(site.URL))
	if err != nil {
		result.Error = err.Error()
		return result
	}

	candidates := u.scanner.Scan(*page)
	result.CandidatesFound = len(candidates)
	if len(candidates) == 0 {
		// 候補ゼロはエラーではなく、正当な「見つからなかった」状態
		result.LogoReasoning = "no logo candidates found"
		return result
	}

	ranked := u.ranker.Rank(candidates)
	slog.Info("ロゴ候補を検証", "url", site.URL, "candidates", len(ranked))

	outcome, err := u.validator.ValidateSite(ctx, ranked, site.URL, site.Name)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if outcome.Accepted == nil {
		result.LogoReasoning = "no suitable logo found among candidates"
		return result
	}

	result.LogoFound = true
	result.LogoURL = outcome.Accepted.ImageSource
	result.LogoConfidence = outcome.Verdict.Confidence
	result.LogoReasoning = outcome.Verdict.Reasoning
	result.LogoType = outcome.Verdict.LogoType
	result.HasBusinessName = outcome.Verdict.HasBusinessName
	result.LogoQuality = outcome.Verdict.Quality
	return result
}

// NormalizeURL はスキームを持たないURLにhttpsを補います。
func NormalizeURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}
