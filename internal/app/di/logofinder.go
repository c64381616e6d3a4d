// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"logo_finder/internal/feature/logofinder/adapters/chromedp"
	"logo_finder/internal/feature/logofinder/adapters/gemini"
	"logo_finder/internal/feature/logofinder/adapters/imagefetch"
	"logo_finder/internal/feature/logofinder/adapters/vision"
	"logo_finder/internal/feature/logofinder/usecase"
	"logo_finder/internal/platform/cache"
	infrahttp "logo_finder/internal/platform/http"
	"logo_finder/internal/shared/ratelimiter"
)

// oracleCallsPerMinute はオラクルAPIの1分あたりの呼び出し上限です。
const oracleCallsPerMinute = 30

// LoadConfig はデフォルト設定に環境変数の上書きを適用して返します。
func LoadConfig() usecase.Config {
	cfg := usecase.DefaultConfig()
	if v, err := strconv.Atoi(os.Getenv("LOGO_ACCEPT_THRESHOLD")); err == nil && v > 0 {
		cfg.AcceptThreshold = v
	}
	if v, err := strconv.Atoi(os.Getenv("LOGO_MAX_ATTEMPTS")); err == nil && v > 0 {
		cfg.MaxAttempts = v
	}
	if v, err := strconv.Atoi(os.Getenv("LOGO_CHECKPOINT_EVERY")); err == nil && v > 0 {
		cfg.CheckpointEvery = v
	}
	return cfg
}

// NewJudge は環境変数LOGO_ORACLEで選択されたロゴ判定オラクルを生成します。
// rdbが非nilの場合、Redisキャッシュでラップされます。
func NewJudge(ctx context.Context, rdb *redis.Client) (usecase.LogoJudge, error) {
	var (
		judge usecase.LogoJudge
		err   error
	)
	switch os.Getenv("LOGO_ORACLE") {
	case "vision":
		judge, err = vision.NewVisionJudge(ctx)
	case "", "gemini":
		rl := ratelimiter.NewRateLimiter(oracleCallsPerMinute, time.Minute)
		judge, err = gemini.NewGeminiJudge(ctx, rl)
	default:
		return nil, fmt.Errorf("unknown LOGO_ORACLE %q", os.Getenv("LOGO_ORACLE"))
	}
	if err != nil {
		return nil, err
	}

	if rdb != nil {
		judge = cache.NewCachingJudge(rdb, 0, judge, "verdicts")
	}
	return judge, nil
}

// NewSiteUsecase はレンダラー・スキャナー・ランカー・バリデーターを
// 組み立てた単一サイト処理ユースケースを生成します。
func NewSiteUsecase(ctx context.Context, cfg usecase.Config, rdb *redis.Client) (*usecase.SiteUsecase, *chromedp.Renderer, error) {
	judge, err := NewJudge(ctx, rdb)
	if err != nil {
		return nil, nil, err
	}

	renderer := chromedp.NewRenderer(ctx, cfg)
	fetcher := imagefetch.NewHTTPFetcher(infrahttp.NewHTTPClient(10*time.Second), cfg.MaxImageSize)
	validator := usecase.NewLogoValidator(fetcher, judge, ratelimiter.NewFixedDelay(cfg.OracleDelay), cfg)

	site := usecase.NewSiteUsecase(
		renderer,
		usecase.NewCandidateScanner(cfg),
		usecase.NewCandidateRanker(cfg),
		validator,
	)
	return site, renderer, nil
}
