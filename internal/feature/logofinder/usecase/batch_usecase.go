package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"logo_finder/internal/feature/logofinder/domain/entity"
	"logo_finder/internal/shared/ratelimiter"
)

// ResultWriter は累積結果をチェックポイントとして永続化する
// リポジトリインターフェースです。呼び出しごとに「これまでに完了した
// 全サイト」で上書きします。
type ResultWriter interface {
	// Save は結果リスト全体を永続化します。
	Save(ctx context.Context, results []entity.SiteResult) error
}

// ResultRepository は確定したSiteResultを問い合わせ可能なストアに
// 永続化するリポジトリインターフェースです。
type ResultRepository interface {
	UpsertBatch(ctx context.Context, results []entity.SiteResult) error
	List(ctx context.Context) ([]entity.SiteResult, error)
}

// BatchUsecase はサイトリストを順に処理し、途中結果を定期的に
// チェックポイントへ永続化するユースケースです。
type BatchUsecase struct {
	site       *SiteUsecase
	checkpoint ResultWriter
	store      ResultRepository // 任意。nilならDB永続化をスキップ
	pacer      ratelimiter.RateLimiterInterface
	cfg        Config
}

// NewBatchUsecase は新しいBatchUsecaseを作成します。storeはnilでも構いません。
func NewBatchUsecase(site *SiteUsecase, checkpoint ResultWriter, store ResultRepository, pacer ratelimiter.RateLimiterInterface, cfg Config) *BatchUsecase {
	return &BatchUsecase{site: site, checkpoint: checkpoint, store: store, pacer: pacer, cfg: cfg}
}

// Run は全サイトを1件ずつリスト順に処理します。1サイトの失敗は
// そのサイトの結果のErrorに記録されるだけで、バッチ全体を止めません。
// checkpointEvery件完了するごとに累積結果を上書き保存するため、
// クラッシュで失われる作業は高々checkpointEvery-1サイト分です。
// チェックポイント書き込みの失敗だけは回復不能としてバッチを中断します。
func (b *BatchUsecase) Run(ctx context.Context, sites []entity.Site, checkpointEvery int) ([]entity.SiteResult, error) {
	if checkpointEvery <= 0 {
		checkpointEvery = b.cfg.CheckpointEvery
	}

	results := make([]entity.SiteResult, 0, len(sites))
	for i, site := range sites {
		if i > 0 {
			// 外部レートリミットを尊重するためのサイト間待機
			b.pacer.WaitIfNeeded()
		}
		slog.Info("サイトを処理", "url", site.URL, "progress", fmt.Sprintf("%d/%d", i+1, len(sites)))

		result := b.site.ProcessSite(ctx, site)
		if result.Error != "" {
			slog.Error("サイト処理に失敗", "url", site.URL, "error", result.Error)
		}
		results = append(results, result)

		if (i+1)%checkpointEvery == 0 {
			if err := b.persist(ctx, results); err != nil {
				// ストレージに書けない状態は続行しても無駄なので中断して表面化する
				return results, fmt.Errorf("checkpoint after %d sites: %w", i+1, err)
			}
			slog.Info("途中結果を保存", "completed", i+1)
		}
	}

	if err := b.persist(ctx, results); err != nil {
		return results, fmt.Errorf("final save: %w", err)
	}
	return results, nil
}

// persist はチェックポイントと（設定されていれば）結果ストアの両方に書き込みます。
func (b *BatchUsecase) persist(ctx context.Context, results []entity.SiteResult) error {
	if err := b.checkpoint.Save(ctx, results); err != nil {
		return err
	}
	if b.store != nil {
		if err := b.store.UpsertBatch(ctx, results); err != nil {
			// DBはチェックポイントと違い補助的な永続化なので、失敗しても続行する
			slog.Warn("結果ストアへの書き込みに失敗", "error", err)
		}
	}
	return nil
}

// Summarize は最終結果リストから実行サマリーを導出します。純粋な集計です。
func Summarize(results []entity.SiteResult) entity.RunSummary {
	summary := entity.RunSummary{
		Total:         len(results),
		QualityCounts: map[entity.Quality]int{},
	}
	for _, r := range results {
		if !r.LogoFound {
			continue
		}
		summary.Found++
		if r.LogoConfidence >= 90 {
			summary.HighConfidence++
		}
		if r.HasBusinessName {
			summary.WithBusinessName++
		}
		summary.QualityCounts[r.LogoQuality]++
	}
	return summary
}
