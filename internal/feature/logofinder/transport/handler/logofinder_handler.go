// Package handler はlogofinderフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"logo_finder/internal/api"
	"logo_finder/internal/feature/logofinder/domain/entity"
	"logo_finder/internal/feature/logofinder/usecase"
)

// SiteProcessor は1サイトのロゴ探索ユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SiteProcessor interface {
	ProcessSite(ctx context.Context, site entity.Site) entity.SiteResult
}

// ResultStore は確定済み結果の永続化と一覧取得を定義します。
type ResultStore interface {
	UpsertBatch(ctx context.Context, results []entity.SiteResult) error
	List(ctx context.Context) ([]entity.SiteResult, error)
}

// LogoFinderHandler はロゴ探索のHTTPリクエストを処理します。
type LogoFinderHandler struct {
	site  SiteProcessor
	store ResultStore
}

// NewLogoFinderHandler はLogoFinderHandlerの新しいインスタンスを生成します。
func NewLogoFinderHandler(site SiteProcessor, store ResultStore) *LogoFinderHandler {
	return &LogoFinderHandler{site: site, store: store}
}

// FindLogo は単一サイトのロゴ探索を実行します。
//
// エンドポイント: POST /v1/logo/find
// ボディ: {"url": "...", "name": "..."}
func (h *LogoFinderHandler) FindLogo(c *gin.Context) {
	var req api.FindLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("リクエストのバインドに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "url is required"})
		return
	}

	result := h.site.ProcessSite(c.Request.Context(), entity.Site{URL: req.URL, Name: req.Name})

	// 結果ストアへの保存はベストエフォート。応答には影響させない。
	if err := h.store.UpsertBatch(c.Request.Context(), []entity.SiteResult{result}); err != nil {
		slog.Warn("結果の保存に失敗", "url", req.URL, "error", err)
	}

	c.JSON(http.StatusOK, toResponse(result))
}

// ListResults は保存済みの全結果を返します。
//
// エンドポイント: GET /v1/logo/results
func (h *LogoFinderHandler) ListResults(c *gin.Context) {
	results, err := h.store.List(c.Request.Context())
	if err != nil {
		slog.Error("結果一覧の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list results"})
		return
	}

	out := make([]api.SiteResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

// Summary は保存済み結果の集計を返します。
//
// エンドポイント: GET /v1/logo/summary
func (h *LogoFinderHandler) Summary(c *gin.Context) {
	results, err := h.store.List(c.Request.Context())
	if err != nil {
		slog.Error("結果一覧の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list results"})
		return
	}

	s := usecase.Summarize(results)
	quality := make(map[string]int, len(s.QualityCounts))
	for q, n := range s.QualityCounts {
		quality[string(q)] = n
	}
	c.JSON(http.StatusOK, api.SummaryResponse{
		Total:            s.Total,
		Found:            s.Found,
		HighConfidence:   s.HighConfidence,
		WithBusinessName: s.WithBusinessName,
		QualityCounts:    quality,
	})
}

func toResponse(r entity.SiteResult) api.SiteResultResponse {
	return api.SiteResultResponse{
		URL:             r.URL,
		WebsiteName:     r.WebsiteName,
		LogoFound:       r.LogoFound,
		LogoURL:         r.LogoURL,
		LogoConfidence:  r.LogoConfidence,
		LogoReasoning:   r.LogoReasoning,
		LogoType:        string(r.LogoType),
		HasBusinessName: r.HasBusinessName,
		LogoQuality:     string(r.LogoQuality),
		CandidatesFound: r.CandidatesFound,
		Error:           r.Error,
		Timestamp:       r.Timestamp,
	}
}
