// Package chromedp はヘッドレスChromeを使用したページレンダラーを提供します。
package chromedp

import (
	"context"
	"fmt"
	"time"

	cdp "github.com/chromedp/chromedp"

	"logo_finder/internal/feature/logofinder/domain/entity"
	"logo_finder/internal/feature/logofinder/usecase"
)

// settleDelay はナビゲーション後に動的コンテンツの描画を待つ時間です。
const settleDelay = 2 * time.Second

// collectImagesJS はページ上の全img要素の属性・位置・包含情報を収集します。
// img.srcはブラウザ側で絶対URLに解決済みです。
const collectImagesJS = `
Array.from(document.images).map(function (img) {
	var rect = img.getBoundingClientRect();
	return {
		src: img.src || "",
		alt: img.alt || "",
		class: (typeof img.className === "string" ? img.className : "") || "",
		id: img.id || "",
		x: rect.x + window.scrollX,
		y: rect.y + window.scrollY,
		width: rect.width,
		height: rect.height,
		inHeader: !!img.closest("header, .header"),
		inNav: !!img.closest("nav, .nav, .navbar"),
		inBrand: !!img.closest(".brand, .brand-logo, .site-logo, .company-logo, .logo, #logo, [class*='brand'], [class*='logo']")
	};
})`

// imageDTO はcollectImagesJSの1要素をデコードするための中間表現です。
type imageDTO struct {
	Src      string  `json:"src"`
	Alt      string  `json:"alt"`
	Class    string  `json:"class"`
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	InHeader bool    `json:"inHeader"`
	InNav    bool    `json:"inNav"`
	InBrand  bool    `json:"inBrand"`
}

// Renderer はヘッドレスChromeでページをレンダリングし、
// 画像要素のスナップショットを抽出します。
type Renderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	cfg         usecase.Config
}

// RendererがPageRendererを実装していることをコンパイル時に検証します。
var _ usecase.PageRenderer = (*Renderer)(nil)

// NewRenderer はヘッドレスChromeのアロケーターを起動し、Rendererを生成します。
// 使い終わったらCloseを呼んでください。
func NewRenderer(ctx context.Context, cfg usecase.Config) *Renderer {
	opts := append(cdp.DefaultExecAllocatorOptions[:],
		cdp.Flag("headless", true),
		cdp.Flag("disable-gpu", true),
		cdp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := cdp.NewExecAllocator(ctx, opts...)
	return &Renderer{allocCtx: allocCtx, allocCancel: allocCancel, cfg: cfg}
}

// Close はブラウザアロケーターを解放します。
func (r *Renderer) Close() {
	r.allocCancel()
}

// Render はページを開き、動的コンテンツの描画を待ってから
// 全画像要素のスナップショットを返します。
func (r *Renderer) Render(ctx context.Context, url string) (*entity.RenderedPage, error) {
	browserCtx, cancel := cdp.NewContext(r.allocCtx)
	defer cancel()

	timeoutCtx, timeoutCancel := context.WithTimeout(browserCtx, r.cfg.RenderTimeout)
	defer timeoutCancel()

	// chromedpのコンテキストはアロケーターから派生するため、
	// 呼び出し元のキャンセルはここで伝播させる
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var images []imageDTO
	err := cdp.Run(timeoutCtx,
		cdp.EmulateViewport(int64(r.cfg.ViewportWidth), int64(r.cfg.ViewportHeight)),
		cdp.Navigate(url),
		cdp.WaitReady("body", cdp.ByQuery),
		cdp.Sleep(settleDelay),
		cdp.Evaluate(collectImagesJS, &images),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", url, err)
	}

	page := &entity.RenderedPage{URL: url, Images: make([]entity.ImageElement, 0, len(images))}
	for _, img := range images {
		page.Images = append(page.Images, entity.ImageElement{
			Src:      img.Src,
			Alt:      img.Alt,
			Class:    img.Class,
			ID:       img.ID,
			Position: entity.Position{X: img.X, Y: img.Y, Width: img.Width, Height: img.Height},
			InHeader: img.InHeader,
			InNav:    img.InNav,
			InBrand:  img.InBrand,
		})
	}
	return page, nil
}
