// Package imagefetch は候補画像をHTTPで取得するフェッチャーを提供します。
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"logo_finder/internal/feature/logofinder/usecase"
)

// userAgent は画像ホストにブロックされにくい一般的なブラウザのUAです。
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTTPFetcher はHTTP経由で画像バイト列を取得するImageFetcher実装です。
type HTTPFetcher struct {
	client  *http.Client
	maxSize int64
}

// HTTPFetcherがImageFetcherを実装していることをコンパイル時に検証します。
var _ usecase.ImageFetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher は指定されたHTTPクライアントと最大サイズで
// HTTPFetcherの新しいインスタンスを生成します。
func NewHTTPFetcher(client *http.Client, maxSize int64) *HTTPFetcher {
	return &HTTPFetcher{client: client, maxSize: maxSize}
}

// Fetch は画像URLからバイト列を取得します。
// オラクルAPIの上限を超えるサイズの画像はエラーになります。
func (f *HTTPFetcher) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("image fetch http %d", res.StatusCode)
	}

	// maxSize+1まで読み、超過を検出する
	data, err := io.ReadAll(io.LimitReader(res.Body, f.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("image exceeds maximum of %d bytes", f.maxSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image body is empty")
	}
	return data, nil
}
