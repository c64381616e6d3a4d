// Package gemini はGoogle Gemini APIを使用したロゴ判定オラクルを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"logo_finder/internal/feature/logofinder/usecase"
	"logo_finder/internal/shared/ratelimiter"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiJudge はGoogle Gemini APIのマルチモーダル生成を使用して
// 画像がロゴかどうかの判定応答を生成します。
type GeminiJudge struct {
	client      *genai.Client
	model       string
	rateLimiter ratelimiter.RateLimiterInterface
}

// GeminiJudgeがLogoJudgeを実装していることをコンパイル時に検証します。
var _ usecase.LogoJudge = (*GeminiJudge)(nil)

// NewGeminiJudge はADCを使用してGeminiJudgeの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiJudge(ctx context.Context, rl ratelimiter.RateLimiterInterface) (*GeminiJudge, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiJudge{client: client, model: DefaultModel, rateLimiter: rl}, nil
}

// Judge は画像とプロンプトから判定応答テキストを生成します。
// 応答のJSON解釈は呼び出し側（usecase）の責務です。
func (g *GeminiJudge) Judge(ctx context.Context, imageData []byte, prompt string) (string, error) {
	g.rateLimiter.WaitIfNeeded()

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(imageData, "image/png"),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
