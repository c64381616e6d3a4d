// Package vision はGoogle Cloud Vision APIを使用したロゴ判定オラクルを提供します。
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"logo_finder/internal/feature/logofinder/domain/entity"
	"logo_finder/internal/feature/logofinder/usecase"
)

// VisionJudge はCloud VisionのLOGO_DETECTIONを使用してロゴを判定します。
// マルチモーダルLLMの代替オラクルとして、アノテーション結果を
// usecaseが期待するJSON形式の判定に合成します。
type VisionJudge struct {
	client *gvision.ImageAnnotatorClient
}

// VisionJudgeがLogoJudgeを実装していることをコンパイル時に検証します。
var _ usecase.LogoJudge = (*VisionJudge)(nil)

// NewVisionJudge はADCを使用してVisionJudgeの新しいインスタンスを生成します。
func NewVisionJudge(ctx context.Context) (*VisionJudge, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionJudge{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionJudge) Close() error {
	return v.client.Close()
}

// Judge は画像のロゴアノテーションを取得し、判定JSONを合成して返します。
// promptは事業者名のヒント抽出にのみ使用します。
func (v *VisionJudge) Judge(ctx context.Context, imageData []byte, prompt string) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LOGO_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return marshalVerdict(noLogoVerdict()), nil
	}
	if resp.Responses[0].Error != nil {
		return "", fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	annotations := resp.Responses[0].LogoAnnotations
	if len(annotations) == 0 {
		return marshalVerdict(noLogoVerdict()), nil
	}

	best := annotations[0]
	for _, a := range annotations[1:] {
		if a.Score > best.Score {
			best = a
		}
	}

	verdict := entity.ValidationVerdict{
		IsLogo:          true,
		Confidence:      int(best.Score * 100),
		Reasoning:       fmt.Sprintf("logo detection matched %q", best.Description),
		LogoType:        entity.LogoTypeOther,
		HasBusinessName: containsNameHint(prompt, best.Description),
		Quality:         qualityFromScore(best.Score),
	}
	return marshalVerdict(verdict), nil
}

func noLogoVerdict() entity.ValidationVerdict {
	return entity.ValidationVerdict{
		IsLogo:    false,
		Reasoning: "no logo annotations detected",
		LogoType:  entity.LogoTypeOther,
		Quality:   entity.QualityLow,
	}
}

func marshalVerdict(v entity.ValidationVerdict) string {
	b, err := json.Marshal(v)
	if err != nil {
		// ValidationVerdictは常にマーシャル可能
		return `{"is_logo": false, "confidence": 0}`
	}
	return string(b)
}

// containsNameHint は検出されたロゴ名がプロンプト内のヒントに現れるかを返します。
func containsNameHint(prompt, description string) bool {
	if description == "" {
		return false
	}
	return strings.Contains(strings.ToLower(prompt), strings.ToLower(description))
}

func qualityFromScore(score float32) entity.Quality {
	switch {
	case score >= 0.8:
		return entity.QualityHigh
	case score >= 0.5:
		return entity.QualityMedium
	default:
		return entity.QualityLow
	}
}
