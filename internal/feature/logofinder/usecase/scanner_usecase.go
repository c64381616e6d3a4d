package usecase

import (
	"strings"

	"logo_finder/internal/feature/logofinder/domain/entity"
)

// CandidateScanner はレンダリング済みページからロゴ候補を抽出します。
// 純粋なルール適用のみを行い、失敗しません。候補ゼロは正常な終端状態です。
type CandidateScanner struct {
	cfg Config
}

// NewCandidateScanner はCandidateScannerの新しいインスタンスを生成します。
func NewCandidateScanner(cfg Config) *CandidateScanner {
	return &CandidateScanner{cfg: cfg}
}

// Scan は固定ルールを順に適用して画像要素からロゴ候補を抽出します。
// 同一srcの重複要素は1候補にマージ（ヒント集合の和）され、
// 最小サイズを下回る要素は決してランカーに到達しません。
func (s *CandidateScanner) Scan(page entity.RenderedPage) []entity.LogoCandidate {
	var order []string
	merged := map[string]*entity.LogoCandidate{}

	for _, img := range page.Images {
		if img.Src == "" {
			continue
		}
		// 最小サイズフィルター: ロゴになり得ない小画像を除外
		if img.Position.Width < s.cfg.MinWidth || img.Position.Height < s.cfg.MinHeight {
			continue
		}

		hints := s.matchTokens(img)
		structural := img.InHeader || img.InNav || img.InBrand
		topBand := img.Position.Y < s.cfg.TopBand

		// 字句・構造・位置のいずれのルールにも掛からない画像は候補にしない
		if len(hints) == 0 && !structural && !topBand {
			continue
		}

		if existing, ok := merged[img.Src]; ok {
			// 重複srcはヒント集合の和を取り、最初の出現位置を保持する
			for h := range hints {
				existing.ClassHints[h] = struct{}{}
			}
			continue
		}

		c := &entity.LogoCandidate{
			ImageSource: img.Src,
			AltText:     img.Alt,
			ClassHints:  hints,
			Position:    img.Position,
			Containment: classifyContainment(img),
			Width:       img.Position.Width,
			Height:      img.Position.Height,
		}
		merged[img.Src] = c
		order = append(order, img.Src)
	}

	out := make([]entity.LogoCandidate, 0, len(order))
	for _, src := range order {
		out = append(out, *merged[src])
	}
	return out
}

// matchTokens はalt・class・id・srcに含まれるロゴ示唆トークンの集合を返します。
func (s *CandidateScanner) matchTokens(img entity.ImageElement) map[string]struct{} {
	text := strings.ToLower(img.Alt + " " + img.Class + " " + img.ID + " " + img.Src)
	hints := map[string]struct{}{}
	for _, token := range s.cfg.LexicalTokens {
		if strings.Contains(text, token) {
			hints[token] = struct{}{}
		}
	}
	return hints
}

// classifyContainment は画像の包含ヒントを分類します。
// ヘッダーが最も具体的な分類として優先されます。
func classifyContainment(img entity.ImageElement) entity.Containment {
	switch {
	case img.InHeader:
		return entity.ContainmentHeader
	case img.InNav:
		return entity.ContainmentNav
	case img.InBrand:
		return entity.ContainmentBrand
	default:
		return entity.ContainmentOther
	}
}
