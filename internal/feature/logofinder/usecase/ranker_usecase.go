package usecase

import (
	"sort"

	"logo_finder/internal/feature/logofinder/domain/entity"
)

// スコア基準名。ScoredCandidate.Breakdownのキーとして使われます。
const (
	CriterionPosition    = "position"
	CriterionContainment = "containment"
	CriterionSize        = "size"
	CriterionLexical     = "lexical"
)

// containmentBonus はヘッダー・ナビ・ブランドコンテナ内の候補を
// その他の場所より一定差で上位に押し上げるボーナスです。
const containmentBonus = 2.0

// CandidateRanker はロゴ候補にもっともらしさのスコアを付け、全順序を作ります。
// 入力リストのみに依存する決定的な純関数です。
type CandidateRanker struct {
	cfg Config
}

// NewCandidateRanker はCandidateRankerの新しいインスタンスを生成します。
func NewCandidateRanker(cfg Config) *CandidateRanker {
	return &CandidateRanker{cfg: cfg}
}

// Rank は候補を独立した基準スコアの合計で採点し、スコア降順で返します。
// 同点はDOMスキャン順を保つ安定ソートで解決され、同一入力に対する
// 結果は常に再現可能です。この順序がバリデーターの依存する契約です。
func (r *CandidateRanker) Rank(candidates []entity.LogoCandidate) []entity.ScoredCandidate {
	scored := make([]entity.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		breakdown := map[string]float64{
			CriterionPosition:    positionScore(c),
			CriterionContainment: containmentScore(c),
			CriterionSize:        sizeScore(c),
			CriterionLexical:     r.lexicalScore(c),
		}
		var total float64
		for _, v := range breakdown {
			total += v
		}
		scored = append(scored, entity.ScoredCandidate{
			LogoCandidate: c,
			Score:         total,
			Breakdown:     breakdown,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// positionScore はページ上端からの距離に応じて減衰するボーナスを返します。
func positionScore(c entity.LogoCandidate) float64 {
	switch y := c.Position.Y; {
	case y < 150:
		return 3.0
	case y < 300:
		return 2.0
	case y < 600:
		return 1.0
	default:
		return 0
	}
}

// containmentScore はヘッダー・ナビ・ブランドコンテナ内の候補に
// 固定ボーナスを与えます。
func containmentScore(c entity.LogoCandidate) float64 {
	if c.Containment == entity.ContainmentOther {
		return 0
	}
	return containmentBonus
}

// sizeScore は「ロゴらしい」寸法帯に収まる候補を優遇します。
// 極端に小さい画像やバナーサイズの画像はボーナスを得られません。
func sizeScore(c entity.LogoCandidate) float64 {
	w, h := c.Width, c.Height
	switch {
	case w >= 100 && w <= 400 && h >= 50 && h <= 200:
		return 2.0
	case w >= 50 && w <= 600 && h >= 20 && h <= 300:
		return 1.0
	default:
		return 0
	}
}

// lexicalScore はalt・class・id・srcのロゴ示唆トークンに対するボーナスです。
// 複数トークンのマッチで加算されますが、合計は上限で頭打ちになります。
func (r *CandidateRanker) lexicalScore(c entity.LogoCandidate) float64 {
	var score float64
	score += 1.5 * float64(len(c.ClassHints))

	// 特に強いシグナルへの追加ボーナス
	if _, ok := c.ClassHints["logo"]; ok {
		score += 2.0
	}
	if _, ok := c.ClassHints["brand"]; ok {
		score += 1.5
	}
	for _, structural := range []string{"header", "nav", "brand"} {
		if _, ok := c.ClassHints[structural]; ok {
			score += 1.0
			break
		}
	}

	if score > r.cfg.LexicalCap {
		score = r.cfg.LexicalCap
	}
	return score
}
