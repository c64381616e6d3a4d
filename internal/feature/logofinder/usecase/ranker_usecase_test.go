package usecase_test

import (
	"reflect"
	"testing"

	"logo_finder/internal/feature/logofinder/domain/entity"
	"logo_finder/internal/feature/logofinder/usecase"
)

// candidate はテスト用のLogoCandidateを組み立てるヘルパー関数です。
func candidate(src string, y, w, h float64, containment entity.Containment, hints ...string) entity.LogoCandidate {
	set := map[string]struct{}{}
	for _, hint := range hints {
		set[hint] = struct{}{}
	}
	return entity.LogoCandidate{
		ImageSource: src,
		ClassHints:  set,
		Position:    entity.Position{Y: y, Width: w, Height: h},
		Containment: containment,
		Width:       w,
		Height:      h,
	}
}

func TestCandidateRanker_Rank_Deterministic(t *testing.T) {
	ranker := usecase.NewCandidateRanker(usecase.DefaultConfig())

	candidates := []entity.LogoCandidate{
		candidate("https://a.example/a.png", 100, 200, 80, entity.ContainmentHeader, "logo"),
		candidate("https://a.example/b.png", 700, 500, 250, entity.ContainmentOther),
		candidate("https://a.example/c.png", 200, 150, 60, entity.ContainmentNav, "brand", "nav"),
	}

	first := ranker.Rank(candidates)
	second := ranker.Rank(candidates)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("rank is not deterministic: two runs over the same input differ")
	}
}

func TestCandidateRanker_Rank_DescendingOrder(t *testing.T) {
	ranker := usecase.NewCandidateRanker(usecase.DefaultConfig())

	candidates := []entity.LogoCandidate{
		candidate("https://a.example/weak.png", 700, 900, 400, entity.ContainmentOther),
		candidate("https://a.example/strong.png", 50, 200, 80, entity.ContainmentHeader, "logo", "brand"),
		candidate("https://a.example/middle.png", 400, 300, 100, entity.ContainmentOther, "site"),
	}

	ranked := ranker.Rank(candidates)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 scored candidates, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Errorf("order violated at %d: %v < %v", i, ranked[i-1].Score, ranked[i].Score)
		}
	}
	if ranked[0].ImageSource != "https://a.example/strong.png" {
		t.Errorf("expected strong.png first, got %s", ranked[0].ImageSource)
	}
	if ranked[2].ImageSource != "https://a.example/weak.png" {
		t.Errorf("expected weak.png last, got %s", ranked[2].ImageSource)
	}
}

func TestCandidateRanker_Rank_StableTies(t *testing.T) {
	ranker := usecase.NewCandidateRanker(usecase.DefaultConfig())

	// 完全に同じ特徴を持つ候補は同点になり、スキャン順を保つ
	candidates := []entity.LogoCandidate{
		candidate("https://a.example/first.png", 100, 200, 80, entity.ContainmentHeader, "logo"),
		candidate("https://a.example/second.png", 100, 200, 80, entity.ContainmentHeader, "logo"),
		candidate("https://a.example/third.png", 100, 200, 80, entity.ContainmentHeader, "logo"),
	}

	ranked := ranker.Rank(candidates)

	expected := []string{
		"https://a.example/first.png",
		"https://a.example/second.png",
		"https://a.example/third.png",
	}
	for i, src := range expected {
		if ranked[i].ImageSource != src {
			t.Errorf("tie order broken at %d: got %s, want %s", i, ranked[i].ImageSource, src)
		}
	}
}

func TestCandidateRanker_Rank_Breakdown(t *testing.T) {
	ranker := usecase.NewCandidateRanker(usecase.DefaultConfig())

	// ヘッダー内・上端近く・ロゴらしい寸法・logoトークンを持つ理想的な候補
	ranked := ranker.Rank([]entity.LogoCandidate{
		candidate("https://acme.example/logo.png", 30, 200, 80, entity.ContainmentHeader, "logo"),
	})

	if len(ranked) != 1 {
		t.Fatalf("expected 1 ranked candidate, got %d", len(ranked))
	}
	c := ranked[0]

	testCases := []struct {
		criterion string
		expected  float64
	}{
		{usecase.CriterionPosition, 3.0},    // y=30は最上帯
		{usecase.CriterionContainment, 2.0}, // ヘッダー内
		{usecase.CriterionSize, 2.0},        // 200x80はロゴらしい帯
		{usecase.CriterionLexical, 3.5},     // logoトークン 1.5 + logo特別ボーナス 2.0
	}
	for _, tc := range testCases {
		if got := c.Breakdown[tc.criterion]; got != tc.expected {
			t.Errorf("%s score: got %v, want %v", tc.criterion, got, tc.expected)
		}
	}

	var total float64
	for _, v := range c.Breakdown {
		total += v
	}
	if c.Score != total {
		t.Errorf("score %v does not equal breakdown sum %v", c.Score, total)
	}
}

func TestCandidateRanker_Rank_LexicalCap(t *testing.T) {
	cfg := usecase.DefaultConfig()
	ranker := usecase.NewCandidateRanker(cfg)

	// 全トークンがマッチしても字句ボーナスは上限で頭打ちになる
	ranked := ranker.Rank([]entity.LogoCandidate{
		candidate("https://a.example/x.png", 30, 200, 80, entity.ContainmentHeader,
			"logo", "brand", "header", "nav", "company", "site"),
	})

	if got := ranked[0].Breakdown[usecase.CriterionLexical]; got != cfg.LexicalCap {
		t.Errorf("lexical score: got %v, want cap %v", got, cfg.LexicalCap)
	}
}
