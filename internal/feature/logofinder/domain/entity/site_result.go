package entity

import "time"

// SiteResult は1入力サイトに対する最終的なロゴ判定結果です。
// 処理開始時に空で生成され、スキャン・ランク付け・検証の進行に応じて
// 埋められ、サイト処理の終了（成功・未発見・エラー）時に確定します。
// 不変条件: LogoFoundがtrueのとき、かつそのときに限りLogoURLは非空です。
type SiteResult struct {
	URL             string
	WebsiteName     string
	LogoFound       bool
	LogoURL         string
	LogoConfidence  int
	LogoReasoning   string
	LogoType        LogoType
	HasBusinessName bool
	LogoQuality     Quality
	CandidatesFound int
	Error           string
	Timestamp       time.Time
}

// RunSummary はバッチ実行全体の集計結果です。結果リストからの純粋な導出です。
type RunSummary struct {
	Total            int
	Found            int
	HighConfidence   int // 信頼度90以上
	WithBusinessName int
	QualityCounts    map[Quality]int
}
