package entity

// LogoType はオラクルが判定したロゴの種別です。
type LogoType string

const (
	LogoTypeText        LogoType = "text"
	LogoTypeSymbol      LogoType = "symbol"
	LogoTypeCombination LogoType = "combination"
	LogoTypeWordmark    LogoType = "wordmark"
	LogoTypeOther       LogoType = "other"
)

// Quality はロゴ画像の品質ティアです。
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

// ValidationVerdict はビジョンオラクルによる1候補の判定結果です。
// 検証済み候補ごとに一度だけ生成され、不変です。
type ValidationVerdict struct {
	IsLogo          bool     `json:"is_logo"`
	Confidence      int      `json:"confidence"` // 0〜100
	Reasoning       string   `json:"reasoning"`
	LogoType        LogoType `json:"logo_type"`
	HasBusinessName bool     `json:"has_business_name"`
	Quality         Quality  `json:"quality"`
}
