// Package entity はlogofinderフィーチャーのドメインモデルを定義します。
package entity

// Containment は候補画像がページ構造のどこで見つかったかを表す分類です。
type Containment string

const (
	// ContainmentHeader はヘッダー要素内で見つかった候補を表します。
	ContainmentHeader Containment = "header"
	// ContainmentNav はナビゲーション要素内で見つかった候補を表します。
	ContainmentNav Containment = "nav"
	// ContainmentBrand はブランドコンテナ内で見つかった候補を表します。
	ContainmentBrand Containment = "brand"
	// ContainmentOther は上記以外の場所で見つかった候補を表します。
	ContainmentOther Containment = "other"
)

// Position はページ上の要素の位置と大きさを表します。
type Position struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ImageElement はレンダリング済みページから抽出された生の画像要素です。
// レンダラーが返すスナップショットの1要素で、スキャナーの入力になります。
type ImageElement struct {
	Src      string
	Alt      string
	Class    string
	ID       string
	Position Position
	InHeader bool
	InNav    bool
	InBrand  bool
}

// RenderedPage はレンダリング済みページのDOMスナップショットです。
type RenderedPage struct {
	URL    string
	Images []ImageElement
}

// LogoCandidate はロゴである可能性のある画像候補です。
// スキャン完了後は不変で、1つのサイト処理に所有されます。
type LogoCandidate struct {
	ImageSource string
	AltText     string
	ClassHints  map[string]struct{} // マッチした字句トークンの集合
	Position    Position
	Containment Containment
	Width       float64
	Height      float64
}

// ScoredCandidate はスコア付けされたロゴ候補です。
// Scoreの降順が検証の試行順序の契約になります。
type ScoredCandidate struct {
	LogoCandidate
	Score     float64
	Breakdown map[string]float64 // 基準ごとのスコア内訳
}

// Site はバッチ処理の入力となる1サイト（URLと事業者名）です。
type Site struct {
	URL  string
	Name string
}
