// Package usecase はlogofinderフィーチャーのビジネスロジックを実装します。
package usecase

import "time"

const (
	// DefaultAcceptThreshold はオラクル判定を受理する最低信頼度です。
	DefaultAcceptThreshold = 70
	// DefaultMaxAttempts は1サイトあたりのオラクル検証の上限候補数です。
	DefaultMaxAttempts = 10
	// DefaultMaxImageSize はオラクルに渡す画像の最大サイズ（20MB）です。
	DefaultMaxImageSize = 20 * 1024 * 1024
)

// Config はパイプライン全体のしきい値と定数をまとめた不変の設定値です。
// モジュールレベルの可変状態を避け、各コンポーネントの生成時に注入します。
type Config struct {
	// スキャナー
	MinWidth  float64 // これ未満の幅の画像は候補になれない
	MinHeight float64 // これ未満の高さの画像は候補になれない
	TopBand   float64 // この縦位置より上にある画像を位置ルールの対象にする

	// ランカー
	LexicalTokens []string // ロゴを示唆する字句トークン
	LexicalCap    float64  // 字句ボーナスの合計上限

	// バリデーター
	AcceptThreshold int   // 受理に必要な最低信頼度（0〜100）
	MaxAttempts     int   // 1サイトあたりの検証候補数の上限
	MaxImageSize    int64 // 取得画像の最大バイト数

	// レンダラー
	ViewportWidth  int
	ViewportHeight int
	RenderTimeout  time.Duration

	// ペーシング
	OracleDelay time.Duration // オラクル呼び出し間の待機
	SiteDelay   time.Duration // サイト間の待機

	// バッチ
	CheckpointEvery int // 何サイトごとに途中結果を永続化するか
}

// DefaultConfig は実運用のデフォルト設定を返します。
func DefaultConfig() Config {
	return Config{
		MinWidth:        50,
		MinHeight:       20,
		TopBand:         600,
		LexicalTokens:   []string{"logo", "brand", "header", "nav", "company", "site"},
		LexicalCap:      9.0,
		AcceptThreshold: DefaultAcceptThreshold,
		MaxAttempts:     DefaultMaxAttempts,
		MaxImageSize:    DefaultMaxImageSize,
		ViewportWidth:   1920,
		ViewportHeight:  1080,
		RenderTimeout:   30 * time.Second,
		OracleDelay:     1 * time.Second,
		SiteDelay:       2 * time.Second,
		CheckpointEvery: 10,
	}
}
