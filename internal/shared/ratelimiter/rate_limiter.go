// Package ratelimiter は外部API呼び出しのペーシング戦略を提供します。
package ratelimiter

import (
	"log/slog"
	"time"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// FixedDelay は呼び出しのたびに固定時間待機する最も単純なペーシング戦略です。
// 並行性がない逐次パイプラインでは、これで外部レートリミットに十分対応できます。
type FixedDelay struct {
	Delay time.Duration
}

// NewFixedDelay は新しいFixedDelayのインスタンスを生成します。
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{Delay: delay}
}

// WaitIfNeeded は設定された固定時間だけ待機します。
func (f *FixedDelay) WaitIfNeeded() {
	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}
}

// RateLimiter は一定間隔あたりの呼び出し回数を制限します。
type RateLimiter struct {
	limit     int           // intervalあたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded はレートリミットの上限に達しているかを確認し、必要であれば待機します。
func (rl *RateLimiter) WaitIfNeeded() {
	now := time.Now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Info("レートリミットに到達、待機します", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		// リセット
		rl.count = 1
		rl.lastReset = time.Now()
	}
}

// Nop は待機を行わないペーシング戦略です。テストで使用します。
type Nop struct{}

// WaitIfNeeded は何もしません。
func (Nop) WaitIfNeeded() {}
