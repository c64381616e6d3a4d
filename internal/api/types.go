// Package api はHTTP APIのリクエスト・レスポンス型を定義します。
package api

import "time"

// ErrorResponse はエラー応答の共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は単純なメッセージ応答です。
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse はログイン成功時のJWTトークン応答です。
type TokenResponse struct {
	Token string `json:"token"`
}

// LoginRequest は/loginエンドポイントのリクエストボディです。
type LoginRequest struct {
	Operator string `json:"operator" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// FindLogoRequest は/v1/logo/findエンドポイントのリクエストボディです。
type FindLogoRequest struct {
	URL  string `json:"url" binding:"required"`
	Name string `json:"name"`
}

// SiteResultResponse は1サイトのロゴ判定結果の応答です。
type SiteResultResponse struct {
	URL             string    `json:"url"`
	WebsiteName     string    `json:"website_name"`
	LogoFound       bool      `json:"logo_found"`
	LogoURL         string    `json:"logo_url,omitempty"`
	LogoConfidence  int       `json:"logo_confidence"`
	LogoReasoning   string    `json:"logo_reasoning"`
	LogoType        string    `json:"logo_type,omitempty"`
	HasBusinessName bool      `json:"has_business_name"`
	LogoQuality     string    `json:"logo_quality,omitempty"`
	CandidatesFound int       `json:"candidates_found"`
	Error           string    `json:"error,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// SummaryResponse はバッチ結果の集計応答です。
type SummaryResponse struct {
	Total            int            `json:"total"`
	Found            int            `json:"found"`
	HighConfidence   int            `json:"high_confidence"`
	WithBusinessName int            `json:"with_business_name"`
	QualityCounts    map[string]int `json:"quality_counts"`
}
