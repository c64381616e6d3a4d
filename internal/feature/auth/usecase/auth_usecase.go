// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials は認証情報が一致しないことを表します。
var ErrInvalidCredentials = errors.New("invalid credentials")

// 環境変数キー。パイプラインAPIは単一オペレーターの運用ツールなので、
// ユーザーテーブルではなく環境変数で資格情報を構成します。
const (
	EnvKeyOperatorName         = "OPERATOR_NAME"
	EnvKeyOperatorPasswordHash = "OPERATOR_PASSWORD_HASH" // bcryptハッシュ
)

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたオペレーターの署名済みJWTトークンを生成します。
	GenerateToken(operator string) (string, error)
}

// authUsecase はオペレーター認証のビジネスロジックを実装します。
type authUsecase struct {
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{jwtGenerator: jwtGenerator}
}

// Login はオペレーターを認証し、成功時にJWTトークンを返します。
// 資格情報はOPERATOR_NAMEとOPERATOR_PASSWORD_HASH（bcrypt）で構成されます。
func (u *authUsecase) Login(ctx context.Context, operator, password string) (string, error) {
	name := os.Getenv(EnvKeyOperatorName)
	hash := os.Getenv(EnvKeyOperatorPasswordHash)
	if name == "" || hash == "" {
		return "", ErrInvalidCredentials
	}
	if operator != name {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return u.jwtGenerator.GenerateToken(operator)
}
