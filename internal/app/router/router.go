package router

import (
	"github.com/gin-gonic/gin"

	authhandler "logo_finder/internal/feature/auth/transport/handler"
	logofinderhandler "logo_finder/internal/feature/logofinder/transport/handler"
	"logo_finder/internal/platform/http/handler"
	jwtmw "logo_finder/internal/platform/jwt"
)

// NewRouter はAPIのルーティングを構成します。
func NewRouter(authHandler *authhandler.AuthHandler, logoHandler *logofinderhandler.LogoFinderHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// オペレーターログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/v1/logo/find", logoHandler.FindLogo)
		auth.GET("/v1/logo/results", logoHandler.ListResults)
		auth.GET("/v1/logo/summary", logoHandler.Summary)
	}

	return r
}
