package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"logo_finder/internal/app/di"
	"logo_finder/internal/app/router"
	authhandler "logo_finder/internal/feature/auth/transport/handler"
	authusecase "logo_finder/internal/feature/auth/usecase"
	"logo_finder/internal/feature/logofinder/adapters"
	logofinderhandler "logo_finder/internal/feature/logofinder/transport/handler"
	"logo_finder/internal/platform/db"
	jwtmw "logo_finder/internal/platform/jwt"
	infraredis "logo_finder/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	// db
	gdb := db.OpenDB()

	// Redis（判定キャッシュ。無くても動作する）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without verdict cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// パイプライン組み立て
	cfg := di.LoadConfig()
	siteUC, renderer, err := di.NewSiteUsecase(ctx, cfg, rdb)
	if err != nil {
		log.Fatal("failed to build pipeline:", err)
	}
	defer renderer.Close()

	// Repository
	store := adapters.NewSiteResultRepository(gdb)

	// Usecase
	generator := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(generator)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	logoH := logofinderhandler.NewLogoFinderHandler(siteUC, store)

	// ルータ生成
	r := router.NewRouter(authH, logoH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
