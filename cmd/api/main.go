// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/user-service/internal/auth"
	"github.com/yourusername/user-service/internal/config"
	"github.com/yourusername/user-service/internal/metrics"
	"github.com/yourusername/user-service/internal/token"
	"github.com/yourusername/user-service/internal/users"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.SecretKey == config.DefaultSecretKey {
		log.Printf("SECRET_KEY is not set; using the built-in default secret")
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	router, err := newRouter(cfg)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("User Service is running on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newRouter はミドルウェアとルーティングを設定した gin.Engine を返します。
func newRouter(cfg *config.Config) (*gin.Engine, error) {
	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()
	router.Use(auth.RequestID())

	// CORSミドルウェアの設定（カンマ区切りの文字列を配列に変換）
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
		"X-Request-ID",
	}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	router.Use(cors.New(corsConfig))

	if err := setupRoutes(router, cfg); err != nil {
		return nil, err
	}
	return router, nil
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "user-service",
		"version": "0.1.0",
	})
}

// setupRoutes は API グループと認証周りの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config) error {
	store := users.NewStore()
	authority, err := token.NewAuthority(cfg.SecretKey)
	if err != nil {
		return err
	}

	m := metrics.New(store.Len)
	router.Use(m.Middleware())

	authManager, err := auth.NewManager(store, authority, m, log.Default())
	if err != nil {
		return err
	}

	// まずは誰でも叩けるヘルスチェックとメトリクスを登録
	router.GET("/health", handleHealth)
	router.GET("/metrics", m.Handler())

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", auth.RegisterHandler(authManager))
			authRoutes.POST("/login", auth.LoginHandler(authManager))
			// トークンはステートレスなので認証なしで常に成功させる
			authRoutes.POST("/logout", auth.LogoutHandler(authManager))
		}

		userRoutes := api.Group("/users")
		userRoutes.Use(auth.RequireToken(authManager))
		{
			userRoutes.GET("/me", auth.MeHandler(authManager))
		}
	}
	return nil
}
