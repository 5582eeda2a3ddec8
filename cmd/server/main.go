package main

import (
	"fmt"
	"log"

	"github.com/minjipark/linkmemo-service/internal/config"
	"github.com/minjipark/linkmemo-service/internal/database"
	"github.com/minjipark/linkmemo-service/internal/handler"
	"github.com/minjipark/linkmemo-service/internal/kakao"
	"github.com/minjipark/linkmemo-service/internal/openrouter"
	"github.com/minjipark/linkmemo-service/internal/redis"
	"github.com/minjipark/linkmemo-service/internal/repository"
	"github.com/minjipark/linkmemo-service/internal/server"
	"github.com/minjipark/linkmemo-service/internal/service"
)

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to PostgreSQL
	log.Println("Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.PostgresDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	log.Println("Connecting to Redis...")
	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewPostgresUserRepository(db.GetPool())
	postRepo := repository.NewPostgresPostRepository(db.GetPool())
	tagRepo := repository.NewPostgresTagRepository(db.GetPool())
	tokenRepo := repository.NewRedisTokenRepository(redisClient.Client)

	// Initialize outbound clients
	kakaoClient := kakao.NewClient(&kakao.Config{
		ClientID:     cfg.KakaoClientID,
		ClientSecret: cfg.KakaoClientSecret,
		RedirectURL:  cfg.KakaoRedirectURL,
		Timeout:      cfg.KakaoTimeout,
	})

	openRouterClient := openrouter.NewClient(&openrouter.Config{
		APIKey:  cfg.OpenRouterAPIKey,
		ModelID: cfg.OpenRouterModelID,
		Timeout: cfg.OpenRouterTimeout,
	})

	// Initialize services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		TokenRepo:         tokenRepo,
		Secret:            cfg.JWTSecret,
		AccessExpiration:  cfg.JWTAccessExpiration,
		RefreshExpiration: cfg.JWTRefreshExpiration,
	})
	authService := service.NewAuthService(kakaoClient, userRepo, db, tokenService)
	userService := service.NewUserService(userRepo)
	summaryService := service.NewSummaryService(openRouterClient, cfg.MaxSummaryWorkers)
	postService := service.NewPostService(postRepo, tagRepo, summaryService)
	memoService := service.NewMemoService(postRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService, cfg.FrontendURL)
	postHandler := handler.NewPostHandler(postService)
	memoHandler := handler.NewMemoHandler(memoService)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg)
	appServer.RegisterHandlers(tokenService, authHandler, postHandler, memoHandler)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}
