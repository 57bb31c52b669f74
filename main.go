package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"susafchat/internal/api"
	"susafchat/internal/config"
	"susafchat/internal/llm"
	"susafchat/internal/service/backlog"
	"susafchat/internal/service/chat"
	"susafchat/internal/session"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(os.Getenv("SUSAFCHAT_CONFIG"))
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	apiKey := os.Getenv("TOGETHER_API_KEY")
	if apiKey == "" {
		logger.Fatal("TOGETHER_API_KEY environment variable must be set")
	}

	client := llm.NewClient(
		cfg.Backend.BaseURL,
		apiKey,
		cfg.Backend.Model,
		time.Duration(cfg.Backend.RequestTimeoutSeconds)*time.Second,
	)
	store := session.NewStore(chat.SystemPrompt, chat.WelcomeMessage)
	chatSvc := chat.NewService(store, client, logger,
		time.Duration(cfg.Backend.StreamTimeoutSeconds)*time.Second)
	backlogSvc := backlog.NewService(client, logger)
	handlers := api.NewHandler(store, chatSvc, backlogSvc, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))
	handlers.RegisterRoutes(router)

	logger.Info("starting server",
		zap.String("addr", cfg.ServerAddress),
		zap.String("model", cfg.Backend.Model))
	if err := router.Run(cfg.ServerAddress); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
