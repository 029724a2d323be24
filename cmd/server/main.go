package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"sitebuilder/internal/ai"
	"sitebuilder/internal/auth"
	"sitebuilder/internal/config"
	"sitebuilder/internal/handler"
	"sitebuilder/internal/middleware"
	"sitebuilder/internal/repository/postgres"
	"sitebuilder/internal/service"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting server",
		"environment", cfg.Environment,
		"table_prefix", cfg.TablePrefix,
		"port", cfg.Port,
	)

	registry, err := ai.NewRegistry()
	if err != nil {
		logger.Error("failed to load model registry", "error", err)
		os.Exit(1)
	}

	verifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		logger.Error("failed to initialize JWT verifier", "error", err)
		os.Exit(1)
	}
	defer verifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}

	chatRepo := postgres.NewChatRepository(repoConfig)
	messageRepo := postgres.NewMessageRepository(repoConfig)
	websiteRepo := postgres.NewWebsiteRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	chatService := service.NewChatService(chatRepo, messageRepo, registry, logger)
	sendService := service.NewSendService(chatRepo, messageRepo, websiteRepo, logger)
	websiteService := service.NewWebsiteService(websiteRepo, txManager, logger)
	userService := service.NewUserService(userRepo, logger)
	zipService := service.NewZipService(logger)

	chatHandler := handler.NewChatHandler(chatService, sendService, logger)
	websiteHandler := handler.NewWebsiteHandler(websiteService, chatService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	zipHandler := handler.NewZipHandler(zipService, userService, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", userHandler.HealthCheck)

	mux.HandleFunc("POST /api/chat/send", chatHandler.SendMessage)

	mux.HandleFunc("POST /api/chats", chatHandler.CreateChat)
	mux.HandleFunc("GET /api/chats", chatHandler.ListChats)
	mux.HandleFunc("GET /api/chats/{id}", chatHandler.GetChat)
	mux.HandleFunc("PATCH /api/chats/{id}", chatHandler.RenameChat)
	mux.HandleFunc("DELETE /api/chats/{id}", chatHandler.DeleteChat)
	mux.HandleFunc("GET /api/chats/{id}/messages", chatHandler.ListMessages)
	mux.HandleFunc("POST /api/chats/{id}/messages", chatHandler.AppendMessage)
	mux.HandleFunc("GET /api/chats/{id}/website", websiteHandler.GetChatWebsite)

	mux.HandleFunc("POST /api/websites", websiteHandler.CreateWebsite)

	mux.HandleFunc("POST /api/guest/zip", zipHandler.Download)

	mux.HandleFunc("GET /api/users/me/profile", userHandler.GetProfile)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	var root http.Handler = mux
	root = middleware.AuthMiddleware(verifier)(root)
	root = middleware.Recovery(logger)(root)
	root = corsMiddleware.Handler(root)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
