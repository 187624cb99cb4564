package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bdb-123/module13-is601/config"
	"github.com/bdb-123/module13-is601/db"
	"github.com/bdb-123/module13-is601/internal/auth/handler"
	"github.com/bdb-123/module13-is601/internal/auth/hasher"
	repo "github.com/bdb-123/module13-is601/internal/auth/repository/postgres"
	"github.com/bdb-123/module13-is601/internal/auth/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := db.Migrate(cfg.DBURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	accountRepo := repo.NewAccountRepository(pool)
	txManager := db.NewTxManager(pool)
	tokenService := service.NewTokenService(
		[]byte(cfg.SecretKey),
		cfg.Algorithm,
		time.Duration(cfg.AccessTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTTLDays)*24*time.Hour,
	)
	passwordHasher := hasher.NewBcrypt(cfg.HashWorkFactor)
	authService := service.NewAuthService(accountRepo, txManager, passwordHasher, tokenService, slog.Default())
	authHandler := handler.NewAuthHandler(authService, tokenService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)
	log.Fatal(app.Listen(":" + cfg.Port))
}
