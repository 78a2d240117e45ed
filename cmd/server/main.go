package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "fundraiser/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fundraiser/internal/auth"
	"fundraiser/internal/cache"
	"fundraiser/internal/config"
	"fundraiser/internal/db"
	"fundraiser/internal/handler"
	"fundraiser/internal/mailer"
	"fundraiser/internal/model"
	"fundraiser/internal/repository"
	"fundraiser/internal/router"
	"fundraiser/internal/service"
	"fundraiser/internal/storage"
)

// @title Fundraiser API
// @version 1.0
// @description Crowdfunding platform API: campaigns, donations and email-verified accounts.
// @host localhost:5000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.VerificationToken{},
			&model.Campaign{},
			&model.Account{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Account{},
		&model.VerificationToken{},
		&model.Campaign{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	imageStore, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	var dispatcher mailer.Mailer
	if cfg.SMTPHost != "" {
		dispatcher = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		log.Println("SMTP_HOST not set, verification emails will only be logged")
		dispatcher = mailer.LogOnly{}
	}

	// Initialize repositories
	campaignRepo := repository.NewCampaignRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	campaignService := service.NewCampaignService(campaignRepo, cacheClient)
	authService := service.NewAuthService(accountRepo, tokenRepo, jwtService, dispatcher, cfg.BaseURL, cfg.MailFrom)

	// Initialize handlers
	campaignHandler := handler.NewCampaignHandler(campaignService, imageStore)
	authHandler := handler.NewAuthHandler(authService)

	// Register routes
	router.Register(e, cfg, campaignHandler, authHandler)

	log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.BaseURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "minio" {
		return storage.NewMinio(context.Background(), cfg)
	}
	return storage.NewLocal(cfg.UploadDir)
}
