// @title         auth-service API
// @version       1.0
// @description   Minimal username/password authentication service: registration with hashed-password storage and login that issues a signed JWT.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Authorization token. Formats supported: "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	_ "github.com/artem13815/auth-service/docs"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	swagger "github.com/gofiber/swagger"

	// internal imports
	apihttp "github.com/artem13815/auth-service/api/http"
	"github.com/artem13815/auth-service/api/http/handlers"
	"github.com/artem13815/auth-service/pkg/auth"
	"github.com/artem13815/auth-service/pkg/config"
	"github.com/artem13815/auth-service/pkg/health"
	healthpg "github.com/artem13815/auth-service/pkg/health/checkers"
	pgrepo "github.com/artem13815/auth-service/pkg/repository/postgres"
	"github.com/artem13815/auth-service/pkg/security/jwt"
	"github.com/artem13815/auth-service/pkg/storage/postgres"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	pool, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Wire dependencies (Clean Architecture)
	userRepo, err := pgrepo.NewUserRepository(pool)
	if err != nil {
		log.Error("init user repo", "err", err)
		os.Exit(1)
	}

	// Token generator and password hasher
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	authUC := auth.NewAuthService(userRepo, hasher, jwtGen, log)
	authHandler := handlers.NewAuthHandler(authUC)

	// Health service: compose checkers
	readiness := health.NewService(healthpg.NewPostgresChecker(pool))
	healthHandler := handlers.NewHealthHandler(readiness)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	// Register routes
	apihttp.Register(app, authHandler, healthHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	log.Info("HTTP server listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
