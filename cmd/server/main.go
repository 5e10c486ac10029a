package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/credchain/credential-registry/internal/config"
	"github.com/credchain/credential-registry/internal/database"
	"github.com/credchain/credential-registry/internal/handler"
	"github.com/credchain/credential-registry/internal/queue"
	"github.com/credchain/credential-registry/internal/repository"
	"github.com/credchain/credential-registry/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it rate limiting, response caching and the
	// verify dedupe guard are disabled.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting, caching and verify dedupe disabled")
	}

	users := repository.NewUserRepo(db)
	creds := repository.NewCredentialRepo(db)
	verifications := repository.NewVerificationRepo(db)

	e := echo.New()
	e.Validator = handler.NewValidator()

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterCredentials(e, handler.NewCredentialHandler(cfg, creds, users, verifications, rdb), cfg.JWTSecret, rdb)
	router.RegisterStudents(e, handler.NewStudentHandler(cfg, users), cfg.JWTSecret, rdb)

	// Background audit-trail consumer; reconnects on its own.
	go func() {
		if err := queue.StartVerificationConsumer(); err != nil {
			log.Printf("verification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
