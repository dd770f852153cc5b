package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/authgate/authgate/internal/auth"
	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/database"
	"github.com/authgate/authgate/internal/handler"
	"github.com/authgate/authgate/internal/queue"
	"github.com/authgate/authgate/internal/repository"
	"github.com/authgate/authgate/internal/router"
	queue_publisher "github.com/authgate/authgate/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	svc := auth.NewService(
		repository.NewAccountRepo(db),
		repository.NewRoleRepo(db),
		repository.NewTokenRepo(db),
		auth.TokenPolicy{
			Secret:     cfg.JWTSecret,
			Issuer:     cfg.JWTIssuer,
			Audience:   cfg.JWTAudience,
			AccessTTL:  time.Duration(cfg.AccessTTLHours) * time.Hour,
			BcryptCost: cfg.BcryptCost,
		},
		queue_publisher.Publisher{},
	)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(svc), cfg, rdb)

	// Audit trail consumer; reconnects on its own and never blocks startup.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
