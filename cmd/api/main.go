package main

import (
	"context"
	"fmt"
	"log"

	"auth-api-prototype/core"
)

func main() {
	cfg, err := core.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := core.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	redisClient, err := core.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer redisClient.Close()

	// Tokens are verifiable only while this process holds the secret; a
	// restart without TOKEN_SECRET silently invalidates them all.
	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		secret, err = core.NewRandomSecret()
		if err != nil {
			log.Fatalf("failed to generate token secret: %v", err)
		}
		log.Printf("no TOKEN_SECRET configured; generated an ephemeral one")
	}

	issuer := core.NewTokenIssuer(secret)
	userRepo := core.NewPgUserRepository(db)
	authService := core.NewRepositoryAuthService(userRepo)
	metrics := core.NewMetricsService(redisClient)

	router := core.NewRouter(cfg, issuer, authService, userRepo, metrics)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
