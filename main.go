package main

import (
	"context"
	"net/http"

	"civicreport-be/auth"
	"civicreport-be/config"
	"civicreport-be/controllers"
	"civicreport-be/kvstore"
	"civicreport-be/logger"
	"civicreport-be/middlewares"
	"civicreport-be/repository"
	"civicreport-be/routes"
	"civicreport-be/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Running without a .env file is fine in containers.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment variable is not set")
	}

	ctx := context.Background()
	store, redisClient, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.KVBackend).Msg("failed to initialize key-value store")
	}
	log.Info().Str("backend", cfg.KVBackend).Msg("key-value store ready")

	authenticator := auth.NewJWTAuthenticator(cfg.JWTSecret)

	issueRepo := repository.NewIssueRepository(store, log)
	userRepo := repository.NewUserRepository(store)

	issueService := services.NewIssueService(issueRepo, log)
	authService := services.NewAuthService(userRepo, authenticator, log)

	issueController := controllers.NewIssueController(issueService, log)
	authController := controllers.NewAuthController(authService, log)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowOrigins) == 1 && cfg.CORSAllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	var rateLimiter gin.HandlerFunc
	if redisClient != nil {
		rateLimiter = middlewares.IssueRateLimiter(redisClient, cfg.RateLimitQueue, cfg.RateLimitPerDay)
	}

	routes.AuthRoutes(r, authController, authenticator)
	routes.IssueRoutes(r, issueController, authenticator, rateLimiter)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("starting server")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// buildStore wires the configured key-value backend. The Redis client is
// also returned when available so the rate limiter can share it.
func buildStore(ctx context.Context, cfg config.Config) (kvstore.Store, *redis.Client, error) {
	switch cfg.KVBackend {
	case "mongo":
		db, err := config.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.NewMongoStore(db.Collection("kv")), nil, nil
	case "memory":
		return kvstore.NewMemoryStore(), nil, nil
	default:
		client, err := config.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.NewRedisStore(client), client, nil
	}
}
