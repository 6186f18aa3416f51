package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"campusboard/internal/api"
	"campusboard/internal/auth"
	"campusboard/internal/board"
	"campusboard/internal/config"
	"campusboard/internal/database"
	"campusboard/internal/store"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	log.Printf("api bootstrapped with db host=%s port=%d db=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Printf("database connection ready")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	log.Printf("database migrated")

	privateKeyPEM, err := os.ReadFile(cfg.Auth.PrivateKeyPath)
	if err != nil {
		log.Fatalf("read private key: %v", err)
	}
	publicKeyPEM, err := os.ReadFile(cfg.Auth.PublicKeyPath)
	if err != nil {
		log.Fatalf("read public key: %v", err)
	}
	authService, err := auth.NewAuthService(privateKeyPEM, publicKeyPEM, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
	})

	userStore := store.NewUserStore(db)
	jobStore := store.NewJobStore(db)
	appStore := store.NewApplicationStore(db)

	userService := board.NewUserService(userStore, authService.HashPassword, nil)
	jobService := board.NewJobService(jobStore, nil)
	appService := board.NewApplicationService(appStore, jobStore, nil)

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, api.RouteDeps{
		Users:                 userService,
		Jobs:                  jobService,
		Applications:          appService,
		AuthService:           authService,
		Redis:                 redisClient,
		Logger:                logger,
		LoginRateLimitPerHour: cfg.Auth.LoginRateLimitPerHour,
		LoginLockThreshold:    cfg.Auth.LoginLockThreshold,
		LoginLockTTL:          cfg.Auth.LoginLockTTL,
		CookieDomain:          cfg.Auth.CookieDomain,
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
