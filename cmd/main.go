package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"chatmate/backend/internal/api/handler"
	"chatmate/backend/internal/chathub"
	"chatmate/backend/internal/config"
	"chatmate/backend/internal/friends"
	"chatmate/backend/internal/models"
	"chatmate/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL. TranslateError lets the storage layer match
	// constraint violations as gorm.ErrDuplicatedKey across drivers.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting ChatMate Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.FromEnv()

	// 1. Dependencies
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// 2. Hub and services
	hub := chathub.NewManagerService(s)
	delivery := chathub.NewDeliveryService(s)
	friendsSvc := friends.NewService(s)

	// 3. Main dispatcher goroutine
	go hub.Run()

	// 4. Gin routing
	r := gin.Default()
	h := handler.NewHandler(hub, delivery, friendsSvc, s, cfg)

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/ws", h.ServeWebSocket) // WebSocket upgrade

	api := r.Group("/api", h.RequireAuth())
	{
		api.POST("/friends/requests", h.SendFriendRequest)
		api.GET("/friends/requests", h.ListIncomingRequests)
		api.POST("/friends/requests/:id/accept", h.AcceptFriendRequest)
		api.POST("/friends/requests/:id/decline", h.DeclineFriendRequest)
		api.GET("/friends", h.ListFriends)
		api.GET("/messages/:friendID", h.FetchHistory)
	}

	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
