package main

import (
	"context"
	"log"
	"net/http"

	_ "fitlog/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fitlog/internal/cache"
	"fitlog/internal/config"
	"fitlog/internal/db"
	"fitlog/internal/handler"
	"fitlog/internal/repository"
	"fitlog/internal/router"
	"fitlog/internal/service"
)

// @title Exercise Tracker API
// @version 1.0
// @description REST API for recording users and their logged exercises.
// @host localhost:3000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	database, err := db.NewMongo(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	exerciseRepo := repository.NewExerciseRepository(database)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	logService := service.NewLogService(userRepo, exerciseRepo, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	logHandler := handler.NewLogHandler(logService)

	// Register routes
	router.Register(e, userHandler, logHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
