package app

import (
	"database/sql"
	"os"

	"eduledger/internal/middleware"
	"eduledger/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	DB     *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Router *gin.Engine
}

// BuildApp wires the whole API: connections, module registry, router.
func BuildApp() (*App, error) {
	// A missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()

	db, err := connection.ConnectGORMWithRetry(
		env("DB_HOST", "localhost"),
		env("DB_USER", "postgres"),
		env("DB_PASSWORD", "postgres"),
		env("DB_NAME", "eduledger"),
		env("DB_PORT", "5432"),
		env("DB_SSLMODE", "disable"),
		5,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(env("REDIS_ADDR", "localhost:6379"), 5)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	if err := registerModules(router, db, sqlDB, rdb); err != nil {
		return nil, err
	}

	return &App{
		DB:     db,
		SQLDB:  sqlDB,
		Redis:  rdb,
		Router: router,
	}, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
