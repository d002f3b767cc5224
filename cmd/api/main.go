package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/salonflowpro/salon-api/internal/cache"
	"github.com/salonflowpro/salon-api/internal/config"
	dbpkg "github.com/salonflowpro/salon-api/internal/db"
	"github.com/salonflowpro/salon-api/internal/logger"
	"github.com/salonflowpro/salon-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	db := dbpkg.NewDB(cfg, &log)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	appCache := cache.New(rdb, cfg.CacheTTL, &log)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, appCache, &log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
