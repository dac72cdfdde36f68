package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appconfig "github.com/AkaakuHub/moshi-bingo/config"
	"github.com/AkaakuHub/moshi-bingo/routes"
	"github.com/AkaakuHub/moshi-bingo/services"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg *appconfig.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket game stream
	r.GET("/ws/:gameId", services.HandleWebSocket)

	return r
}

func main() {
	cfg := appconfig.Load()

	db := appconfig.SetupDatabase(cfg.DatabaseURL)
	services.Init(db, cfg)

	router := setupRouter(cfg)

	logger.Infof("bingo backend listening on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
