package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AkaakuHub/moshi-bingo/controllers"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Game routes
	// ----------------------
	api.POST("/games", controllers.CreateGame)
	api.GET("/games/:id", controllers.GetGame)
	api.GET("/games/:id/qr", controllers.JoinQR)
	api.POST("/games/:id/join", controllers.JoinGame)
	api.POST("/games/:id/draw", controllers.Draw)
	api.GET("/games/:id/participants", controllers.ListParticipants)

	// ----------------------
	// Card routes
	// ----------------------
	api.POST("/cards", controllers.CreateCard)
	api.GET("/cards", controllers.GetCard)
	api.POST("/cards/:id/mark", controllers.MarkCell)
}
