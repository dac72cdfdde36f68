package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/AkaakuHub/moshi-bingo/game"
	"github.com/AkaakuHub/moshi-bingo/services"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

type createGameRequest struct {
	Name     string `json:"name" binding:"required"`
	HostName string `json:"hostName" binding:"required"`
}

// CreateGame creates a game and its host user.
func CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, host, err := services.GameStore.CreateGame(c.Request.Context(), req.Name, req.HostName)
	if err != nil {
		logger.Errorf("create game failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create game"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"game": g, "user": host})
}

// GetGame returns one game snapshot.
func GetGame(c *gin.Context) {
	g, err := services.GameStore.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, g)
}

type joinGameRequest struct {
	Name string `json:"name" binding:"required"`
}

// JoinGame adds a participant to an existing game.
func JoinGame(c *gin.Context) {
	var req joinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, user, err := services.GameStore.JoinGame(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		logger.Errorf("join game failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join game"})
		return
	}
	services.Notifier.NotifyParticipants(g.ID)
	c.JSON(http.StatusOK, gin.H{"game": g, "user": user})
}

type drawRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// Draw commits the next number to the game's ledger. Non-host callers are
// ignored rather than rejected, so stray UI triggers make no noise.
func Draw(c *gin.Context) {
	var req drawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, number, err := services.DrawEngine.Draw(c.Request.Context(), c.Param("id"), req.UserID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"game": g, "number": number})
	case errors.Is(err, services.ErrRoleViolation):
		c.JSON(http.StatusOK, gin.H{"ignored": true})
	case errors.Is(err, game.ErrExhaustedPool):
		c.JSON(http.StatusConflict, gin.H{"error": "all numbers have been drawn"})
	case errors.Is(err, services.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	default:
		logger.Errorf("draw failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "draw failed"})
	}
}

// ListParticipants returns a game's participants in join order.
func ListParticipants(c *gin.Context) {
	users, err := services.GameStore.ListParticipants(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// JoinQR renders the join URL for a game as a QR code PNG. The frontend base
// URL comes from the first allowed origin.
func JoinQR(c *gin.Context) {
	gameID := c.Param("id")
	if _, err := services.GameStore.GetGame(c.Request.Context(), gameID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	base := "http://localhost:3000"
	if len(services.Settings.AllowedOrigins) > 0 && services.Settings.AllowedOrigins[0] != "" {
		base = services.Settings.AllowedOrigins[0]
	}
	joinURL := fmt.Sprintf("%s/join/%s", base, gameID)

	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		logger.Errorf("qr encode failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
