package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AkaakuHub/moshi-bingo/game"
	"github.com/AkaakuHub/moshi-bingo/services"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

type createCardRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	GameID    string `json:"game_id" binding:"required"`
	SessionID string `json:"session_id"`
}

// CreateCard generates a card for a participant. Creation is idempotent per
// (game, session): a reloading client that presents the same session id gets
// its original card back, never a regenerated one. A client with no session
// id yet gets a minted one, returned alongside the card.
func CreateCard(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	card, err := services.GameStore.CreateCard(
		c.Request.Context(), req.UserID, req.GameID, req.SessionID, game.Generate())
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		logger.Errorf("create card failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create card"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"card": card, "session_id": card.SessionID})
}

// GetCard re-associates a session with its card.
func GetCard(c *gin.Context) {
	gameID := c.Query("game_id")
	sessionID := c.Query("session_id")
	if gameID == "" || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id and session_id are required"})
		return
	}

	card, err := services.GameStore.GetCardBySession(c.Request.Context(), gameID, sessionID)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, card)
}

type markRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MarkCell manually marks one cell. The mark only lands when the cell is not
// FREE, its number has been drawn, and it is not already marked; otherwise
// the card comes back unchanged. Valid marks run the same evaluator pipeline
// as auto-marking.
func MarkCell(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	card, err := services.GameStore.GetCard(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	g, err := services.GameStore.GetGame(ctx, card.GameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	res := game.ManualMark(card.Grid(), card.Marks(), req.Row, req.Col, g.Drawn())
	if !res.Changed {
		c.JSON(http.StatusOK, gin.H{"card": card, "changed": false})
		return
	}

	updated, err := services.GameStore.UpdateCard(ctx, card.ID, res.Marks, res.Bingo)
	if err != nil {
		logger.Errorf("card update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update card"})
		return
	}
	services.Marks.Save(card.GameID, card.SessionID, res.Marks)
	services.Notifier.BroadcastCard(updated)

	c.JSON(http.StatusOK, gin.H{
		"card":    updated,
		"changed": true,
		"bingo":   res.Bingo,
		"reach":   res.Reach,
		"missing": res.Missing,
	})
}
