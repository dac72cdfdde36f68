package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/AkaakuHub/moshi-bingo/models"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket attaches a client to a game's snapshot stream.
// Query params: user_id (required), session_id (participants).
func HandleWebSocket(c *gin.Context) {
	gameID := c.Param("gameId")
	userID := c.Query("user_id")
	sessionID := c.Query("session_id")

	ctx := c.Request.Context()
	g, err := GameStore.GetGame(ctx, gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	user, err := GameStore.GetUser(ctx, userID)
	if err != nil || user.GameID != gameID {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found in this game"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("ws upgrade failed: %v", err)
		return
	}

	client := &Client{
		user:      user,
		gameID:    gameID,
		sessionID: sessionID,
		conn:      conn,
		send:      make(chan []byte, 32),
		updates:   make(chan *models.Game, 8),
	}
	client.sync.ReplayOnColdAttach = Settings.ReplayOnColdAttach

	Notifier.register(client)
	go client.writePump()
	go client.readPump()
	go client.runUpdates()
	go client.watchConnect(Settings.ConnectTimeout)

	// Seed the client before any live update: cached marks first so a
	// reloading participant sees its grid immediately, then the
	// authoritative snapshot (which may trigger the cold-attach replay).
	if user.Role == models.RoleParticipant && sessionID != "" {
		if marks, ok := Marks.Load(gameID, sessionID); ok {
			client.enqueue(Message{Type: msgCachedMarks, CachedMarks: &marks})
		}
	}
	client.enqueueUpdate(g)
}
