package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AkaakuHub/moshi-bingo/game"
	"github.com/AkaakuHub/moshi-bingo/models"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

// Client is one attached websocket connection. Participants carry a session
// id and run the auto-mark pipeline; the host only consumes game snapshots.
type Client struct {
	user      *models.User
	gameID    string
	sessionID string
	conn      *websocket.Conn
	send      chan []byte
	updates   chan *models.Game
	once      sync.Once

	sync game.Synchronizer

	polling   atomic.Bool
	delivered atomic.Bool
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		close(c.updates)
		c.conn.Close()
	})
}

func (c *Client) enqueue(msg Message) {
	b := encode(msg)
	if b == nil {
		return
	}
	defer func() {
		// Sending on the closed channel of a detached client is harmless.
		if r := recover(); r != nil {
			logger.Debugf("client %s: enqueue after close", c.user.ID)
		}
	}()
	select {
	case c.send <- b:
	default:
		logger.Warnf("client %s: delivery stalled, falling back to polling", c.user.ID)
		c.fallbackToPolling()
	}
}

// enqueueUpdate hands an authoritative snapshot to the client's observation
// queue. runUpdates consumes the queue one snapshot at a time in arrival
// order, so observations never interleave or run out of order per client.
func (c *Client) enqueueUpdate(g *models.Game) {
	defer func() {
		// Updates for a detached client go nowhere.
		if r := recover(); r != nil {
			logger.Debugf("client %s: update after close", c.user.ID)
		}
	}()
	select {
	case c.updates <- g:
	default:
		logger.Warnf("client %s: update queue stalled, falling back to polling", c.user.ID)
		c.fallbackToPolling()
	}
}

func (c *Client) runUpdates() {
	for g := range c.updates {
		c.observeGame(g)
	}
}

// observeGame feeds one game snapshot through this client's synchronizer.
// The snapshot itself is always forwarded; the edge-triggered number event,
// and the participant's auto-mark pipeline behind it, fire exactly once per
// actual ledger change. A draw that lands while a reaction is still running
// is handed back by Done and reacted to before the next snapshot is taken,
// so no number is ever dropped.
func (c *Client) observeGame(g *models.Game) {
	current := 0
	if g.CurrentNumber != nil {
		current = *g.CurrentNumber
	}

	emit := c.sync.Observe(current, len(g.Drawn()))
	c.enqueue(Message{Type: msgGame, Game: g})
	for emit {
		c.reactTo(g, current)
		current, emit = c.sync.Done()
	}
}

// reactTo runs the downstream pipeline for one newly drawn number.
func (c *Client) reactTo(g *models.Game, number int) {
	c.enqueue(Message{Type: msgNumberDrawn, Number: number})
	if c.user.Role != models.RoleParticipant {
		return
	}

	ctx := context.Background()
	card, err := GameStore.GetCardBySession(ctx, c.gameID, c.sessionID)
	if err != nil {
		if !errors.Is(err, ErrCardNotFound) {
			logger.Errorf("client %s: card load failed: %v", c.user.ID, err)
		}
		return
	}

	res := game.AutoMark(card.Grid(), card.Marks(), number)
	if !res.Changed {
		return
	}

	updated, err := GameStore.UpdateCard(ctx, card.ID, res.Marks, res.Bingo)
	if err != nil {
		logger.Errorf("client %s: card update failed: %v", c.user.ID, err)
		return
	}
	if g.Status == models.StatusFinished {
		// The game is over; a future reload should start clean.
		Marks.Clear(c.gameID, c.sessionID)
	} else {
		Marks.Save(c.gameID, c.sessionID, res.Marks)
	}
	for _, m := range classificationMessages(updated, res) {
		c.enqueue(m)
	}
}

// manualMark runs a participant's tapped cell through the shared evaluator
// pipeline. Invalid taps (FREE cell, undrawn number, already marked) are
// silent no-ops.
func (c *Client) manualMark(row, col int) {
	if c.user.Role != models.RoleParticipant {
		return
	}
	ctx := context.Background()

	g, err := GameStore.GetGame(ctx, c.gameID)
	if err != nil {
		logger.Errorf("client %s: game load failed: %v", c.user.ID, err)
		return
	}
	card, err := GameStore.GetCardBySession(ctx, c.gameID, c.sessionID)
	if err != nil {
		return
	}

	res := game.ManualMark(card.Grid(), card.Marks(), row, col, g.Drawn())
	if !res.Changed {
		return
	}

	updated, err := GameStore.UpdateCard(ctx, card.ID, res.Marks, res.Bingo)
	if err != nil {
		logger.Errorf("client %s: card update failed: %v", c.user.ID, err)
		return
	}
	Marks.Save(c.gameID, c.sessionID, res.Marks)
	for _, m := range classificationMessages(updated, res) {
		c.enqueue(m)
	}
}

func (c *Client) readPump() {
	defer func() {
		Notifier.unregister(c)
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Infof("client %s: disconnected", c.user.ID)
			} else {
				logger.Warnf("client %s: read error: %v", c.user.ID, err)
			}
			return
		}

		var data map[string]any
		if err := json.Unmarshal(message, &data); err != nil {
			logger.Warnf("client %s: invalid message: %v", c.user.ID, err)
			continue
		}

		switch data["action"] {
		case "draw":
			_, _, err := DrawEngine.Draw(context.Background(), c.gameID, c.user.ID)
			switch {
			case err == nil:
			case errors.Is(err, ErrRoleViolation):
				// Accidental trigger from a participant UI; drop it.
			case errors.Is(err, game.ErrExhaustedPool):
				c.enqueue(Message{Type: msgError, Error: "all numbers have been drawn"})
			default:
				logger.Errorf("client %s: draw failed: %v", c.user.ID, err)
				c.enqueue(Message{Type: msgError, Error: "draw failed"})
			}
		case "mark":
			row, rok := data["row"].(float64)
			col, cok := data["col"].(float64)
			if !rok || !cok {
				logger.Warnf("client %s: malformed mark: %v", c.user.ID, data)
				continue
			}
			c.manualMark(int(row), int(col))
		default:
			logger.Warnf("client %s: unknown action: %v", c.user.ID, data["action"])
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Warnf("client %s: write error: %v", c.user.ID, err)
			return
		}
		c.delivered.Store(true)
	}
}

// watchConnect closes the connection with an error frame when no frame could
// be delivered within the connect window, so the client can surface a
// recoverable error instead of hanging.
func (c *Client) watchConnect(timeout time.Duration) {
	defer func() {
		// The client may have detached (and closed send) while we slept.
		if r := recover(); r != nil {
			logger.Debugf("client %s: watchdog after close", c.user.ID)
		}
	}()
	time.Sleep(timeout)
	if c.delivered.Load() {
		return
	}
	logger.Warnf("client %s: no delivery within %s, detaching", c.user.ID, timeout)
	// Best effort: the frame goes through the write pump so the connection is
	// only ever written from one goroutine.
	if b := encode(Message{Type: msgError, Error: "connection timed out"}); b != nil {
		select {
		case c.send <- b:
		default:
		}
	}
	Notifier.unregister(c)
}

// fallbackToPolling re-reads the authoritative game row on a fixed interval
// for a bounded window after push delivery failed, then gives up and
// detaches. Polled snapshots join the same ordered observation queue as
// pushed ones, so nothing is double-processed if push recovers.
func (c *Client) fallbackToPolling() {
	if !c.polling.CompareAndSwap(false, true) {
		return
	}
	go func() {
		deadline := time.Now().Add(Settings.PollWindow)
		ticker := time.NewTicker(Settings.PollInterval)
		defer ticker.Stop()
		for time.Now().Before(deadline) {
			<-ticker.C
			g, err := GameStore.GetGame(context.Background(), c.gameID)
			if err != nil {
				logger.Warnf("client %s: poll failed: %v", c.user.ID, err)
				continue
			}
			c.enqueueUpdate(g)
		}
		logger.Warnf("client %s: poll window exhausted, detaching", c.user.ID)
		Notifier.unregister(c)
	}()
}
