package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/AkaakuHub/moshi-bingo/game"
	"github.com/AkaakuHub/moshi-bingo/models"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

// Message is the envelope for every frame pushed to clients.
type Message struct {
	Type         string            `json:"type"`
	Game         *models.Game      `json:"game,omitempty"`
	Card         *models.BingoCard `json:"card,omitempty"`
	Participants []models.User     `json:"participants,omitempty"`
	Number       int               `json:"number,omitempty"`
	Missing      []int             `json:"missing,omitempty"`
	CachedMarks  *game.Marks       `json:"cached_marks,omitempty"`
	Error        string            `json:"error,omitempty"`
}

const (
	msgGame         = "game"
	msgCard         = "card"
	msgParticipants = "participants"
	msgNumberDrawn  = "number_drawn"
	msgReach        = "reach"
	msgBingo        = "bingo"
	msgCachedMarks  = "cached_marks"
	msgError        = "error"
)

// Hub tracks connected clients per game and fans authoritative snapshots out
// to them. Delivery is at-least-once: a client may see the same snapshot
// twice, its synchronizer makes that harmless.
type Hub struct {
	store *Store

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub(store *Store) *Hub {
	return &Hub{
		store: store,
		rooms: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.gameID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[c.gameID] = room
	}
	room[c] = true
	total := len(room)
	h.mu.Unlock()

	logger.Infof("game %s: client %s attached (total=%d)", c.gameID, c.user.ID, total)
	h.broadcastParticipants(c.gameID)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.gameID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.gameID)
		}
	}
	h.mu.Unlock()
	c.Close()
}

func (h *Hub) clients(gameID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Client, 0, len(h.rooms[gameID]))
	for c := range h.rooms[gameID] {
		out = append(out, c)
	}
	return out
}

// BroadcastGame delivers a game snapshot to every attached client. Each
// client observes snapshots in arrival order through its own queue, and its
// synchronizer ensures only unseen numbers trigger a reaction.
func (h *Hub) BroadcastGame(g *models.Game) {
	for _, c := range h.clients(g.ID) {
		c.enqueueUpdate(g)
	}
}

// BroadcastCard delivers a card snapshot to the client owning the session.
func (h *Hub) BroadcastCard(card *models.BingoCard) {
	for _, c := range h.clients(card.GameID) {
		if c.sessionID == card.SessionID {
			c.enqueue(Message{Type: msgCard, Card: card})
		}
	}
}

// NotifyParticipants pushes the refreshed participant list to every client of
// the game, e.g. after a join lands over REST.
func (h *Hub) NotifyParticipants(gameID string) {
	h.broadcastParticipants(gameID)
}

func (h *Hub) broadcastParticipants(gameID string) {
	users, err := h.store.ListParticipants(context.Background(), gameID)
	if err != nil {
		logger.Errorf("game %s: participant list fetch failed: %v", gameID, err)
		return
	}
	msg := Message{Type: msgParticipants, Participants: users}
	for _, c := range h.clients(gameID) {
		c.enqueue(msg)
	}
}

func encode(msg Message) []byte {
	b, err := json.Marshal(msg)
	if err != nil {
		logger.Errorf("message marshal failed: %v", err)
		return nil
	}
	return b
}

// classificationMessages turns a mark result into the frames a client should
// receive after its card changed.
func classificationMessages(card *models.BingoCard, res game.MarkResult) []Message {
	msgs := []Message{{Type: msgCard, Card: card}}
	if res.Bingo {
		msgs = append(msgs, Message{Type: msgBingo})
	} else if res.Reach {
		msgs = append(msgs, Message{Type: msgReach, Missing: res.Missing})
	}
	return msgs
}
