package services

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/AkaakuHub/moshi-bingo/game"
	"github.com/AkaakuHub/moshi-bingo/models"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

// ErrRoleViolation marks a draw attempt by a non-host. Callers swallow it
// silently: a stray draw action from a participant UI is ignored, not surfaced.
var ErrRoleViolation = errors.New("only the host may draw")

// Drawer commits draws to the ledger. Each game has its own in-flight lock so
// a double-clicked draw control blocks until the first commit resolves instead
// of racing it.
type Drawer struct {
	store *Store
	hub   *Hub

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDrawer(store *Store, hub *Hub) *Drawer {
	return &Drawer{
		store: store,
		hub:   hub,
		locks: make(map[string]*sync.Mutex),
	}
}

func (d *Drawer) gameLock(gameID string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		d.locks[gameID] = l
	}
	return l
}

// Draw picks the next undrawn number for the game and commits it as a single
// atomic ledger append, then broadcasts the new snapshot. The role check
// lives here, not in any UI layer: a non-host caller gets ErrRoleViolation
// and the ledger is untouched.
func (d *Drawer) Draw(ctx context.Context, gameID, userID string) (*models.Game, int, error) {
	lock := d.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	user, err := d.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrRoleViolation
		}
		return nil, 0, err
	}
	if user.Role != models.RoleHost || user.GameID != gameID {
		return nil, 0, ErrRoleViolation
	}

	g, err := d.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, 0, err
	}

	number, err := game.DrawNext(g.Drawn())
	if err != nil {
		return nil, 0, err
	}

	updated, err := d.store.AppendDrawnNumber(ctx, gameID, number)
	if err != nil {
		return nil, 0, err
	}

	logger.Infof("game %s: drew %d (%d/%d)", gameID, number, len(updated.Drawn()), game.PoolSize)
	if d.hub != nil {
		d.hub.BroadcastGame(updated)
	}
	return updated, number, nil
}
