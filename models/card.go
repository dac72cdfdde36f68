package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/AkaakuHub/moshi-bingo/game"
)

// BingoCard is a participant's generated 5x5 card. SessionID is an opaque
// per-browser identifier; the (game_id, session_id) uniqueness constraint is
// what makes card creation idempotent across reloads. HasBingo is monotonic:
// it only ever transitions false to true.
type BingoCard struct {
	ID          string                         `gorm:"primaryKey;size:36" json:"id"`
	UserID      string                         `gorm:"size:36;not null" json:"user_id"`
	GameID      string                         `gorm:"size:36;not null;uniqueIndex:idx_cards_game_session" json:"game_id"`
	SessionID   string                         `gorm:"size:36;not null;uniqueIndex:idx_cards_game_session" json:"session_id"`
	Numbers     datatypes.JSONType[game.Grid]  `json:"numbers"`
	MarkedCells datatypes.JSONType[game.Marks] `json:"marked_cells"`
	HasBingo    bool                           `gorm:"not null;default:false" json:"has_bingo"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}

// Grid returns the card's numbers as a value grid.
func (c *BingoCard) Grid() game.Grid {
	return c.Numbers.Data()
}

// Marks returns the card's marking state as a value grid.
func (c *BingoCard) Marks() game.Marks {
	return c.MarkedCells.Data()
}
