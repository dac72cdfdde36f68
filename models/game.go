package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// Game is one bingo session. DrawnNumbers is the append-only ledger of drawn
// numbers; CurrentNumber mirrors its last element and is null before the
// first draw. Only the host's draw path ever mutates either.
type Game struct {
	ID            string                    `gorm:"primaryKey;size:36" json:"id"`
	Name          string                    `gorm:"not null" json:"name"`
	Status        string                    `gorm:"not null;default:waiting" json:"status"`
	CurrentNumber *int                      `json:"current_number"`
	DrawnNumbers  datatypes.JSONType[[]int] `json:"drawn_numbers"`
	HostID        *string                   `gorm:"size:36" json:"host_id"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// Drawn returns the ledger as a plain slice.
func (g *Game) Drawn() []int {
	return g.DrawnNumbers.Data()
}
