package models

import "time"

const (
	RoleHost        = "host"
	RoleParticipant = "participant"
)

// User is one display name inside one game. A user row may be recreated when
// a browser reloads; cards re-associate through their session id instead.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Role      string    `gorm:"not null" json:"role"`
	GameID    string    `gorm:"size:36;index" json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}
