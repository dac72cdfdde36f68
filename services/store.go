package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AkaakuHub/moshi-bingo/game"
	"github.com/AkaakuHub/moshi-bingo/models"
)

// ErrGameNotFound is returned for joins and loads against an unknown game id.
var ErrGameNotFound = errors.New("game not found")

// ErrCardNotFound is returned when no card exists for a lookup.
var ErrCardNotFound = errors.New("card not found")

// Store owns all reads and writes against the relational collaborator.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateGame creates a game row, its host user, and links the two. The game
// starts waiting with an empty ledger.
func (s *Store) CreateGame(ctx context.Context, name, hostName string) (*models.Game, *models.User, error) {
	g := &models.Game{
		ID:           uuid.NewString(),
		Name:         name,
		Status:       models.StatusWaiting,
		DrawnNumbers: datatypes.NewJSONType([]int{}),
	}
	host := &models.User{
		ID:     uuid.NewString(),
		Name:   hostName,
		Role:   models.RoleHost,
		GameID: g.ID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		if err := tx.Create(host).Error; err != nil {
			return err
		}
		g.HostID = &host.ID
		return tx.Model(g).Update("host_id", host.ID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return g, host, nil
}

// JoinGame adds a participant to an existing game.
func (s *Store) JoinGame(ctx context.Context, gameID, name string) (*models.Game, *models.User, error) {
	g, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	u := &models.User{
		ID:     uuid.NewString(),
		Name:   name,
		Role:   models.RoleParticipant,
		GameID: g.ID,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, nil, err
	}
	return g, u, nil
}

func (s *Store) GetGame(ctx context.Context, id string) (*models.Game, error) {
	var g models.Game
	if err := s.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// AppendDrawnNumber commits one number to the game's ledger as a single
// atomic append: the row is locked for the duration, duplicates and overflow
// are rejected, current_number mirrors the new last element, and the status
// moves waiting->playing on the first append and ->finished on the last.
func (s *Store) AppendDrawnNumber(ctx context.Context, gameID string, number int) (*models.Game, error) {
	var g models.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&g, "id = ?", gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}
			return err
		}

		drawn := g.Drawn()
		if len(drawn) >= game.PoolSize {
			return game.ErrExhaustedPool
		}
		for _, n := range drawn {
			if n == number {
				return fmt.Errorf("number %d already drawn for game %s", number, gameID)
			}
		}

		drawn = append(drawn, number)
		g.DrawnNumbers = datatypes.NewJSONType(drawn)
		g.CurrentNumber = &number
		switch {
		case len(drawn) == game.PoolSize:
			g.Status = models.StatusFinished
		case g.Status == models.StatusWaiting:
			g.Status = models.StatusPlaying
		}
		return tx.Save(&g).Error
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateCard is a compare-and-set keyed by (gameID, sessionID): the first
// create wins and every later call for the same pair returns the existing row
// untouched. The uniqueness index on the pair backs this against rapid-reload
// races, so a session never ends up with two cards.
func (s *Store) CreateCard(ctx context.Context, userID, gameID, sessionID string, numbers game.Grid) (*models.BingoCard, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}

	var card *models.BingoCard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.BingoCard
		err := tx.First(&existing, "game_id = ? AND session_id = ?", gameID, sessionID).Error
		if err == nil {
			card = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		card = &models.BingoCard{
			ID:          uuid.NewString(),
			UserID:      userID,
			GameID:      gameID,
			SessionID:   sessionID,
			Numbers:     datatypes.NewJSONType(numbers),
			MarkedCells: datatypes.NewJSONType(game.NewMarks()),
		}
		return tx.Create(card).Error
	})
	if err != nil {
		// A rapid-reload race lost against the uniqueness index; the winner's
		// card is the session's card.
		if existing, ferr := s.GetCardBySession(ctx, gameID, sessionID); ferr == nil {
			return existing, nil
		}
		return nil, err
	}
	return card, nil
}

// GetCardBySession re-associates a returning client with its card.
func (s *Store) GetCardBySession(ctx context.Context, gameID, sessionID string) (*models.BingoCard, error) {
	var card models.BingoCard
	err := s.db.WithContext(ctx).
		First(&card, "game_id = ? AND session_id = ?", gameID, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (s *Store) GetCard(ctx context.Context, id string) (*models.BingoCard, error) {
	var card models.BingoCard
	if err := s.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

// UpdateCard persists a card's marking grid and bingo flag as one logical
// update. has_bingo never goes back from true.
func (s *Store) UpdateCard(ctx context.Context, cardID string, marks game.Marks, hasBingo bool) (*models.BingoCard, error) {
	var card models.BingoCard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&card, "id = ?", cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return err
		}
		card.MarkedCells = datatypes.NewJSONType(marks)
		card.HasBingo = card.HasBingo || hasBingo
		return tx.Save(&card).Error
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// ListParticipants returns a game's participants ordered by join time.
func (s *Store) ListParticipants(ctx context.Context, gameID string) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("game_id = ? AND role = ?", gameID, models.RoleParticipant).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
