package card

import (
	"context"
	"errors"
	"time"
)

// Card is a single task on the board.
type Card struct {
	ID          int64
	Title       string
	Description string
	Date        time.Time
	Status      string
	Priority    string
}

// Well-known statuses used by the seed data.
const (
	StatusToDo    = "To Do"
	StatusOngoing = "Ongoing"
)

var ErrNotFound = errors.New("card not found")

// Repository is the port to card storage.
type Repository interface {
	// List returns cards ordered by priority, then title. limit <= 0 means no limit.
	List(ctx context.Context, limit, offset int) ([]Card, error)
	First(ctx context.Context) (Card, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CreateMany(ctx context.Context, cards []Card) error
}
