package card

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// UseCase covers the read endpoints and the maintenance actions on cards.
type UseCase interface {
	List(ctx context.Context, limit, offset int) ([]Card, error)
	First(ctx context.Context) (Card, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Seed(ctx context.Context) ([]Card, error)
}

type service struct {
	repo  Repository
	today func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, today: func() time.Time { return time.Now().UTC() }}
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Card, error) {
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *service) First(ctx context.Context) (Card, error) {
	return s.repo.First(ctx)
}

func (s *service) CountByStatus(ctx context.Context, status string) (int64, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return 0, ErrValidation("status is required")
	}
	return s.repo.CountByStatus(ctx, status)
}

func (s *service) Seed(ctx context.Context) ([]Card, error) {
	cards := SeedCards(s.today())
	if err := s.repo.CreateMany(ctx, cards); err != nil {
		return nil, fmt.Errorf("seed cards: %w", err)
	}
	return cards, nil
}

// SeedCards returns the starter board, every card dated on day.
func SeedCards(day time.Time) []Card {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return []Card{
		{Title: "Start the project", Description: "Stage 1 - Create the database", Status: StatusToDo, Priority: "High", Date: d},
		{Title: "SQLAlchemy", Description: "Stage 2 - Integrate ORM", Status: StatusOngoing, Priority: "High", Date: d},
		{Title: "ORM Queries", Description: "Stage 3 - Implement several queries", Status: StatusOngoing, Priority: "Medium", Date: d},
		{Title: "Marshmallow", Description: "Stage 4 - Implement Marshmallow to jsonify models", Status: StatusOngoing, Priority: "Medium", Date: d},
	}
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
