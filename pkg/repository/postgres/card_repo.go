package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/artem13815/trello/pkg/card"
)

// CardRepository stores cards in PostgreSQL.
type CardRepository struct {
	pool DB
}

func NewCardRepository(pool DB) *CardRepository {
	return &CardRepository{pool: pool}
}

const cardColumns = `id, title, description, date, status, priority`

func (r *CardRepository) List(ctx context.Context, limit, offset int) ([]card.Card, error) {
	// LIMIT NULL means no limit in PostgreSQL.
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := r.pool.Query(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY priority, title, id LIMIT $1 OFFSET $2`, lim, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]card.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CardRepository) First(ctx context.Context) (card.Card, error) {
	c, err := scanCard(r.pool.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY id LIMIT 1`))
	if errors.Is(err, pgx.ErrNoRows) {
		return card.Card{}, card.ErrNotFound
	}
	return c, err
}

func (r *CardRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM cards WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (r *CardRepository) CreateMany(ctx context.Context, cards []card.Card) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := insertCards(ctx, tx, cards); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func insertCards(ctx context.Context, tx pgx.Tx, cards []card.Card) error {
	for i := range cards {
		c := &cards[i]
		err := tx.QueryRow(ctx, `
INSERT INTO cards (title, description, date, status, priority)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`, strings.TrimSpace(c.Title), c.Description, pgtype.Date{Time: c.Date, Valid: !c.Date.IsZero()}, c.Status, c.Priority).Scan(&c.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanCard(row pgx.Row) (card.Card, error) {
	var c card.Card
	var date pgtype.Date
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &date, &c.Status, &c.Priority); err != nil {
		return card.Card{}, err
	}
	if date.Valid {
		c.Date = date.Time
	}
	return c, nil
}
