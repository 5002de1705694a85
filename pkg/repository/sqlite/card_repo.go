package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/artem13815/trello/pkg/card"
)

const dateLayout = "2006-01-02"

// CardRepository stores cards in SQLite; dates are kept as YYYY-MM-DD text.
type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = `id, title, description, date, status, priority`

type scanner interface {
	Scan(dest ...any) error
}

func (r *CardRepository) List(ctx context.Context, limit, offset int) ([]card.Card, error) {
	// A negative LIMIT means no limit in SQLite.
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY priority, title, id LIMIT ? OFFSET ?`, limit, offset)
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
	c, err := scanCard(r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY id LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return card.Card{}, card.ErrNotFound
	}
	return c, err
}

func (r *CardRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM cards WHERE status = ?`, status).Scan(&n)
	return n, err
}

func (r *CardRepository) CreateMany(ctx context.Context, cards []card.Card) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i := range cards {
		c := &cards[i]
		var date sql.NullString
		if !c.Date.IsZero() {
			date = sql.NullString{String: c.Date.Format(dateLayout), Valid: true}
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO cards (title, description, date, status, priority)
VALUES (?, ?, ?, ?, ?)
`, strings.TrimSpace(c.Title), c.Description, date, c.Status, c.Priority)
		if err != nil {
			return err
		}
		if c.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanCard(row scanner) (card.Card, error) {
	var c card.Card
	var date sql.NullString
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &date, &c.Status, &c.Priority); err != nil {
		return card.Card{}, err
	}
	if date.Valid && date.String != "" {
		d, err := time.Parse(dateLayout, date.String)
		if err != nil {
			return card.Card{}, err
		}
		c.Date = d
	}
	return c, nil
}
