package orderrepo

import (
	"context"
	"database/sql"

	"vtunigeria/model"
)

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, o *model.Order) error
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	const q = `
INSERT INTO orders (user_id, category, provider, item_code, recipient, amount, status, token, reference, description)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id, created_at`
	return tx.QueryRowContext(ctx, q,
		o.UserID, o.Category, o.Provider, o.ItemCode, o.Recipient, o.Amount, o.Status, o.Token, o.Reference, o.Description,
	).Scan(&o.ID, &o.CreatedAt)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const q = `
SELECT id, user_id, category, provider, item_code, recipient, amount, status, token, reference, description, created_at
FROM orders
WHERE user_id=$1
ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Category, &o.Provider, &o.ItemCode, &o.Recipient, &o.Amount, &o.Status, &o.Token, &o.Reference, &o.Description, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orders WHERE user_id=$1`, userID).Scan(&n)
	return n, err
}
