package supportrepo

import (
	"context"
	"database/sql"

	"vtunigeria/model"
)

type Repo interface {
	Insert(ctx context.Context, t *model.SupportTicket) error
	ListByUser(ctx context.Context, userID int64) ([]model.SupportTicket, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, t *model.SupportTicket) error {
	const q = `
INSERT INTO support_tickets (user_id, subject, message, status)
VALUES ($1,$2,$3,'OPEN')
RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, t.UserID, t.Subject, t.Message).Scan(&t.ID, &t.CreatedAt)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.SupportTicket, error) {
	const q = `
SELECT id, user_id, subject, message, status, created_at
FROM support_tickets
WHERE user_id=$1
ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SupportTicket
	for rows.Next() {
		var t model.SupportTicket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Message, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
