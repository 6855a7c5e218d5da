package adminrepo

import (
	"context"
	"database/sql"
	"errors"

	"vtunigeria/model"
)

type Repo interface {
	Stats(ctx context.Context) (*model.AdminStats, error)
	RecentUsers(ctx context.Context, limit int) ([]model.User, error)
	SetUserStatus(ctx context.Context, userID int64, status string) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Stats(ctx context.Context) (*model.AdminStats, error) {
	// Revenue is the sum of fulfilled orders, not wallet movement.
	const q = `
SELECT
	(SELECT count(*) FROM users),
	(SELECT count(*) FROM users WHERE status='ACTIVE'),
	(SELECT count(*) FROM transactions),
	(SELECT COALESCE(sum(amount), 0) FROM orders WHERE status='SUCCESS')`
	s := &model.AdminStats{}
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.TotalUsers, &s.ActiveUsers, &s.TotalTransactions, &s.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) RecentUsers(ctx context.Context, limit int) ([]model.User, error) {
	const q = `
SELECT id, name, email, phone, role, verified, status, created_at
FROM users
ORDER BY id DESC
LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Verified, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) SetUserStatus(ctx context.Context, userID int64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET status=$2 WHERE id=$1`, userID, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("user not found")
	}
	return nil
}
