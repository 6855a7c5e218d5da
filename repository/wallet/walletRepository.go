package walletrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vtunigeria/model"
)

type Repo interface {
	GetBalance(ctx context.Context, userID int64) (float64, error)
	GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (float64, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, userID int64, newBalance float64) error
	InsertTransaction(ctx context.Context, tx *sql.Tx, t *model.Transaction) error
	ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error)
	ListAllTransactions(ctx context.Context, limit int) ([]model.Transaction, error)

	InsertTopup(ctx context.Context, tx *sql.Tx, userID int64, amount float64, reference, link string, expires time.Time) (int64, error)
	FindTopupByReference(ctx context.Context, reference string) (*model.WalletTopup, error)
	MarkTopupPaid(ctx context.Context, tx *sql.Tx, topupID int64) error
	ExpireStaleTopups(ctx context.Context, now time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) GetBalance(ctx context.Context, userID int64) (float64, error) {
	const q = `SELECT balance FROM users WHERE id=$1`
	var bal float64
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&bal); err != nil {
		return 0, err
	}
	return bal, nil
}

// GetBalanceForUpdate locks the wallet row so the balance check and the
// mutation behave as one atomic operation under concurrent debits.
func (r *repo) GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (float64, error) {
	const q = `SELECT balance FROM users WHERE id=$1 FOR UPDATE`
	var bal float64
	if err := tx.QueryRowContext(ctx, q, userID).Scan(&bal); err != nil {
		return 0, err
	}
	return bal, nil
}

func (r *repo) UpdateBalance(ctx context.Context, tx *sql.Tx, userID int64, newBalance float64) error {
	const q = `UPDATE users SET balance=$2 WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, userID, newBalance)
	return err
}

func (r *repo) InsertTransaction(ctx context.Context, tx *sql.Tx, t *model.Transaction) error {
	const q = `
INSERT INTO transactions (user_id, type, amount, description, status, reference, balance_after)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, created_at`
	return tx.QueryRowContext(ctx, q,
		t.UserID, t.Type, t.Amount, t.Description, t.Status, t.Reference, t.BalanceAfter,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *repo) ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	const q = `
SELECT id, user_id, type, amount, description, status, reference, balance_after, created_at
FROM transactions
WHERE user_id=$1
ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *repo) ListAllTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	const q = `
SELECT id, user_id, type, amount, description, status, reference, balance_after, created_at
FROM transactions
ORDER BY id DESC
LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.Status, &t.Reference, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repo) InsertTopup(ctx context.Context, tx *sql.Tx, userID int64, amount float64, reference, link string, expires time.Time) (int64, error) {
	const q = `
INSERT INTO wallet_topups (user_id, amount, status, reference, payment_link, expires_at)
VALUES ($1,$2,'PENDING',$3,$4,$5)
RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, userID, amount, reference, link, expires).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) FindTopupByReference(ctx context.Context, reference string) (*model.WalletTopup, error) {
	const q = `
SELECT id, user_id, amount, status, reference, payment_link, expires_at, paid_at, created_at
FROM wallet_topups
WHERE reference=$1`
	t := &model.WalletTopup{}
	err := r.db.QueryRowContext(ctx, q, reference).Scan(
		&t.ID, &t.UserID, &t.Amount, &t.Status, &t.Reference, &t.PaymentLink, &t.ExpiresAt, &t.PaidAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) MarkTopupPaid(ctx context.Context, tx *sql.Tx, topupID int64) error {
	const q = `
UPDATE wallet_topups
SET status='PAID', paid_at=NOW()
WHERE id=$1 AND status='PENDING'`
	res, err := tx.ExecContext(ctx, q, topupID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("topup not pending or not found")
	}
	return nil
}

func (r *repo) ExpireStaleTopups(ctx context.Context, now time.Time) (int64, error) {
	const q = `
UPDATE wallet_topups
SET status='EXPIRED'
WHERE status='PENDING' AND expires_at < $1`
	res, err := r.db.ExecContext(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
