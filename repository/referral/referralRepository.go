package referralrepo

import (
	"context"
	"database/sql"
	"errors"

	"vtunigeria/model"
)

type Repo interface {
	Insert(ctx context.Context, referrerID, refereeID int64, bonus float64) error
	PendingByReferee(ctx context.Context, refereeID int64) (*model.Referral, error)
	MarkPaid(ctx context.Context, tx *sql.Tx, id int64) error
	Stats(ctx context.Context, referrerID int64) (*model.ReferralStats, error)
	History(ctx context.Context, referrerID int64) ([]model.ReferralRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, referrerID, refereeID int64, bonus float64) error {
	const q = `
INSERT INTO referrals (referrer_id, referee_id, bonus, status)
VALUES ($1,$2,$3,'PENDING')`
	_, err := r.db.ExecContext(ctx, q, referrerID, refereeID, bonus)
	return err
}

func (r *repo) PendingByReferee(ctx context.Context, refereeID int64) (*model.Referral, error) {
	const q = `
SELECT id, referrer_id, referee_id, bonus, status, created_at, paid_at
FROM referrals
WHERE referee_id=$1 AND status='PENDING'`
	ref := &model.Referral{}
	err := r.db.QueryRowContext(ctx, q, refereeID).Scan(
		&ref.ID, &ref.ReferrerID, &ref.RefereeID, &ref.Bonus, &ref.Status, &ref.CreatedAt, &ref.PaidAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *repo) MarkPaid(ctx context.Context, tx *sql.Tx, id int64) error {
	const q = `
UPDATE referrals
SET status='PAID', paid_at=NOW()
WHERE id=$1 AND status='PENDING'`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("referral not pending or not found")
	}
	return nil
}

func (r *repo) Stats(ctx context.Context, referrerID int64) (*model.ReferralStats, error) {
	const q = `
SELECT
	count(*),
	count(*) FILTER (WHERE status='PAID'),
	COALESCE(sum(bonus) FILTER (WHERE status='PAID'), 0),
	COALESCE(sum(bonus) FILTER (WHERE status='PENDING'), 0)
FROM referrals
WHERE referrer_id=$1`
	s := &model.ReferralStats{}
	err := r.db.QueryRowContext(ctx, q, referrerID).Scan(
		&s.TotalReferrals, &s.ActiveReferrals, &s.TotalEarnings, &s.PendingEarnings,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) History(ctx context.Context, referrerID int64) ([]model.ReferralRow, error) {
	const q = `
SELECT u.name, u.email, u.created_at, ref.status, ref.bonus
FROM referrals ref
JOIN users u ON u.id = ref.referee_id
WHERE ref.referrer_id=$1
ORDER BY ref.id DESC`
	rows, err := r.db.QueryContext(ctx, q, referrerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReferralRow
	for rows.Next() {
		var row model.ReferralRow
		if err := rows.Scan(&row.Name, &row.Email, &row.JoinDate, &row.Status, &row.Earnings); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
