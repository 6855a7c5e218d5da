package auth

import (
	"context"
	"database/sql"
	"errors"

	"vtunigeria/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	ByReferralCode(ctx context.Context, code string) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, name, phone string) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const userCols = `id, name, email, phone, password_hash, role, verified, status, balance, referral_code, referred_by, created_at`

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(name, email, phone, password_hash, role, verified, status, referral_code, referred_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at`,
		u.Name, u.Email, u.Phone, u.PasswordHash, u.Role, u.Verified, u.Status, u.ReferralCode, u.ReferredBy,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.one(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE lower(email) = lower($1)`, email)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return r.one(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE id = $1`, id)
}

func (r *repo) ByReferralCode(ctx context.Context, code string) (*model.User, error) {
	return r.one(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE referral_code = $1`, code)
}

// one returns (nil, nil) when no user matches.
func (r *repo) one(ctx context.Context, q string, arg any) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role,
		&u.Verified, &u.Status, &u.Balance, &u.ReferralCode, &u.ReferredBy, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET name=$2, phone=$3 WHERE id=$1`, id, name, phone)
	return err
}
