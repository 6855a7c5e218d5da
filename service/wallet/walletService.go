package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vtunigeria/model"
	paystackrepo "vtunigeria/repository/paystack"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Repo is the slice of the wallet repository this service needs.
type Repo interface {
	GetBalance(ctx context.Context, userID int64) (float64, error)
	GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (float64, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, userID int64, newBalance float64) error
	InsertTransaction(ctx context.Context, tx *sql.Tx, t *model.Transaction) error
	ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error)
	InsertTopup(ctx context.Context, tx *sql.Tx, userID int64, amount float64, reference, link string, expires time.Time) (int64, error)
}

type Service interface {
	// Credit appends a success credit entry and raises the balance. A blank
	// reference gets a generated one.
	Credit(ctx context.Context, userID int64, amount float64, description, reference string) (*model.Transaction, error)

	// Debit appends a success debit entry and lowers the balance. Returns
	// ErrInsufficientBalance, with no state change, when amount exceeds the
	// current balance.
	Debit(ctx context.Context, userID int64, amount float64, description, reference string) (*model.Transaction, error)

	Balance(ctx context.Context, userID int64) (float64, error)

	// Ledger lists the user's transactions newest first.
	Ledger(ctx context.Context, userID int64) ([]model.Transaction, error)

	// CreateTopup initializes a gateway payment and records a PENDING topup.
	// The wallet is only credited once the gateway webhook confirms it.
	CreateTopup(ctx context.Context, userID int64, email string, amount float64) (*TopupCreated, error)
}

type TopupCreated struct {
	Reference   string    `json:"reference"`
	PaymentLink string    `json:"payment_link"`
	ExpiresAt   time.Time `json:"expires_at"`
}

const topupExpiry = time.Hour

type service struct {
	db *sql.DB
	r  Repo
	gw paystackrepo.Repo
}

func New(db *sql.DB, r Repo, gw paystackrepo.Repo) Service { return &service{db: db, r: r, gw: gw} }

func (s *service) Credit(ctx context.Context, userID int64, amount float64, description, reference string) (t *model.Transaction, err error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if reference == "" {
		reference = newReference()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cur, err := s.r.GetBalanceForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	newBal := cur + amount
	if err = s.r.UpdateBalance(ctx, tx, userID, newBal); err != nil {
		return nil, err
	}

	t = &model.Transaction{
		UserID:       userID,
		Type:         model.TxCredit,
		Amount:       amount,
		Description:  description,
		Status:       model.TxSuccess,
		Reference:    reference,
		BalanceAfter: newBal,
	}
	if err = s.r.InsertTransaction(ctx, tx, t); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Debit(ctx context.Context, userID int64, amount float64, description, reference string) (t *model.Transaction, err error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if reference == "" {
		reference = newReference()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cur, err := s.r.GetBalanceForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if amount > cur {
		err = ErrInsufficientBalance
		return nil, err
	}
	newBal := cur - amount
	if err = s.r.UpdateBalance(ctx, tx, userID, newBal); err != nil {
		return nil, err
	}

	t = &model.Transaction{
		UserID:       userID,
		Type:         model.TxDebit,
		Amount:       amount,
		Description:  description,
		Status:       model.TxSuccess,
		Reference:    reference,
		BalanceAfter: newBal,
	}
	if err = s.r.InsertTransaction(ctx, tx, t); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Balance(ctx context.Context, userID int64) (float64, error) {
	return s.r.GetBalance(ctx, userID)
}

func (s *service) Ledger(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return s.r.ListTransactions(ctx, userID)
}

func (s *service) CreateTopup(ctx context.Context, userID int64, email string, amount float64) (out *TopupCreated, err error) {
	if amount < 100 {
		return nil, ErrInvalidAmount
	}

	reference := fmt.Sprintf("topup-%d-%d", userID, time.Now().UnixNano())
	expires := time.Now().UTC().Add(topupExpiry)

	iv, err := s.gw.InitTransaction(paystackrepo.InitTransactionReq{
		Reference: reference,
		Amount:    amount,
		Email:     email,
	})
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = s.r.InsertTopup(ctx, tx, userID, amount, iv.Reference, iv.AuthorizationURL, expires); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &TopupCreated{Reference: iv.Reference, PaymentLink: iv.AuthorizationURL, ExpiresAt: expires}, nil
}

func newReference() string {
	return fmt.Sprintf("REF-%d", time.Now().UnixMilli())
}
