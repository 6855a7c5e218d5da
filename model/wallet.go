package model

import "time"

type TxType string

const (
	TxCredit TxType = "credit"
	TxDebit  TxType = "debit"
)

type TxStatus string

const (
	TxSuccess TxStatus = "success"
	// Reserved for gateway-confirmed flows; the ledger itself only ever
	// records success rows. See wallet_topups and orders for the
	// pending/failed lifecycles.
	TxPending TxStatus = "pending"
	TxFailed  TxStatus = "failed"
)

// Transaction is one append-only ledger entry. BalanceAfter checkpoints the
// wallet balance as of this entry.
type Transaction struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Type         TxType    `json:"type"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	Status       TxStatus  `json:"status"`
	Reference    string    `json:"reference,omitempty"`
	BalanceAfter float64   `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

type TopupStatus string

const (
	TopupPending TopupStatus = "PENDING"
	TopupPaid    TopupStatus = "PAID"
	TopupExpired TopupStatus = "EXPIRED"
	TopupFailed  TopupStatus = "FAILED"
)

type WalletTopup struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	Amount      float64     `json:"amount"`
	Status      TopupStatus `json:"status"`
	Reference   string      `json:"reference"`
	PaymentLink string      `json:"payment_link,omitempty"`
	ExpiresAt   *time.Time  `json:"expires_at,omitempty"`
	PaidAt      *time.Time  `json:"paid_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// FundReq represents a wallet funding request; minimum funding is ₦100.
type FundReq struct {
	Amount float64 `json:"amount" validate:"required,gte=100"`
}
