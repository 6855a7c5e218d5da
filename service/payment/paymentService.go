package paymentsvc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"vtunigeria/model"
	paystackrepo "vtunigeria/repository/paystack"
	referralrepo "vtunigeria/repository/referral"
	walletrepo "vtunigeria/repository/wallet"
)

const fundingDescription = "Wallet Funding via Paystack"

type Service interface {
	// HandlePaystack processes a raw webhook delivery. Unknown events are
	// acknowledged and dropped; charge.success credits the wallet exactly
	// once per topup reference.
	HandlePaystack(ctx context.Context, sigHeader string, raw []byte) error
}

type service struct {
	db    *sql.DB
	gw    paystackrepo.Repo
	wRepo walletrepo.Repo
	rRepo referralrepo.Repo
}

func New(db *sql.DB, gw paystackrepo.Repo, w walletrepo.Repo, r referralrepo.Repo) Service {
	return &service{db: db, gw: gw, wRepo: w, rRepo: r}
}

type paystackEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"` // kobo
		Status    string `json:"status"`
	} `json:"data"`
}

func (s *service) HandlePaystack(ctx context.Context, sigHeader string, raw []byte) error {
	if err := s.gw.VerifyWebhookSignature(sigHeader, raw); err != nil {
		return err
	}

	var ev paystackEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("bad webhook json: %w", err)
	}
	if ev.Event == "" {
		return errors.New("missing event type")
	}

	switch ev.Event {
	case "charge.success":
		return s.onPaid(ctx, ev)
	default:
		return nil
	}
}

func (s *service) onPaid(ctx context.Context, ev paystackEvent) (err error) {
	if ev.Data.Reference == "" {
		return errors.New("missing charge reference")
	}

	topup, err := s.wRepo.FindTopupByReference(ctx, ev.Data.Reference)
	if err != nil {
		return fmt.Errorf("charge not mapped to a topup: %w", err)
	}
	if topup.Status == model.TopupPaid {
		// Paystack redelivers webhooks; the first delivery already credited.
		return nil
	}
	if kobo := int64(math.Round(topup.Amount * 100)); ev.Data.Amount != 0 && ev.Data.Amount != kobo {
		return fmt.Errorf("amount mismatch: charged %d kobo, topup expects %d", ev.Data.Amount, kobo)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.wRepo.MarkTopupPaid(ctx, tx, topup.ID); err != nil {
		return err
	}
	if err = s.creditTx(ctx, tx, topup.UserID, topup.Amount, fundingDescription, topup.Reference); err != nil {
		return err
	}

	// First confirmed funding releases the referrer's pending bonus.
	ref, err := s.rRepo.PendingByReferee(ctx, topup.UserID)
	if err != nil {
		return err
	}
	if ref != nil {
		if err = s.rRepo.MarkPaid(ctx, tx, ref.ID); err != nil {
			return err
		}
		desc := fmt.Sprintf("Referral Bonus - user #%d activated", ref.RefereeID)
		if err = s.creditTx(ctx, tx, ref.ReferrerID, ref.Bonus, desc, ""); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *service) creditTx(ctx context.Context, tx *sql.Tx, userID int64, amount float64, description, reference string) error {
	cur, err := s.wRepo.GetBalanceForUpdate(ctx, tx, userID)
	if err != nil {
		return err
	}
	newBal := cur + amount
	if err := s.wRepo.UpdateBalance(ctx, tx, userID, newBal); err != nil {
		return err
	}
	return s.wRepo.InsertTransaction(ctx, tx, &model.Transaction{
		UserID:       userID,
		Type:         model.TxCredit,
		Amount:       amount,
		Description:  description,
		Status:       model.TxSuccess,
		Reference:    reference,
		BalanceAfter: newBal,
	})
}
