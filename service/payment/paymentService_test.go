package paymentsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	paystackrepo "vtunigeria/repository/paystack"
	referralrepo "vtunigeria/repository/referral"
	walletrepo "vtunigeria/repository/wallet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	verifyErr error
}

func (m *mockGateway) InitTransaction(req paystackrepo.InitTransactionReq) (*paystackrepo.InitTransactionResp, error) {
	return nil, errors.New("not used")
}

func (m *mockGateway) VerifyWebhookSignature(sigHeader string, rawBody []byte) error {
	return m.verifyErr
}

func newService(t *testing.T, gw paystackrepo.Repo) (Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, gw, walletrepo.New(db), referralrepo.New(db)), mock
}

func topupRows(status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "amount", "status", "reference", "payment_link", "expires_at", "paid_at", "created_at",
	}).AddRow(int64(7), int64(1), 5000.0, status, "topup-1-99", "https://checkout.paystack.com/x", now.Add(time.Hour), nil, now)
}

func emptyReferralRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "referrer_id", "referee_id", "bonus", "status", "created_at", "paid_at",
	})
}

func TestHandlePaystack_BadSignature(t *testing.T) {
	svc, _ := newService(t, &mockGateway{verifyErr: errors.New("signature mismatch")})

	err := svc.HandlePaystack(context.Background(), "deadbeef", []byte(`{"event":"charge.success"}`))
	require.Error(t, err)
}

func TestHandlePaystack_IgnoresOtherEvents(t *testing.T) {
	svc, mock := newService(t, &mockGateway{})

	err := svc.HandlePaystack(context.Background(), "sig", []byte(`{"event":"transfer.success","data":{"reference":"x"}}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePaystack_ChargeSuccess_CreditsWallet(t *testing.T) {
	svc, mock := newService(t, &mockGateway{})

	mock.ExpectQuery("SELECT id, user_id, amount, status, reference").
		WithArgs("topup-1-99").
		WillReturnRows(topupRows("PENDING"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallet_topups").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT balance FROM users").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(15000.0))
	mock.ExpectExec("UPDATE users SET balance").
		WithArgs(int64(1), 20000.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), "credit", 5000.0, "Wallet Funding via Paystack", "success", "topup-1-99", 20000.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(21), time.Now()))
	mock.ExpectQuery("SELECT id, referrer_id, referee_id, bonus").
		WithArgs(int64(1)).
		WillReturnRows(emptyReferralRows())
	mock.ExpectCommit()

	err := svc.HandlePaystack(context.Background(), "sig",
		[]byte(`{"event":"charge.success","data":{"reference":"topup-1-99","amount":500000,"status":"success"}}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePaystack_Redelivery_IsIdempotent(t *testing.T) {
	svc, mock := newService(t, &mockGateway{})

	mock.ExpectQuery("SELECT id, user_id, amount, status, reference").
		WithArgs("topup-1-99").
		WillReturnRows(topupRows("PAID"))

	// Already credited: the redelivery is acknowledged with no writes.
	err := svc.HandlePaystack(context.Background(), "sig",
		[]byte(`{"event":"charge.success","data":{"reference":"topup-1-99","amount":500000,"status":"success"}}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePaystack_AmountMismatch(t *testing.T) {
	svc, mock := newService(t, &mockGateway{})

	mock.ExpectQuery("SELECT id, user_id, amount, status, reference").
		WithArgs("topup-1-99").
		WillReturnRows(topupRows("PENDING"))

	// Topup expects 5000 naira = 500000 kobo; the charge says 100000.
	err := svc.HandlePaystack(context.Background(), "sig",
		[]byte(`{"event":"charge.success","data":{"reference":"topup-1-99","amount":100000,"status":"success"}}`))
	require.Error(t, err)
}

func TestHandlePaystack_FirstFunding_PaysReferrerBonus(t *testing.T) {
	svc, mock := newService(t, &mockGateway{})

	mock.ExpectQuery("SELECT id, user_id, amount, status, reference").
		WithArgs("topup-1-99").
		WillReturnRows(topupRows("PENDING"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallet_topups").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT balance FROM users").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(500.0))
	mock.ExpectExec("UPDATE users SET balance").
		WithArgs(int64(1), 5500.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), "credit", 5000.0, "Wallet Funding via Paystack", "success", "topup-1-99", 5500.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(30), time.Now()))

	now := time.Now()
	mock.ExpectQuery("SELECT id, referrer_id, referee_id, bonus").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "referrer_id", "referee_id", "bonus", "status", "created_at", "paid_at",
		}).AddRow(int64(3), int64(9), int64(1), 500.0, "PENDING", now, nil))

	mock.ExpectExec("UPDATE referrals").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT balance FROM users").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(2000.0))
	mock.ExpectExec("UPDATE users SET balance").
		WithArgs(int64(9), 2500.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(9), "credit", 500.0, "Referral Bonus - user #1 activated", "success", "", 2500.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(31), time.Now()))
	mock.ExpectCommit()

	err := svc.HandlePaystack(context.Background(), "sig",
		[]byte(`{"event":"charge.success","data":{"reference":"topup-1-99","amount":500000,"status":"success"}}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
