package purchase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vtunigeria/model"
	"vtunigeria/repository/vtuprov"
)

type ErrCode string

const (
	ErrUnknownNetwork      ErrCode = "UNKNOWN_NETWORK"
	ErrUnknownProvider     ErrCode = "UNKNOWN_PROVIDER"
	ErrPlanNotFound        ErrCode = "PLAN_NOT_FOUND"
	ErrInvalidAmount       ErrCode = "INVALID_AMOUNT"
	ErrInsufficientBalance ErrCode = "INSUFFICIENT_BALANCE"
	ErrProviderFailed      ErrCode = "PROVIDER_FAILED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const minAirtime = 50

// Catalog is the slice of the catalog repository used to price purchases.
type Catalog interface {
	Network(ctx context.Context, id string) (*model.Network, error)
	DataPlan(ctx context.Context, id string) (*model.DataPlan, error)
	TVProvider(ctx context.Context, id string) (*model.TVProvider, error)
	TVPlan(ctx context.Context, id string) (*model.TVPlan, error)
	Disco(ctx context.Context, id string) (*model.Disco, error)
	ExamService(ctx context.Context, id string) (*model.ExamService, error)
}

// Wallet is the slice of the wallet repository used for the atomic debit.
type Wallet interface {
	GetBalance(ctx context.Context, userID int64) (float64, error)
	GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (float64, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, userID int64, newBalance float64) error
	InsertTransaction(ctx context.Context, tx *sql.Tx, t *model.Transaction) error
}

type Orders interface {
	Insert(ctx context.Context, tx *sql.Tx, o *model.Order) error
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
}

type Service interface {
	BuyAirtime(ctx context.Context, userID int64, req model.AirtimeReq) (*model.Order, error)
	BuyData(ctx context.Context, userID int64, req model.DataReq) (*model.Order, error)
	PayTV(ctx context.Context, userID int64, req model.TVReq) (*model.Order, error)
	PayElectricity(ctx context.Context, userID int64, req model.ElectricityReq) (*model.Order, error)
	BuyExamPin(ctx context.Context, userID int64, req model.EducationReq) (*model.Order, error)

	ValidateSmartCard(ctx context.Context, provider, card string) (*vtuprov.CustomerInfo, error)
	ValidateMeter(ctx context.Context, disco, meter string) (*vtuprov.CustomerInfo, error)

	History(ctx context.Context, userID int64) ([]model.Order, error)
}

type service struct {
	db  *sql.DB
	cat Catalog
	w   Wallet
	o   Orders
	p   vtuprov.Repo
}

func New(db *sql.DB, cat Catalog, w Wallet, o Orders, p vtuprov.Repo) Service {
	return &service{db: db, cat: cat, w: w, o: o, p: p}
}

func (s *service) BuyAirtime(ctx context.Context, userID int64, req model.AirtimeReq) (*model.Order, error) {
	if req.Amount < minAirtime {
		return nil, makeErr(ErrInvalidAmount)
	}
	n, err := s.cat.Network(ctx, req.Network)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, makeErr(ErrUnknownNetwork)
	}

	desc := fmt.Sprintf("%s Airtime Purchase - %s", strings.ToUpper(n.ID), req.Phone)
	return s.fulfil(ctx, userID, &model.Order{
		Category:    model.OrderAirtime,
		Provider:    n.ID,
		Recipient:   req.Phone,
		Amount:      req.Amount,
		Description: desc,
	})
}

func (s *service) BuyData(ctx context.Context, userID int64, req model.DataReq) (*model.Order, error) {
	plan, err := s.cat.DataPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.NetworkID != req.Network {
		return nil, makeErr(ErrPlanNotFound)
	}

	desc := fmt.Sprintf("%s %s Data Bundle - %s", strings.ToUpper(plan.NetworkID), plan.Size, req.Phone)
	return s.fulfil(ctx, userID, &model.Order{
		Category:    model.OrderData,
		Provider:    plan.NetworkID,
		ItemCode:    plan.ID,
		Recipient:   req.Phone,
		Amount:      plan.Price,
		Description: desc,
	})
}

func (s *service) PayTV(ctx context.Context, userID int64, req model.TVReq) (*model.Order, error) {
	plan, err := s.cat.TVPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.ProviderID != req.Provider {
		return nil, makeErr(ErrPlanNotFound)
	}

	desc := fmt.Sprintf("%s %s Subscription - %s", strings.ToUpper(plan.ProviderID), plan.Name, req.SmartCard)
	return s.fulfil(ctx, userID, &model.Order{
		Category:    model.OrderTV,
		Provider:    plan.ProviderID,
		ItemCode:    plan.ID,
		Recipient:   req.SmartCard,
		Amount:      plan.Price,
		Description: desc,
	})
}

func (s *service) PayElectricity(ctx context.Context, userID int64, req model.ElectricityReq) (*model.Order, error) {
	if req.Amount <= 0 {
		return nil, makeErr(ErrInvalidAmount)
	}
	d, err := s.cat.Disco(ctx, req.Disco)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, makeErr(ErrUnknownProvider)
	}

	desc := fmt.Sprintf("%s Electricity - %s (%s)", d.Name, req.MeterNumber, req.MeterType)
	return s.fulfil(ctx, userID, &model.Order{
		Category:    model.OrderElectricity,
		Provider:    d.ID,
		ItemCode:    req.MeterType,
		Recipient:   req.MeterNumber,
		Amount:      req.Amount,
		Description: desc,
	})
}

func (s *service) BuyExamPin(ctx context.Context, userID int64, req model.EducationReq) (*model.Order, error) {
	svc, err := s.cat.ExamService(ctx, req.Service)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, makeErr(ErrUnknownProvider)
	}

	desc := fmt.Sprintf("%s - %s (%d)", svc.Name, req.ExamNumber, req.ExamYear)
	return s.fulfil(ctx, userID, &model.Order{
		Category:    model.OrderEducation,
		Provider:    svc.ID,
		Recipient:   req.ExamNumber,
		Amount:      svc.Price,
		Description: desc,
	})
}

// fulfil runs the shared purchase flow: cheap balance pre-check, provider
// delivery, then debit + order insert in one DB transaction. The FOR UPDATE
// re-check inside the transaction is what actually enforces no-overdraft.
func (s *service) fulfil(ctx context.Context, userID int64, o *model.Order) (out *model.Order, err error) {
	bal, err := s.w.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if o.Amount > bal {
		return nil, makeErr(ErrInsufficientBalance)
	}

	o.UserID = userID
	o.Reference = fmt.Sprintf("REF-%d", time.Now().UnixMilli())

	dres, err := s.p.Deliver(ctx, vtuprov.DeliverReq{
		Category:  o.Category,
		Provider:  o.Provider,
		ItemCode:  o.ItemCode,
		Recipient: o.Recipient,
		Amount:    o.Amount,
		Reference: o.Reference,
	})
	if err != nil {
		return nil, makeErr(ErrProviderFailed)
	}
	o.Token = dres.Token

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cur, err := s.w.GetBalanceForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if o.Amount > cur {
		err = makeErr(ErrInsufficientBalance)
		return nil, err
	}
	newBal := cur - o.Amount
	if err = s.w.UpdateBalance(ctx, tx, userID, newBal); err != nil {
		return nil, err
	}
	if err = s.w.InsertTransaction(ctx, tx, &model.Transaction{
		UserID:       userID,
		Type:         model.TxDebit,
		Amount:       o.Amount,
		Description:  o.Description,
		Status:       model.TxSuccess,
		Reference:    o.Reference,
		BalanceAfter: newBal,
	}); err != nil {
		return nil, err
	}

	o.Status = model.OrderSuccess
	if err = s.o.Insert(ctx, tx, o); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ValidateSmartCard(ctx context.Context, provider, card string) (*vtuprov.CustomerInfo, error) {
	p, err := s.cat.TVProvider(ctx, provider)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, makeErr(ErrUnknownProvider)
	}
	return s.p.ValidateCustomer(ctx, provider, card)
}

func (s *service) ValidateMeter(ctx context.Context, disco, meter string) (*vtuprov.CustomerInfo, error) {
	d, err := s.cat.Disco(ctx, disco)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, makeErr(ErrUnknownProvider)
	}
	return s.p.ValidateCustomer(ctx, disco, meter)
}

func (s *service) History(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.o.ListByUser(ctx, userID)
}
