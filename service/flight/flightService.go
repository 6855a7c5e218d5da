package flight

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vtunigeria/model"
	catalogrepo "vtunigeria/repository/catalog"
)

type ErrCode string

const (
	ErrUnknownCity         ErrCode = "UNKNOWN_CITY"
	ErrSameCity            ErrCode = "SAME_CITY"
	ErrFlightNotFound      ErrCode = "FLIGHT_NOT_FOUND"
	ErrInsufficientBalance ErrCode = "INSUFFICIENT_BALANCE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Wallet is the slice of the wallet repository a booking debits through.
type Wallet interface {
	GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (float64, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, userID int64, newBalance float64) error
	InsertTransaction(ctx context.Context, tx *sql.Tx, t *model.Transaction) error
}

type Orders interface {
	Insert(ctx context.Context, tx *sql.Tx, o *model.Order) error
}

type Service interface {
	Cities(ctx context.Context) ([]model.City, error)
	Search(ctx context.Context, req model.FlightSearchReq) ([]model.Flight, error)
	Book(ctx context.Context, userID int64, req model.FlightBookReq) (*model.Order, error)
}

type service struct {
	db  *sql.DB
	cat catalogrepo.Repo
	w   Wallet
	o   Orders
}

func New(db *sql.DB, cat catalogrepo.Repo, w Wallet, o Orders) Service {
	return &service{db: db, cat: cat, w: w, o: o}
}

func (s *service) Cities(ctx context.Context) ([]model.City, error) {
	return s.cat.Cities(ctx)
}

func (s *service) Search(ctx context.Context, req model.FlightSearchReq) ([]model.Flight, error) {
	if req.From == req.To {
		return nil, makeErr(ErrSameCity)
	}
	for _, code := range []string{req.From, req.To} {
		c, err := s.cat.City(ctx, code)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, makeErr(ErrUnknownCity)
		}
	}
	return s.cat.SearchFlights(ctx, req.From, req.To)
}

// Book debits price x passengers and records the order atomically.
func (s *service) Book(ctx context.Context, userID int64, req model.FlightBookReq) (out *model.Order, err error) {
	f, err := s.cat.Flight(ctx, req.FlightID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, makeErr(ErrFlightNotFound)
	}

	total := f.Price * float64(req.Passengers)
	desc := fmt.Sprintf("%s Flight %s - %s", f.Airline, f.Origin, f.Destination)
	reference := fmt.Sprintf("REF-%d", time.Now().UnixMilli())

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
	if total > cur {
		err = makeErr(ErrInsufficientBalance)
		return nil, err
	}
	newBal := cur - total
	if err = s.w.UpdateBalance(ctx, tx, userID, newBal); err != nil {
		return nil, err
	}
	if err = s.w.InsertTransaction(ctx, tx, &model.Transaction{
		UserID:       userID,
		Type:         model.TxDebit,
		Amount:       total,
		Description:  desc,
		Status:       model.TxSuccess,
		Reference:    reference,
		BalanceAfter: newBal,
	}); err != nil {
		return nil, err
	}

	o := &model.Order{
		UserID:      userID,
		Category:    model.OrderFlight,
		Provider:    f.Airline,
		ItemCode:    fmt.Sprintf("%d", f.ID),
		Recipient:   fmt.Sprintf("%d passenger(s)", req.Passengers),
		Amount:      total,
		Status:      model.OrderSuccess,
		Reference:   reference,
		Description: desc,
	}
	if err = s.o.Insert(ctx, tx, o); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}
