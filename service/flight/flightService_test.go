package flight

import (
	"context"
	"database/sql"
	"testing"

	"vtunigeria/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	cities  map[string]model.City
	flights map[int64]model.Flight
}

func (m *mockCatalog) Networks(ctx context.Context) ([]model.Network, error) { return nil, nil }
func (m *mockCatalog) Network(ctx context.Context, id string) (*model.Network, error) {
	return nil, nil
}
func (m *mockCatalog) DataPlans(ctx context.Context, networkID string) ([]model.DataPlan, error) {
	return nil, nil
}
func (m *mockCatalog) DataPlan(ctx context.Context, id string) (*model.DataPlan, error) {
	return nil, nil
}
func (m *mockCatalog) TVProviders(ctx context.Context) ([]model.TVProvider, error) { return nil, nil }
func (m *mockCatalog) TVProvider(ctx context.Context, id string) (*model.TVProvider, error) {
	return nil, nil
}
func (m *mockCatalog) TVPlans(ctx context.Context, providerID string) ([]model.TVPlan, error) {
	return nil, nil
}
func (m *mockCatalog) TVPlan(ctx context.Context, id string) (*model.TVPlan, error) {
	return nil, nil
}
func (m *mockCatalog) Discos(ctx context.Context) ([]model.Disco, error) { return nil, nil }
func (m *mockCatalog) Disco(ctx context.Context, id string) (*model.Disco, error) { return nil, nil }
func (m *mockCatalog) ExamServices(ctx context.Context) ([]model.ExamService, error) {
	return nil, nil
}
func (m *mockCatalog) ExamService(ctx context.Context, id string) (*model.ExamService, error) {
	return nil, nil
}

func (m *mockCatalog) Cities(ctx context.Context) ([]model.City, error) {
	var out []model.City
	for _, c := range m.cities {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCatalog) City(ctx context.Context, code string) (*model.City, error) {
	if c, ok := m.cities[code]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *mockCatalog) SearchFlights(ctx context.Context, origin, destination string) ([]model.Flight, error) {
	var out []model.Flight
	for _, f := range m.flights {
		if f.Origin == origin && f.Destination == destination {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockCatalog) Flight(ctx context.Context, id int64) (*model.Flight, error) {
	if f, ok := m.flights[id]; ok {
		return &f, nil
	}
	return nil, nil
}

type mockWallet struct {
	balance     float64
	updatedTo   *float64
	insertedTxs []model.Transaction
}

func (m *mockWallet) GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (float64, error) {
	return m.balance, nil
}
func (m *mockWallet) UpdateBalance(ctx context.Context, tx *sql.Tx, userID int64, newBalance float64) error {
	m.updatedTo = &newBalance
	return nil
}
func (m *mockWallet) InsertTransaction(ctx context.Context, tx *sql.Tx, t *model.Transaction) error {
	m.insertedTxs = append(m.insertedTxs, *t)
	return nil
}

type mockOrders struct {
	inserted []model.Order
}

func (m *mockOrders) Insert(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	o.ID = int64(len(m.inserted) + 1)
	m.inserted = append(m.inserted, *o)
	return nil
}

func fixtures() *mockCatalog {
	return &mockCatalog{
		cities: map[string]model.City{
			"LOS": {Code: "LOS", Name: "Lagos", Country: "Nigeria"},
			"ABV": {Code: "ABV", Name: "Abuja", Country: "Nigeria"},
		},
		flights: map[int64]model.Flight{
			1: {
				ID: 1, Airline: "Air Peace", Origin: "LOS", Destination: "ABV",
				Departure: "08:30", Arrival: "10:45", Duration: "2h 15m",
				Stops: "Direct", Aircraft: "Boeing 737", Price: 85000,
			},
		},
	}
}

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestSearch_SameCityRejected(t *testing.T) {
	db, _ := newDB(t)
	svc := New(db, fixtures(), &mockWallet{}, &mockOrders{})

	_, err := svc.Search(context.Background(), model.FlightSearchReq{
		TripType: "one-way", From: "LOS", To: "LOS", DepartDate: "2026-10-01", Passengers: 1,
	})
	require.Error(t, err)
	require.Equal(t, ErrSameCity, Code(err))
}

func TestSearch_UnknownCity(t *testing.T) {
	db, _ := newDB(t)
	svc := New(db, fixtures(), &mockWallet{}, &mockOrders{})

	_, err := svc.Search(context.Background(), model.FlightSearchReq{
		TripType: "one-way", From: "LOS", To: "XXX", DepartDate: "2026-10-01", Passengers: 1,
	})
	require.Error(t, err)
	require.Equal(t, ErrUnknownCity, Code(err))
}

func TestSearch_ReturnsRouteFlights(t *testing.T) {
	db, _ := newDB(t)
	svc := New(db, fixtures(), &mockWallet{}, &mockOrders{})

	rows, err := svc.Search(context.Background(), model.FlightSearchReq{
		TripType: "one-way", From: "LOS", To: "ABV", DepartDate: "2026-10-01", Passengers: 2,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Air Peace", rows[0].Airline)
}

func TestBook_DebitsTotalForAllPassengers(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	w := &mockWallet{balance: 200000}
	o := &mockOrders{}
	svc := New(db, fixtures(), w, o)

	order, err := svc.Book(context.Background(), 1, model.FlightBookReq{FlightID: 1, Passengers: 2})
	require.NoError(t, err)
	require.Equal(t, 170000.0, order.Amount)
	require.Equal(t, "Air Peace Flight LOS - ABV", order.Description)
	require.Equal(t, model.OrderFlight, order.Category)

	require.NotNil(t, w.updatedTo)
	require.Equal(t, 30000.0, *w.updatedTo)
	require.Len(t, w.insertedTxs, 1)
	require.Equal(t, model.TxDebit, w.insertedTxs[0].Type)
	require.Len(t, o.inserted, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBook_InsufficientBalance(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	w := &mockWallet{balance: 50000}
	svc := New(db, fixtures(), w, &mockOrders{})

	_, err := svc.Book(context.Background(), 1, model.FlightBookReq{FlightID: 1, Passengers: 1})
	require.Error(t, err)
	require.Equal(t, ErrInsufficientBalance, Code(err))
	require.Nil(t, w.updatedTo)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBook_UnknownFlight(t *testing.T) {
	db, _ := newDB(t)
	svc := New(db, fixtures(), &mockWallet{balance: 200000}, &mockOrders{})

	_, err := svc.Book(context.Background(), 1, model.FlightBookReq{FlightID: 99, Passengers: 1})
	require.Error(t, err)
	require.Equal(t, ErrFlightNotFound, Code(err))
}
