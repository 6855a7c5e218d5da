package catalogrepo

import (
	"context"
	"database/sql"
	"errors"

	"vtunigeria/model"
)

type Repo interface {
	Networks(ctx context.Context) ([]model.Network, error)
	Network(ctx context.Context, id string) (*model.Network, error)
	DataPlans(ctx context.Context, networkID string) ([]model.DataPlan, error)
	DataPlan(ctx context.Context, id string) (*model.DataPlan, error)

	TVProviders(ctx context.Context) ([]model.TVProvider, error)
	TVProvider(ctx context.Context, id string) (*model.TVProvider, error)
	TVPlans(ctx context.Context, providerID string) ([]model.TVPlan, error)
	TVPlan(ctx context.Context, id string) (*model.TVPlan, error)

	Discos(ctx context.Context) ([]model.Disco, error)
	Disco(ctx context.Context, id string) (*model.Disco, error)

	ExamServices(ctx context.Context) ([]model.ExamService, error)
	ExamService(ctx context.Context, id string) (*model.ExamService, error)

	Cities(ctx context.Context) ([]model.City, error)
	City(ctx context.Context, code string) (*model.City, error)
	SearchFlights(ctx context.Context, origin, destination string) ([]model.Flight, error)
	Flight(ctx context.Context, id int64) (*model.Flight, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Networks(ctx context.Context) ([]model.Network, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM networks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Network
	for rows.Next() {
		var n model.Network
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *repo) Network(ctx context.Context, id string) (*model.Network, error) {
	n := &model.Network{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM networks WHERE id=$1`, id).Scan(&n.ID, &n.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *repo) DataPlans(ctx context.Context, networkID string) ([]model.DataPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, network_id, name, size, validity, price
		FROM data_plans
		WHERE network_id=$1
		ORDER BY price`, networkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.DataPlan
	for rows.Next() {
		var p model.DataPlan
		if err := rows.Scan(&p.ID, &p.NetworkID, &p.Name, &p.Size, &p.Validity, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) DataPlan(ctx context.Context, id string) (*model.DataPlan, error) {
	p := &model.DataPlan{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, network_id, name, size, validity, price
		FROM data_plans WHERE id=$1`, id).
		Scan(&p.ID, &p.NetworkID, &p.Name, &p.Size, &p.Validity, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) TVProviders(ctx context.Context) ([]model.TVProvider, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tv_providers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TVProvider
	for rows.Next() {
		var p model.TVProvider
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) TVProvider(ctx context.Context, id string) (*model.TVProvider, error) {
	p := &model.TVProvider{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM tv_providers WHERE id=$1`, id).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) TVPlans(ctx context.Context, providerID string) ([]model.TVPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, provider_id, name, duration, price
		FROM tv_plans
		WHERE provider_id=$1
		ORDER BY price`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TVPlan
	for rows.Next() {
		var p model.TVPlan
		if err := rows.Scan(&p.ID, &p.ProviderID, &p.Name, &p.Duration, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) TVPlan(ctx context.Context, id string) (*model.TVPlan, error) {
	p := &model.TVPlan{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, provider_id, name, duration, price
		FROM tv_plans WHERE id=$1`, id).
		Scan(&p.ID, &p.ProviderID, &p.Name, &p.Duration, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) Discos(ctx context.Context) ([]model.Disco, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM discos ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Disco
	for rows.Next() {
		var d model.Disco
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repo) Disco(ctx context.Context, id string) (*model.Disco, error) {
	d := &model.Disco{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM discos WHERE id=$1`, id).Scan(&d.ID, &d.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *repo) ExamServices(ctx context.Context) ([]model.ExamService, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, price FROM exam_services ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ExamService
	for rows.Next() {
		var e model.ExamService
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Price); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repo) ExamService(ctx context.Context, id string) (*model.ExamService, error) {
	e := &model.ExamService{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name, description, price FROM exam_services WHERE id=$1`, id).
		Scan(&e.ID, &e.Name, &e.Description, &e.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repo) Cities(ctx context.Context) ([]model.City, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, name, country FROM cities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.City
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.Code, &c.Name, &c.Country); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) City(ctx context.Context, code string) (*model.City, error) {
	c := &model.City{}
	err := r.db.QueryRowContext(ctx, `SELECT code, name, country FROM cities WHERE code=$1`, code).
		Scan(&c.Code, &c.Name, &c.Country)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) SearchFlights(ctx context.Context, origin, destination string) ([]model.Flight, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, airline, origin, destination, departure, arrival, duration, stops, aircraft, price
		FROM flights
		WHERE origin=$1 AND destination=$2
		ORDER BY departure`, origin, destination)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Flight
	for rows.Next() {
		var f model.Flight
		if err := rows.Scan(&f.ID, &f.Airline, &f.Origin, &f.Destination, &f.Departure, &f.Arrival, &f.Duration, &f.Stops, &f.Aircraft, &f.Price); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *repo) Flight(ctx context.Context, id int64) (*model.Flight, error) {
	f := &model.Flight{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, airline, origin, destination, departure, arrival, duration, stops, aircraft, price
		FROM flights WHERE id=$1`, id).
		Scan(&f.ID, &f.Airline, &f.Origin, &f.Destination, &f.Departure, &f.Arrival, &f.Duration, &f.Stops, &f.Aircraft, &f.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
