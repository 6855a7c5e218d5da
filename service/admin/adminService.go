package admin

import (
	"context"

	"vtunigeria/model"
	adminrepo "vtunigeria/repository/admin"
	walletrepo "vtunigeria/repository/wallet"
)

const recentUserLimit = 10

type Dashboard struct {
	Stats       model.AdminStats `json:"stats"`
	RecentUsers []model.User     `json:"recent_users"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Transactions(ctx context.Context, limit int) ([]model.Transaction, error)
	SetUserStatus(ctx context.Context, userID int64, status string) error
}

type service struct {
	ar adminrepo.Repo
	wr walletrepo.Repo
}

func New(ar adminrepo.Repo, wr walletrepo.Repo) Service {
	return &service{ar: ar, wr: wr}
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.ar.Stats(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.ar.RecentUsers(ctx, recentUserLimit)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: *stats, RecentUsers: users}, nil
}

func (s *service) Transactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.wr.ListAllTransactions(ctx, limit)
}

func (s *service) SetUserStatus(ctx context.Context, userID int64, status string) error {
	return s.ar.SetUserStatus(ctx, userID, status)
}
