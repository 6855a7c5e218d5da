package referral

import (
	"context"
	"errors"
	"strings"

	"vtunigeria/model"
	authrepo "vtunigeria/repository/auth"
	referralrepo "vtunigeria/repository/referral"
)

const linkBase = "https://vtunigeria.com/ref/"

var ErrNotFound = errors.New("user not found")

type Overview struct {
	Code    string              `json:"code"`
	Link    string              `json:"link"`
	Stats   model.ReferralStats `json:"stats"`
	History []model.ReferralRow `json:"history"`
}

type Service interface {
	Overview(ctx context.Context, userID int64) (*Overview, error)
}

type service struct {
	ur authrepo.Repo
	rr referralrepo.Repo
}

func New(ur authrepo.Repo, rr referralrepo.Repo) Service {
	return &service{ur: ur, rr: rr}
}

func (s *service) Overview(ctx context.Context, userID int64) (*Overview, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	stats, err := s.rr.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.rr.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range history {
		history[i].Email = maskEmail(history[i].Email)
	}

	return &Overview{
		Code:    u.ReferralCode,
		Link:    linkBase + u.ReferralCode,
		Stats:   *stats,
		History: history,
	}, nil
}

// maskEmail keeps the first two characters of the local part:
// johndoe@example.com -> jo*****@example.com.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 2 {
		return email
	}
	return email[:2] + strings.Repeat("*", at-2) + email[at:]
}
