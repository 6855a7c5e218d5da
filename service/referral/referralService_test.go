package referral

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"vtunigeria/model"

	"github.com/stretchr/testify/require"
)

type mockUsers struct {
	user *model.User
}

func (m *mockUsers) Create(ctx context.Context, u *model.User) error { return nil }
func (m *mockUsers) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}
func (m *mockUsers) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.user, nil
}
func (m *mockUsers) ByReferralCode(ctx context.Context, code string) (*model.User, error) {
	return nil, nil
}
func (m *mockUsers) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	return nil
}

type mockReferrals struct {
	stats   *model.ReferralStats
	history []model.ReferralRow
}

func (m *mockReferrals) Insert(ctx context.Context, referrerID, refereeID int64, bonus float64) error {
	return nil
}
func (m *mockReferrals) PendingByReferee(ctx context.Context, refereeID int64) (*model.Referral, error) {
	return nil, nil
}
func (m *mockReferrals) MarkPaid(ctx context.Context, tx *sql.Tx, id int64) error { return nil }
func (m *mockReferrals) Stats(ctx context.Context, referrerID int64) (*model.ReferralStats, error) {
	return m.stats, nil
}
func (m *mockReferrals) History(ctx context.Context, referrerID int64) ([]model.ReferralRow, error) {
	return m.history, nil
}

func TestOverview(t *testing.T) {
	joined := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	svc := New(
		&mockUsers{user: &model.User{ID: 1, ReferralCode: "VTU2024JOHN"}},
		&mockReferrals{
			stats: &model.ReferralStats{
				TotalReferrals: 2, ActiveReferrals: 1,
				TotalEarnings: 500, PendingEarnings: 500,
			},
			history: []model.ReferralRow{
				{Name: "Amaka Obi", Email: "amaka.obi@example.com", JoinDate: joined, Status: "PAID", Earnings: 500},
				{Name: "Tunde Bakare", Email: "tb@example.com", JoinDate: joined, Status: "PENDING", Earnings: 500},
			},
		},
	)

	out, err := svc.Overview(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "VTU2024JOHN", out.Code)
	require.Equal(t, "https://vtunigeria.com/ref/VTU2024JOHN", out.Link)
	require.Equal(t, int64(2), out.Stats.TotalReferrals)
	require.Len(t, out.History, 2)
	require.Equal(t, "am*******@example.com", out.History[0].Email)
	// short local parts are left alone rather than fully starred out
	require.Equal(t, "tb@example.com", out.History[1].Email)
}

func TestOverview_UserMissing(t *testing.T) {
	svc := New(&mockUsers{user: nil}, &mockReferrals{})

	_, err := svc.Overview(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMaskEmail(t *testing.T) {
	require.Equal(t, "jo*****@example.com", maskEmail("johndoe@example.com"))
	require.Equal(t, "ab@x.com", maskEmail("ab@x.com"))
	require.Equal(t, "not-an-email", maskEmail("not-an-email"))
}
