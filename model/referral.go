package model

import "time"

const (
	ReferralPending = "PENDING"
	ReferralPaid    = "PAID"

	// Paid to both sides of a referral: the referee immediately on signup,
	// the referrer once the referee's first funding is confirmed.
	ReferralBonus = 500
)

type Referral struct {
	ID         int64      `json:"id"`
	ReferrerID int64      `json:"referrer_id"`
	RefereeID  int64      `json:"referee_id"`
	Bonus      float64    `json:"bonus"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}

type ReferralStats struct {
	TotalReferrals  int64   `json:"total_referrals"`
	ActiveReferrals int64   `json:"active_referrals"`
	TotalEarnings   float64 `json:"total_earnings"`
	PendingEarnings float64 `json:"pending_earnings"`
}

// ReferralRow is one referred user in the history listing. Email is masked
// before it leaves the API.
type ReferralRow struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinDate time.Time `json:"join_date"`
	Status   string    `json:"status"`
	Earnings float64   `json:"earnings"`
}
