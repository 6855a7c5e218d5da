package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vtunigeria/model"
	authrepo "vtunigeria/repository/auth"
	"vtunigeria/util/hash"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn         func(ctx context.Context, u *model.User) error
	byEmailFn        func(ctx context.Context, email string) (*model.User, error)
	byIDFn           func(ctx context.Context, id int64) (*model.User, error)
	byReferralCodeFn func(ctx context.Context, code string) (*model.User, error)
	updateProfileFn  func(ctx context.Context, id int64, name, phone string) error
}

var _ authrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, nil
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) ByReferralCode(ctx context.Context, code string) (*model.User, error) {
	if m.byReferralCodeFn == nil {
		return nil, nil
	}
	return m.byReferralCodeFn(ctx, code)
}

func (m *mockRepo) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	if m.updateProfileFn == nil {
		return nil
	}
	return m.updateProfileFn(ctx, id, name, phone)
}

type mockReferrals struct {
	insertFn func(ctx context.Context, referrerID, refereeID int64, bonus float64) error
}

func (m *mockReferrals) Insert(ctx context.Context, referrerID, refereeID int64, bonus float64) error {
	if m.insertFn == nil {
		return nil
	}
	return m.insertFn(ctx, referrerID, refereeID, bonus)
}

type mockCrediter struct {
	creditFn func(ctx context.Context, userID int64, amount float64, description, reference string) (*model.Transaction, error)
}

func (m *mockCrediter) Credit(ctx context.Context, userID int64, amount float64, description, reference string) (*model.Transaction, error) {
	if m.creditFn == nil {
		return &model.Transaction{UserID: userID, Amount: amount, BalanceAfter: amount}, nil
	}
	return m.creditFn(ctx, userID, amount, description, reference)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, &mockReferrals{}, &mockCrediter{}, "test-secret")

	req := model.RegisterReq{
		Name:     "Amaka Obi",
		Email:    "USER@Example.COM",
		Phone:    "+234 802 000 1122",
		Password: "supersecret",
	}

	u, tok, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.Equal(t, "user", u.Role)
	require.Equal(t, "ACTIVE", u.Status)
	require.NotEmpty(t, u.PasswordHash)
	require.True(t, strings.HasPrefix(u.ReferralCode, "VTU"))
	require.True(t, strings.HasSuffix(u.ReferralCode, "AMAKA"))
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, &mockReferrals{}, &mockCrediter{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     " ",
		Email:    " ",
		Password: "123",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 9, Email: email}, nil
		},
	}
	svc := New(m, &mockReferrals{}, &mockCrediter{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     "Taken",
		Email:    "taken@example.com",
		Password: "123456",
	})
	require.Error(t, err)
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_UnknownReferralCode(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byReferralCodeFn: func(ctx context.Context, code string) (*model.User, error) {
			return nil, nil
		},
	}
	svc := New(m, &mockReferrals{}, &mockCrediter{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:         "New User",
		Email:        "new@example.com",
		Password:     "123456",
		ReferralCode: "VTU2024NOBODY",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadReferral, Code(err))
}

func TestRegister_WithReferral(t *testing.T) {
	ctx := context.Background()

	var recordedReferrer, recordedReferee int64
	var creditedAmount float64
	var creditedDesc string

	m := &mockRepo{
		byReferralCodeFn: func(ctx context.Context, code string) (*model.User, error) {
			require.Equal(t, "VTU2024JOHN", code)
			return &model.User{ID: 1, ReferralCode: code}, nil
		},
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 50
			return nil
		},
	}
	rr := &mockReferrals{
		insertFn: func(ctx context.Context, referrerID, refereeID int64, bonus float64) error {
			recordedReferrer, recordedReferee = referrerID, refereeID
			require.Equal(t, float64(model.ReferralBonus), bonus)
			return nil
		},
	}
	wc := &mockCrediter{
		creditFn: func(ctx context.Context, userID int64, amount float64, description, reference string) (*model.Transaction, error) {
			creditedAmount = amount
			creditedDesc = description
			return &model.Transaction{UserID: userID, Amount: amount, BalanceAfter: amount}, nil
		},
	}
	svc := New(m, rr, wc, "test-secret")

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		Name:         "Referred Friend",
		Email:        "friend@example.com",
		Password:     "123456",
		ReferralCode: "vtu2024john",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(1), recordedReferrer)
	require.Equal(t, int64(50), recordedReferee)
	require.Equal(t, float64(model.ReferralBonus), creditedAmount)
	require.Equal(t, "Referral Signup Bonus", creditedDesc)
	require.Equal(t, float64(model.ReferralBonus), u.Balance)
	require.NotNil(t, u.ReferredBy)
	require.Equal(t, int64(1), *u.ReferredBy)
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, &mockReferrals{}, &mockCrediter{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     "Ok",
		Email:    "ok@example.com",
		Password: "123456",
	})
	require.Error(t, err)

	require.Equal(t, ErrCode(""), Code(err))
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           7,
				Email:        "user@example.com",
				PasswordHash: hashed,
				Role:         "user",
				Status:       model.UserActive,
			}, nil
		},
	}
	svc := New(m, &mockReferrals{}, &mockCrediter{}, "test-secret")

	u, tok, err := svc.Login(ctx, model.LoginReq{
		Email:    "User@Example.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, nil
		},
	}
	svc := New(m, &mockReferrals{}, &mockCrediter{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()

	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           101,
				Email:        "user@example.com",
				PasswordHash: hashed,
				Role:         "user",
				Status:       model.UserActive,
			}, nil
		},
	}
	svc := New(m, &mockReferrals{}, &mockCrediter{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_Suspended(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "supersecret")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           5,
				Email:        "banned@example.com",
				PasswordHash: hashed,
				Status:       model.UserSuspended,
			}, nil
		},
	}
	svc := New(m, &mockReferrals{}, &mockCrediter{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "banned@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	require.Equal(t, ErrSuspended, Code(err))
}

func TestGenerateReferralCode(t *testing.T) {
	code := generateReferralCode("John Doe", false)
	require.True(t, strings.HasPrefix(code, "VTU"))
	require.True(t, strings.HasSuffix(code, "JOHN"))

	salted := generateReferralCode("John Doe", true)
	require.NotEqual(t, code, salted)
	require.True(t, strings.HasPrefix(salted, code))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrEmailTaken, Code(wrap(ErrEmailTaken, "x")))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
