package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"vtunigeria/model"
	authrepo "vtunigeria/repository/auth"
	"vtunigeria/util/hash"
	jwtutil "vtunigeria/util/jwt"
)

type ErrCode string

const (
	ErrEmailTaken   ErrCode = "EMAIL_TAKEN"
	ErrBadInput     ErrCode = "BAD_INPUT"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
	ErrBadReferral  ErrCode = "BAD_REFERRAL_CODE"
	ErrSuspended    ErrCode = "ACCOUNT_SUSPENDED"
	ErrNotFound     ErrCode = "NOT_FOUND"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func wrap(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// WalletCrediter is the slice of the wallet service used for signup bonuses.
type WalletCrediter interface {
	Credit(ctx context.Context, userID int64, amount float64, description, reference string) (*model.Transaction, error)
}

// ReferralRecorder registers a pending referrer bonus.
type ReferralRecorder interface {
	Insert(ctx context.Context, referrerID, refereeID int64, bonus float64) error
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileReq) (*model.User, error)
}

type service struct {
	ur     authrepo.Repo
	rr     ReferralRecorder
	wc     WalletCrediter
	secret string
}

func New(ur authrepo.Repo, rr ReferralRecorder, wc WalletCrediter, secret string) Service {
	return &service{ur: ur, rr: rr, wc: wc, secret: secret}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)

	if name == "" || email == "" || !strings.Contains(email, "@") || len(req.Password) < 6 {
		return nil, "", wrap(ErrBadInput, "name, email and a 6+ char password are required")
	}

	// Resolve the referrer before touching the users table.
	var referrer *model.User
	if code := strings.TrimSpace(req.ReferralCode); code != "" {
		ref, err := s.ur.ByReferralCode(ctx, strings.ToUpper(code))
		if err != nil {
			return nil, "", err
		}
		if ref == nil {
			return nil, "", wrap(ErrBadReferral, "unknown referral code")
		}
		referrer = ref
	}

	existing, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", wrap(ErrEmailTaken, "email already registered")
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hashed,
		Role:         model.RoleUser,
		Verified:     false,
		Status:       model.UserActive,
		ReferralCode: generateReferralCode(name, false),
	}
	if referrer != nil {
		u.ReferredBy = &referrer.ID
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			// A referral-code collision gets one retry with a salted code.
			if isReferralCodeDup(err) {
				u.ReferralCode = generateReferralCode(name, true)
				if err2 := s.ur.Create(ctx, u); err2 == nil {
					return s.finishRegister(ctx, u, referrer)
				}
			}
			return nil, "", derr
		}
		return nil, "", err
	}
	return s.finishRegister(ctx, u, referrer)
}

func (s *service) finishRegister(ctx context.Context, u *model.User, referrer *model.User) (*model.User, string, error) {
	if referrer != nil {
		if err := s.rr.Insert(ctx, referrer.ID, u.ID, model.ReferralBonus); err != nil {
			return nil, "", err
		}
		t, err := s.wc.Credit(ctx, u.ID, model.ReferralBonus, "Referral Signup Bonus", "")
		if err != nil {
			return nil, "", err
		}
		u.Balance = t.BalanceAfter
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", wrap(ErrBadInput, "email and password are required")
	}

	u, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", wrap(ErrInvalidCreds, "invalid email or password")
	}
	if u.Status == model.UserSuspended {
		return nil, "", wrap(ErrSuspended, "account suspended")
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, wrap(ErrNotFound, "user not found")
	}
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileReq) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return nil, wrap(ErrBadInput, "name and phone are required")
	}
	if err := s.ur.UpdateProfile(ctx, userID, name, phone); err != nil {
		return nil, err
	}
	return s.Me(ctx, userID)
}

// generateReferralCode builds codes like VTU2026JOHN. Salted adds a time
// fragment for retry after a unique-constraint collision.
func generateReferralCode(name string, salted bool) string {
	first := strings.Fields(name)
	frag := "USER"
	if len(first) > 0 {
		var sb strings.Builder
		for _, r := range strings.ToUpper(first[0]) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				sb.WriteRune(r)
			}
		}
		if sb.Len() > 0 {
			frag = sb.String()
		}
	}
	code := fmt.Sprintf("VTU%d%s", time.Now().Year(), frag)
	if salted {
		code = fmt.Sprintf("%s%d", code, time.Now().UnixNano()%10000)
	}
	return code
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return wrap(ErrEmailTaken, "email already registered")
		}
		return wrap(ErrBadInput, "duplicate value")
	}
	return nil
}

func isReferralCodeDup(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(strings.ToLower(pgErr.ConstraintName), "referral")
}
