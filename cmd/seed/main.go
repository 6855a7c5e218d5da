// Seeds the demo accounts and their starting ledger. Idempotent: skips
// anything that already exists.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"vtunigeria/config"
	"vtunigeria/util/database"
	"vtunigeria/util/hash"
)

type seedUser struct {
	name, email, phone, passwordHash, role, referralCode string
}

type ledgerRow struct {
	typ         string
	amount      float64
	description string
	reference   string
}

// John's demo history sums to the 15000 starting balance.
var johnLedger = []ledgerRow{
	{"credit", 18500, "Wallet Funding via Paystack", "REF-2024-001"},
	{"debit", 1000, "MTN Airtime Purchase", "REF-2024-002"},
	{"debit", 2500, "GLO 5GB Data Bundle", "REF-2024-003"},
}

func main() {
	cfg := config.Load()
	ctx := context.Background()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pw, err := hash.HashPassword("password")
	if err != nil {
		log.Error("hash failed", "err", err)
		os.Exit(1)
	}

	johnID, created, err := insertUser(ctx, db, seedUser{
		name: "John Doe", email: "john@example.com", phone: "+234 801 234 5678",
		passwordHash: pw, role: "user", referralCode: "VTU2024JOHN",
	})
	if err != nil {
		log.Error("seed john failed", "err", err)
		os.Exit(1)
	}
	if _, _, err := insertUser(ctx, db, seedUser{
		name: "Admin User", email: "admin@example.com", phone: "+234 901 234 5678",
		passwordHash: pw, role: "admin", referralCode: "VTU2024ADMIN",
	}); err != nil {
		log.Error("seed admin failed", "err", err)
		os.Exit(1)
	}

	// Only seed the ledger on first creation so re-runs don't duplicate it.
	if created {
		if err := seedLedger(ctx, db, johnID, johnLedger); err != nil {
			log.Error("seed ledger failed", "err", err)
			os.Exit(1)
		}
	}

	log.Info("seed complete")
}

// insertUser creates the user if the email is free and reports whether a new
// row was written.
func insertUser(ctx context.Context, db *sql.DB, u seedUser) (int64, bool, error) {
	const q = `
INSERT INTO users (name, email, phone, password_hash, role, verified, status, balance, referral_code)
VALUES ($1,$2,$3,$4,$5,TRUE,'ACTIVE',0,$6)
ON CONFLICT (referral_code) DO NOTHING
RETURNING id`
	var id int64
	err := db.QueryRowContext(ctx, q, u.name, u.email, u.phone, u.passwordHash, u.role, u.referralCode).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = db.QueryRowContext(ctx, `SELECT id FROM users WHERE lower(email)=lower($1)`, u.email).Scan(&id)
		return id, false, err
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func seedLedger(ctx context.Context, db *sql.DB, userID int64, rows []ledgerRow) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var balance float64
	for _, r := range rows {
		if r.typ == "credit" {
			balance += r.amount
		} else {
			balance -= r.amount
		}
		if _, err = tx.ExecContext(ctx, `
INSERT INTO transactions (user_id, type, amount, description, status, reference, balance_after)
VALUES ($1,$2,$3,$4,'success',$5,$6)`,
			userID, r.typ, r.amount, r.description, r.reference, balance,
		); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, `UPDATE users SET balance=$2 WHERE id=$1`, userID, balance); err != nil {
		return err
	}
	return tx.Commit()
}
