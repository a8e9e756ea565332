package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		name TEXT,
		password_hash TEXT,
		role TEXT,
		kyc_verified BOOLEAN DEFAULT FALSE,
		kyc_verified_at DATETIME,
		kyc_pan TEXT,
		kyc_aadhaar TEXT,
		kyc_id_proof TEXT,
		max_amount REAL,
		interest_rate REAL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createLoanRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE loan_requests (
		id TEXT PRIMARY KEY,
		borrower_id TEXT NOT NULL,
		amount REAL NOT NULL,
		interest_rate REAL NOT NULL,
		period_months INTEGER NOT NULL,
		status TEXT NOT NULL,
		matched_with TEXT,
		borrower_accepted BOOLEAN NOT NULL DEFAULT FALSE,
		lender_accepted BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func seedUser(t *testing.T, db *gorm.DB, id, email, role string, kycVerified bool, createdAt time.Time) {
	t.Helper()
	mustExec(t, db, `INSERT INTO users (id, email, name, password_hash, role, kyc_verified, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, email, "User "+email, "hash", role, kycVerified, createdAt, createdAt)
}

func seedLender(t *testing.T, db *gorm.DB, id, email string, kycVerified bool, maxAmount, rate float64, createdAt time.Time) {
	t.Helper()
	mustExec(t, db, `INSERT INTO users (id, email, name, password_hash, role, kyc_verified, max_amount, interest_rate, created_at, updated_at) VALUES (?, ?, ?, ?, 'lender', ?, ?, ?, ?, ?)`,
		id, email, "Lender "+email, "hash", kycVerified, maxAmount, rate, createdAt, createdAt)
}
