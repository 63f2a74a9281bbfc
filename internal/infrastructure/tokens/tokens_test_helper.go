package tokens

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
	createLedgerTables(t, db)
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string) {
	t.Helper()
	require.NoError(t, db.Exec(q).Error, "exec failed: query=%s", q)
}

func createLedgerTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE token_balances (
		address TEXT PRIMARY KEY,
		balance TEXT NOT NULL DEFAULT '0',
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE token_allowances (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		spender TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		updated_at DATETIME,
		UNIQUE(owner, spender)
	);`)
	mustExec(t, db, `CREATE TABLE pass_balances (
		id TEXT PRIMARY KEY,
		holder TEXT NOT NULL,
		pass_type INTEGER NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME,
		UNIQUE(holder, pass_type)
	);`)
	mustExec(t, db, `CREATE TABLE pass_roles (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		address TEXT NOT NULL,
		created_at DATETIME,
		UNIQUE(role, address)
	);`)
}
