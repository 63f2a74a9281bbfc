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

func createNameTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE names (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		owner TEXT NOT NULL,
		controller TEXT NOT NULL,
		expires_at INTEGER NOT NULL,
		token_id INTEGER NOT NULL UNIQUE,
		alternate_resolver TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createRecordTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE name_records (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		record_type TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		type_of TEXT,
		ttl INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(name, record_type, key)
	);`)
	mustExec(t, db, `CREATE TABLE name_entries (
		id TEXT PRIMARY KEY,
		setter TEXT NOT NULL,
		name TEXT NOT NULL,
		entry_type TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(setter, name, entry_type, key)
	);`)
}

func createSettingsTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE approved_registrars (
		address TEXT PRIMARY KEY,
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
