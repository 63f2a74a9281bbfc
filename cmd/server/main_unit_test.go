package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wrld-names.backend/internal/config"
	"wrld-names.backend/internal/domain/repositories"
	infraRepos "wrld-names.backend/internal/infrastructure/repositories"
	"wrld-names.backend/internal/infrastructure/tokens"
	plog "wrld-names.backend/pkg/logger"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origRunServer := runServer
	origGetStdDB := getStdDB

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		runServer = origRunServer
		getStdDB = origGetStdDB
	})
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: "18080",
			Env:  "development",
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "wrldnames",
			SSLMode:  "disable",
		},
		Redis: config.RedisConfig{
			URL: "", // cache disabled
		},
		Auth: config.AuthConfig{
			OwnerAddress: "0x00000000000000000000000000000000000000A1",
			JWTSecret:    "secret",
			TokenExpiry:  time.Hour,
		},
		Naming: config.NamingConfig{
			RegistrarAddress: "0x00000000000000000000000000000000000000B2",
			YearSeconds:      31536000,
			MinNameLength:    3,
			PassType:         2,
		},
		Token: config.TokenConfig{
			Mode: "ledger",
		},
		Pricing: config.PricingConfig{
			AnnualPrices: [5]string{"10", "8", "6", "4", "2"},
		},
	}
}

// openBootDB opens an in-memory sqlite DB carrying the tables the boot
// seeding touches.
func openBootDB(t *testing.T) func(string) (*gorm.DB, error) {
	t.Helper()
	return func(string) (*gorm.DB, error) {
		dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		for _, ddl := range []string{
			`CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at DATETIME);`,
			`CREATE TABLE approved_registrars (address TEXT PRIMARY KEY, approved BOOLEAN NOT NULL DEFAULT FALSE, created_at DATETIME, updated_at DATETIME);`,
			`CREATE TABLE pass_roles (id TEXT PRIMARY KEY, role TEXT NOT NULL, address TEXT NOT NULL, created_at DATETIME, UNIQUE(role, address));`,
		} {
			if err := db.Exec(ddl).Error; err != nil {
				return nil, err
			}
		}
		return db, nil
	}
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Redis.URL = "redis://localhost:6379"
		return cfg
	}
	initLog = plog.Init
	initRedis = func(string, string) error { return errors.New("redis down") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected redis init error")
	}
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected db open error")
	}
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	openDB = openBootDB(t)
	runServer = func(*gin.Engine, string) error { return errors.New("listen failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected server run error")
	}
}

func TestSeedRegistrarState_CanonicalizesRegistrarAddress(t *testing.T) {
	db, err := openBootDB(t)("")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	cfg := baseTestConfig()
	cfg.Naming.RegistrarAddress = "0x00000000000000000000000000000000000000b2"

	ctx := context.Background()
	settingsRepo := infraRepos.NewSettingsRepository(db)
	passes := tokens.NewPassLedger(db)
	if err := seedRegistrarState(ctx, cfg, settingsRepo, passes); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Lookups canonicalize the caller, so the approval row must be stored in
	// checksummed form even when the env value is not.
	canonical := common.HexToAddress(cfg.Naming.RegistrarAddress).Hex()
	approved, err := settingsRepo.IsApprovedRegistrar(ctx, canonical)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !approved {
		t.Fatalf("registrar %s not approved under its checksummed address", canonical)
	}

	burner, err := passes.HasRole(ctx, repositories.PassBurnerRole, canonical)
	if err != nil {
		t.Fatalf("role lookup: %v", err)
	}
	if !burner {
		t.Fatal("registrar missing the pass burner role")
	}
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	openDB = openBootDB(t)
	runServer = func(*gin.Engine, string) error { return nil }

	if err := runMainProcess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
