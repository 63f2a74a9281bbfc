package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wrld-names.backend/internal/config"
	"wrld-names.backend/internal/domain/repositories"
	"wrld-names.backend/internal/infrastructure/blockchain"
	"wrld-names.backend/internal/infrastructure/cache"
	infraRepos "wrld-names.backend/internal/infrastructure/repositories"
	"wrld-names.backend/internal/infrastructure/tokens"
	"wrld-names.backend/internal/interfaces/http/handlers"
	"wrld-names.backend/internal/interfaces/http/middleware"
	"wrld-names.backend/internal/usecases"
	"wrld-names.backend/pkg/jwt"
	"wrld-names.backend/pkg/logger"
	"wrld-names.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis is optional; without it the resolver serves uncached reads.
	var recordCache usecases.RecordCache
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		recordCache = cache.NewRedisRecordCache(redis.GetClient())
		logger.Info(context.Background(), "Redis record cache initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	// Initialize repositories
	nameRepo := infraRepos.NewNameRepository(db)
	recordRepo := infraRepos.NewRecordRepository(db)
	entryRepo := infraRepos.NewEntryRepository(db)
	settingsRepo := infraRepos.NewSettingsRepository(db)
	uow := infraRepos.NewUnitOfWork(db)

	// Payment token: database ledger by default, ERC-20 over RPC in onchain mode.
	var payment repositories.PaymentTokenLedger
	if cfg.Token.Mode == "onchain" {
		payment, err = blockchain.NewWRLDTokenClient(
			cfg.Token.RPCURL, cfg.Token.ContractAddress, cfg.Token.OperatorPrivateKey)
		if err != nil {
			return fmt.Errorf("failed to initialize wrld token client: %w", err)
		}
		logger.Info(context.Background(), "WRLD token in onchain mode",
			zap.String("contract", cfg.Token.ContractAddress))
	} else {
		payment = tokens.NewWRLDLedger(db)
	}
	passes := tokens.NewPassLedger(db)

	// Alternate resolver delegation needs an RPC endpoint; without one,
	// names bound to an external resolver fail record reads.
	var altResolver usecases.AlternateResolver
	if cfg.Token.RPCURL != "" {
		altResolver, err = blockchain.NewAlternateResolverClient(cfg.Token.RPCURL)
		if err != nil {
			return fmt.Errorf("failed to initialize alternate resolver client: %w", err)
		}
	}

	// Initialize usecases
	registryUsecase := usecases.NewRegistryUsecase(
		nameRepo, recordRepo, entryRepo, settingsRepo,
		altResolver, usecases.NewAcceptingBridge(), usecases.NewDataURIMetadata(), recordCache,
		cfg.Auth.OwnerAddress, cfg.Naming.YearSeconds,
	)
	registrarUsecase := usecases.NewRegistrarUsecase(
		registryUsecase, settingsRepo, payment, passes, uow,
		cfg.Naming.RegistrarAddress, cfg.Auth.OwnerAddress,
		cfg.Naming.PassType, cfg.Naming.MinNameLength,
	)
	resolverUsecase := usecases.NewResolverUsecase(registryUsecase, recordCache)

	if err := seedRegistrarState(context.Background(), cfg, settingsRepo, passes); err != nil {
		return fmt.Errorf("failed to seed registrar state: %w", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(jwtService, cfg.Auth.OwnerAddress, cfg.Auth.OwnerSecretHash)
	registrarHandler := handlers.NewRegistrarHandler(registrarUsecase)
	nameHandler := handlers.NewNameHandler(registryUsecase)
	resolverHandler := handlers.NewResolverHandler(resolverUsecase)
	adminHandler := handlers.NewAdminHandler(registryUsecase)
	devHandler := handlers.NewDevHandler(payment, passes)

	ownerAuth := middleware.OwnerAuthMiddleware(jwtService)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:      authHandler,
		registrarHandler: registrarHandler,
		nameHandler:      nameHandler,
		resolverHandler:  resolverHandler,
		adminHandler:     adminHandler,
		devHandler:       devHandler,
		ownerAuth:        ownerAuth,
		devRoutes:        cfg.Server.Env == "development",
	})

	log.Printf("🚀 WRLD Names Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// seedRegistrarState writes boot-time defaults: the annual price schedule
// (only when unset), the registrar's registry approval and its pass burner
// role. All three are idempotent. The registrar address is stored in
// checksummed form, matching how lookups canonicalize the caller.
func seedRegistrarState(ctx context.Context, cfg *config.Config, settingsRepo repositories.SettingsRepository, passes repositories.PassLedger) error {
	for i, price := range cfg.Pricing.AnnualPrices {
		key := fmt.Sprintf("%s%d", repositories.SettingAnnualPricePrefix, i+1)
		if _, err := settingsRepo.Get(ctx, key); err == nil {
			continue
		}
		if err := settingsRepo.Set(ctx, key, price); err != nil {
			return err
		}
	}

	registrar := common.HexToAddress(cfg.Naming.RegistrarAddress).Hex()
	if err := settingsRepo.ApproveRegistrar(ctx, registrar, true); err != nil {
		return err
	}

	return passes.GrantRole(ctx, repositories.PassBurnerRole, registrar)
}
