package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Naming   NamingConfig
	Token    TokenConfig
	Pricing  PricingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration. An empty URL disables the resolver
// record cache.
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// AuthConfig holds the owner credential and token settings
type AuthConfig struct {
	OwnerAddress    string
	OwnerSecretHash string
	JWTSecret       string
	TokenExpiry     time.Duration
}

// NamingConfig holds name service parameters
type NamingConfig struct {
	RegistrarAddress string
	YearSeconds      int64
	MinNameLength    int
	PassType         int64
}

// TokenConfig holds payment token settings. Mode "ledger" uses the database
// ledger; "onchain" reads and debits the WRLD ERC-20 contract over RPC.
type TokenConfig struct {
	Mode               string
	RPCURL             string
	ContractAddress    string
	OperatorPrivateKey string
}

// PricingConfig holds the default annual price schedule (smallest unit,
// decimal strings, buckets for 1/2/3/4/5+ characters).
type PricingConfig struct {
	AnnualPrices [5]string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "wrldnames"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			OwnerAddress:    getEnv("OWNER_ADDRESS", "0x505cdA4e0911DB1e47218dCac21ba21d9324ed84"),
			OwnerSecretHash: getEnv("OWNER_SECRET_HASH", ""),
			JWTSecret:       getEnv("JWT_SECRET", "change-this-in-production"),
			TokenExpiry:     getEnvAsDuration("JWT_TOKEN_EXPIRY", 1*time.Hour),
		},
		Naming: NamingConfig{
			RegistrarAddress: getEnv("REGISTRAR_ADDRESS", "0x0000000000000000000000000000000000000001"),
			YearSeconds:      int64(getEnvAsInt("YEAR_SECONDS", 31536000)),
			MinNameLength:    getEnvAsInt("MIN_NAME_LENGTH", 3),
			PassType:         int64(getEnvAsInt("PASS_TYPE", 2)),
		},
		Token: TokenConfig{
			Mode:               getEnv("WRLD_TOKEN_MODE", "ledger"),
			RPCURL:             getEnv("WRLD_TOKEN_RPC_URL", ""),
			ContractAddress:    getEnv("WRLD_TOKEN_ADDRESS", ""),
			OperatorPrivateKey: getEnv("WRLD_TOKEN_OPERATOR_KEY", ""),
		},
		Pricing: PricingConfig{
			AnnualPrices: [5]string{
				getEnv("ANNUAL_PRICE_1", "10000000000000000000000"),
				getEnv("ANNUAL_PRICE_2", "5000000000000000000000"),
				getEnv("ANNUAL_PRICE_3", "2500000000000000000000"),
				getEnv("ANNUAL_PRICE_4", "1000000000000000000000"),
				getEnv("ANNUAL_PRICE_5", "500000000000000000000"),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
