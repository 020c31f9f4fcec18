package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Restock  RestockConfig
	Sweep    SweepConfig
	Storage  StorageConfig
	Triage   TriageConfig
	LogLevel string
}

type ServerConfig struct {
	Port           string
	Mode           string
	AllowedOrigins []string
}

// DatabaseConfig configures PostgreSQL. When URL is set it wins over the
// individual fields. Leaving both URL and Host empty runs the API against
// the in-memory store.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Configured reports whether a postgres connection should be attempted.
func (c DatabaseConfig) Configured() bool {
	return c.URL != "" || c.Host != ""
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	LowStockTTLSeconds int
}

// RestockConfig holds the automatic restock policy knobs. MinimumTier is a
// tier label ("High" by default, so Normal never triggers); TargetDays is
// the days of cover the suggested quantity aims for.
type RestockConfig struct {
	MinimumTier string
	TargetDays  int
	MinQuantity int
}

// SweepConfig controls the periodic auto-restock sweep. IntervalMinutes 0
// disables the background runner; the HTTP trigger keeps working.
type SweepConfig struct {
	IntervalMinutes int
}

// StorageConfig configures the S3-compatible bucket that commit-mode sweep
// reports are archived to. Disabled by default.
type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Prefix    string
}

// TriageConfig points at the external AI triage collaborator. Empty BaseURL
// leaves the triage passthrough endpoint unregistered.
type TriageConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DATABASE_URL", "")
		viper.SetDefault("DB_HOST", "")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "hackhealth")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_LOW_STOCK_TTL_SECONDS", 60)
		viper.SetDefault("RESTOCK_MINIMUM_TIER", "High")
		viper.SetDefault("RESTOCK_TARGET_DAYS", 7)
		viper.SetDefault("RESTOCK_MIN_QUANTITY", 1)
		viper.SetDefault("SWEEP_INTERVAL_MINUTES", 0)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("STORAGE_PREFIX", "sweeps")
		viper.SetDefault("TRIAGE_BASE_URL", "")
		viper.SetDefault("TRIAGE_TIMEOUT_SECONDS", 15)
		viper.SetDefault("LOG_LEVEL", "info")

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				URL:      viper.GetString("DATABASE_URL"),
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:            viper.GetBool("CACHE_ENABLED"),
				RedisURL:           viper.GetString("REDIS_URL"),
				RedisHost:          viper.GetString("REDIS_HOST"),
				RedisPort:          viper.GetString("REDIS_PORT"),
				RedisPassword:      viper.GetString("REDIS_PASSWORD"),
				RedisDB:            viper.GetInt("REDIS_DB"),
				LowStockTTLSeconds: viper.GetInt("CACHE_LOW_STOCK_TTL_SECONDS"),
			},
			Restock: RestockConfig{
				MinimumTier: viper.GetString("RESTOCK_MINIMUM_TIER"),
				TargetDays:  viper.GetInt("RESTOCK_TARGET_DAYS"),
				MinQuantity: viper.GetInt("RESTOCK_MIN_QUANTITY"),
			},
			Sweep: SweepConfig{
				IntervalMinutes: viper.GetInt("SWEEP_INTERVAL_MINUTES"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
				Prefix:    viper.GetString("STORAGE_PREFIX"),
			},
			Triage: TriageConfig{
				BaseURL:        viper.GetString("TRIAGE_BASE_URL"),
				TimeoutSeconds: viper.GetInt("TRIAGE_TIMEOUT_SECONDS"),
			},
			LogLevel: viper.GetString("LOG_LEVEL"),
		}
	})

	return instance
}
