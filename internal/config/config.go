package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-nft-ledger/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// CollectionConfig holds the immutable parameters of the collection served by the ledger
type CollectionConfig struct {
	Contract  string       `mapstructure:"contract"` // Derived from admin when empty
	ChainID   domain.Chain `mapstructure:"chain_id"`
	Name      string       `mapstructure:"name"`
	Symbol    string       `mapstructure:"symbol"`
	MaxSupply uint64       `mapstructure:"max_supply"`
	Admin     string       `mapstructure:"admin"`
	BaseURI   string       `mapstructure:"base_uri"`
	URISuffix string       `mapstructure:"uri_suffix"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string          `mapstructure:"host"`
	Port         int             `mapstructure:"port"`
	ReadTimeout  int             `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int             `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int             `mapstructure:"idle_timeout"`  // in seconds
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds per-caller throttling of ledger mutations
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // 0 disables throttling
	Burst             int     `mapstructure:"burst"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// WebhookConfig holds webhook delivery configuration
type WebhookConfig struct {
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

// LedgerAPIConfig holds configuration for the ledger API server
type LedgerAPIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Collection CollectionConfig `mapstructure:"collection"`
}

// DispatcherConfig holds configuration for the webhook dispatcher
type DispatcherConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Database       DatabaseConfig `mapstructure:"database"`
	NATS           NATSConfig     `mapstructure:"nats"`
	Worker         WorkerConfig   `mapstructure:"worker"`
	Webhook        WebhookConfig  `mapstructure:"webhook"`
	MetricsAddress string         `mapstructure:"metrics_address"`
}

// CLIConfig holds configuration for ledgerctl
type CLIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Collection CollectionConfig `mapstructure:"collection"`
}

// LoadLedgerAPIConfig loads configuration for the ledger API server
func LoadLedgerAPIConfig(configFile string, envPath string) (*LedgerAPIConfig, error) {
	v := configureViper("ledger-api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.rate_limit.requests_per_second", 5)
	v.SetDefault("server.rate_limit.burst", 10)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LEDGER_EVENTS")
	v.SetDefault("nats.connection_name", "ledger-api")
	setCollectionDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config LedgerAPIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadDispatcherConfig loads configuration for the webhook dispatcher
func LoadDispatcherConfig(configFile string, envPath string) (*DispatcherConfig, error) {
	v := configureViper("webhook-dispatcher", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LEDGER_EVENTS")
	v.SetDefault("nats.consumer_name", "webhook-dispatcher")
	v.SetDefault("nats.connection_name", "webhook-dispatcher")
	v.SetDefault("nats.ack_wait", "2m")
	v.SetDefault("nats.max_deliver", 5)
	v.SetDefault("worker.pool_size", 10)
	v.SetDefault("worker.queue_size", 100)
	v.SetDefault("webhook.http_timeout", "10s")
	v.SetDefault("webhook.initial_interval", "1s")
	v.SetDefault("webhook.max_interval", "30s")
	v.SetDefault("webhook.max_elapsed_time", "90s")
	v.SetDefault("metrics_address", ":9090")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config DispatcherConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &config, nil
}

// LoadCLIConfig loads configuration for ledgerctl
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("ledgerctl", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 2)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("nats.max_reconnects", 3)
	v.SetDefault("nats.reconnect_wait", "1s")
	v.SetDefault("nats.stream_name", "LEDGER_EVENTS")
	v.SetDefault("nats.connection_name", "ledgerctl")
	setCollectionDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

func setCollectionDefaults(v *viper.Viper) {
	v.SetDefault("collection.chain_id", string(domain.ChainEthereumSepolia))
	v.SetDefault("collection.base_uri", domain.DEFAULT_BASE_URI)
	v.SetDefault("collection.uri_suffix", domain.DEFAULT_URI_SUFFIX)
}

// readInConfig reads the config file; a missing file falls back to environment variables
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/ledger-api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Collection
		"collection.contract",
		"collection.chain_id",
		"collection.name",
		"collection.symbol",
		"collection.max_supply",
		"collection.admin",
		"collection.base_uri",
		"collection.uri_suffix",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.rate_limit.requests_per_second",
		"server.rate_limit.burst",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// Webhook delivery
		"webhook.http_timeout",
		"webhook.initial_interval",
		"webhook.max_interval",
		"webhook.max_elapsed_time",
		"metrics_address",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
