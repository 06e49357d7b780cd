package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Auction  AuctionConfig
	Sweeper  SweeperConfig
	Delivery DeliveryConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type AuctionConfig struct {
	TaxRate              float64       `envconfig:"AUCTION_TAX_RATE" default:"0.05"`
	Currency             string        `envconfig:"AUCTION_CURRENCY" default:"coins"`
	MaxDuration          time.Duration `envconfig:"AUCTION_MAX_DURATION" default:"168h"`
	MaxActivePerSeller   int           `envconfig:"AUCTION_MAX_ACTIVE_PER_SELLER" default:"0"` // 0 = unlimited
	CommitTimeout        time.Duration `envconfig:"AUCTION_COMMIT_TIMEOUT" default:"15s"`
	CompensationAttempts int           `envconfig:"AUCTION_COMPENSATION_ATTEMPTS" default:"5"`
}

type SweeperConfig struct {
	Enabled     bool          `envconfig:"SWEEPER_ENABLED" default:"true"`
	Interval    time.Duration `envconfig:"SWEEPER_INTERVAL" default:"30s"`
	BatchSize   int           `envconfig:"SWEEPER_BATCH_SIZE" default:"200"`
	ItemTimeout time.Duration `envconfig:"SWEEPER_ITEM_TIMEOUT" default:"10s"`
	Workers     int           `envconfig:"SWEEPER_WORKERS" default:"4"`
}

type DeliveryConfig struct {
	InventoryCapacity int `envconfig:"DELIVERY_INVENTORY_CAPACITY" default:"36"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required for the %s store driver", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Auction.TaxRate < 0 || c.Auction.TaxRate >= 1 {
		return fmt.Errorf("AUCTION_TAX_RATE must be in [0,1), got %v", c.Auction.TaxRate)
	}
	if c.Auction.MaxDuration <= 0 {
		return fmt.Errorf("AUCTION_MAX_DURATION must be positive")
	}
	if c.Auction.CompensationAttempts < 1 {
		return fmt.Errorf("AUCTION_COMPENSATION_ATTEMPTS must be at least 1")
	}
	if c.Sweeper.Interval <= 0 || c.Sweeper.BatchSize <= 0 || c.Sweeper.Workers <= 0 {
		return fmt.Errorf("SWEEPER_INTERVAL, SWEEPER_BATCH_SIZE and SWEEPER_WORKERS must be positive")
	}
	if c.Delivery.InventoryCapacity < 0 {
		return fmt.Errorf("DELIVERY_INVENTORY_CAPACITY cannot be negative")
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Auction: AuctionConfig{
			TaxRate:              0.05,
			Currency:             "coins",
			MaxDuration:          168 * time.Hour,
			CommitTimeout:        5 * time.Second,
			CompensationAttempts: 3,
		},
		Sweeper: SweeperConfig{
			Enabled:     false,
			Interval:    30 * time.Second,
			BatchSize:   200,
			ItemTimeout: 5 * time.Second,
			Workers:     2,
		},
		Delivery: DeliveryConfig{
			InventoryCapacity: 36,
		},
	}
}
