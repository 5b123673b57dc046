package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"court-reservations/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server       ServerConfig
	DB           DBConfig
	CORS         CORSConfig
	Log          LogConfig
	JWT          JWTConfig
	Booking      BookingConfig
	Verification VerificationConfig
	Redis        RedisConfig
	MQ           MQConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
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
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// Tokens are issued by the external identity provider; this service only validates them.
type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type BookingConfig struct {
	TimeZone     string        `envconfig:"BOOKING_TIMEZONE" default:"Asia/Tokyo"`
	CancelCutoff time.Duration `envconfig:"BOOKING_CANCEL_CUTOFF" default:"2h"`
}

const (
	CodeStorePostgres = "postgres"
	CodeStoreRedis    = "redis"
)

type VerificationConfig struct {
	CodeTTL  time.Duration `envconfig:"VERIFICATION_CODE_TTL" default:"3m"`
	Store    string        `envconfig:"VERIFICATION_STORE" default:"postgres"`
	HashCost int           `envconfig:"VERIFICATION_HASH_COST" default:"10"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// An empty URL disables the broker and falls back to log-only notifications.
type MQConfig struct {
	URL      string `envconfig:"MQ_URL"`
	Exchange string `envconfig:"MQ_EXCHANGE" default:"reservations.events"`
	Queue    string `envconfig:"MQ_QUEUE" default:"reservations.notifications"`
	Prefetch int    `envconfig:"MQ_PREFETCH" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid BOOKING_TIMEZONE %q", c.TimeZone)
	}
	return loc, nil
}

func (c MQConfig) Enabled() bool {
	return c.URL != ""
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errs.Wrap(err, "failed to load .env file")
	}
	return loadFromEnv()
}

// LoadSection fills a single section for processes that need only part of
// the configuration, such as the migrator and the notify worker.
func LoadSection[T any]() (T, error) {
	var section T
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return section, errs.Wrap(err, "failed to load .env file")
	}
	if err := envconfig.Process("", &section); err != nil {
		return section, errs.Wrap(err, "failed to process env config")
	}
	return section, nil
}

func loadFromEnv() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, errs.Wrap(err, "failed to process env config")
	}
	switch cfg.Verification.Store {
	case CodeStorePostgres, CodeStoreRedis:
	default:
		return Config{}, errs.Newf("unsupported VERIFICATION_STORE %q", cfg.Verification.Store)
	}
	if cfg.Booking.CancelCutoff < 0 || cfg.Verification.CodeTTL <= 0 {
		return Config{}, errs.New("cancel cutoff and code ttl must be positive")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-court-reservations",
			Duration: 15 * time.Minute,
		},
		Booking: BookingConfig{
			TimeZone:     "Asia/Tokyo",
			CancelCutoff: 2 * time.Hour,
		},
		Verification: VerificationConfig{
			CodeTTL:  3 * time.Minute,
			Store:    CodeStorePostgres,
			HashCost: 4, // bcrypt.MinCost keeps tests fast
		},
	}
}

