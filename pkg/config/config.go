package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "BOOKPASAL"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Store        StoreConfig
	Cart         CartConfig
	Shipping     ShippingConfig
	AdminAuth    AdminAuthConfig
	Sendgrid     SendgridConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BOOKPASAL_APP_ENV" required:"true"`
	Port         string `envconfig:"BOOKPASAL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BOOKPASAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOOKPASAL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BOOKPASAL_DB_DSN"`
	Driver string `envconfig:"BOOKPASAL_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BOOKPASAL_DB_HOST"`
	Port     int    `envconfig:"BOOKPASAL_DB_PORT" default:"5432"`
	User     string `envconfig:"BOOKPASAL_DB_USER"`
	Password string `envconfig:"BOOKPASAL_DB_PASSWORD"`
	Name     string `envconfig:"BOOKPASAL_DB_NAME"`
	SSLMode  string `envconfig:"BOOKPASAL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BOOKPASAL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BOOKPASAL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BOOKPASAL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BOOKPASAL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BOOKPASAL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BOOKPASAL_REDIS_ADDR"`
	Password     string        `envconfig:"BOOKPASAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"BOOKPASAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BOOKPASAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BOOKPASAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BOOKPASAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BOOKPASAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BOOKPASAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StoreConfig carries the storefront identity used in outbound mail.
type StoreConfig struct {
	Name          string `envconfig:"BOOKPASAL_STORE_NAME" default:"Book Pasal"`
	AdminEmail    string `envconfig:"BOOKPASAL_STORE_ADMIN_EMAIL" required:"true"`
	FromEmail     string `envconfig:"BOOKPASAL_STORE_FROM_EMAIL" required:"true"`
	Currency      string `envconfig:"BOOKPASAL_STORE_CURRENCY" default:"NPR"`
	EbookPassword string `envconfig:"BOOKPASAL_STORE_EBOOK_PASSWORD"`
	DownloadPath  string `envconfig:"BOOKPASAL_STORE_DOWNLOAD_PATH" default:"/downloads"`
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"BOOKPASAL_CART_SESSION_TTL" default:"168h"`
}

type ShippingConfig struct {
	FlatRate string `envconfig:"BOOKPASAL_SHIPPING_FLAT_RATE" default:"100"`
}

// FlatRateAmount parses the configured flat shipping rate.
func (s ShippingConfig) FlatRateAmount() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(s.FlatRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing shipping flat rate %q: %w", s.FlatRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("shipping flat rate must be non-negative")
	}
	return rate, nil
}

type AdminAuthConfig struct {
	JWTSecret string `envconfig:"BOOKPASAL_ADMIN_JWT_SECRET" required:"true"`
	Issuer    string `envconfig:"BOOKPASAL_ADMIN_JWT_ISSUER" default:"bookpasal"`
}

type SendgridConfig struct {
	APIKey string `envconfig:"BOOKPASAL_SENDGRID_API_KEY"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BOOKPASAL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BOOKPASAL_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == "sqlite" {
		db.DSN = "file:bookpasal.db?cache=shared"
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"BOOKPASAL_DB_HOST": db.Host,
		"BOOKPASAL_DB_USER": db.User,
		"BOOKPASAL_DB_NAME": db.Name,
	}
	for _, env := range []string{"BOOKPASAL_DB_HOST", "BOOKPASAL_DB_USER", "BOOKPASAL_DB_NAME"} {
		if required[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either BOOKPASAL_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
