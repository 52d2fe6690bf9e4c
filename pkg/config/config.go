package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Upstreams    UpstreamsConfig
	Sync         SyncConfig
	Reports      ReportsConfig
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
	Env          string `envconfig:"EVDR_APP_ENV" required:"true"`
	Port         string `envconfig:"EVDR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"EVDR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EVDR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"EVDR_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"EVDR_DB_DSN"`
	Driver string `envconfig:"EVDR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"EVDR_DB_HOST"`
	LegacyPort     int    `envconfig:"EVDR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"EVDR_DB_USER"`
	LegacyPassword string `envconfig:"EVDR_DB_PASSWORD"`
	LegacyName     string `envconfig:"EVDR_DB_NAME"`
	LegacySSLMode  string `envconfig:"EVDR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EVDR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EVDR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EVDR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EVDR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"EVDR_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"EVDR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EVDR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EVDR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EVDR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EVDR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// UpstreamsConfig holds base URLs for the source-of-record services the
// synchronizer pulls from. An empty URL disables that upstream.
type UpstreamsConfig struct {
	SalesURL    string        `envconfig:"EVDR_SALES_SERVICE_URL"`
	VehicleURL  string        `envconfig:"EVDR_VEHICLE_SERVICE_URL"`
	CustomerURL string        `envconfig:"EVDR_CUSTOMER_SERVICE_URL"`
	UserURL     string        `envconfig:"EVDR_USER_SERVICE_URL"`
	HTTPTimeout time.Duration `envconfig:"EVDR_UPSTREAM_HTTP_TIMEOUT" default:"30s"`
}

type SyncConfig struct {
	Interval time.Duration `envconfig:"EVDR_SYNC_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"EVDR_SYNC_LOCK_TTL" default:"10m"`
}

type ReportsConfig struct {
	ForecastBoundPct   float64 `envconfig:"EVDR_FORECAST_BOUND_PCT" default:"0.15"`
	SlowMovingAgeDays  int     `envconfig:"EVDR_SLOW_MOVING_AGE_DAYS" default:"90"`
	InstallmentRatePct float64 `envconfig:"EVDR_INSTALLMENT_ANNUAL_RATE_PCT" default:"12"`
	InstallmentMonths  int     `envconfig:"EVDR_INSTALLMENT_TERM_MONTHS" default:"12"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"EVDR_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
