package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the namespace applied to every environment variable.
const EnvPrefix = "CLASSMART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Media         MediaConfig
	Mail          MailConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"CLASSMART_APP_ENV" required:"true"`
	Port         string `envconfig:"CLASSMART_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"CLASSMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CLASSMART_LOG_WARN_STACK" default:"false"`
	BaseURL      string `envconfig:"CLASSMART_APP_BASE_URL" default:"http://localhost:8000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CLASSMART_DB_DSN"`
	Driver string `envconfig:"CLASSMART_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"CLASSMART_DB_HOST"`
	Port     int    `envconfig:"CLASSMART_DB_PORT" default:"5432"`
	User     string `envconfig:"CLASSMART_DB_USER"`
	Password string `envconfig:"CLASSMART_DB_PASSWORD"`
	Name     string `envconfig:"CLASSMART_DB_NAME"`
	SSLMode  string `envconfig:"CLASSMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CLASSMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CLASSMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CLASSMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CLASSMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CLASSMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CLASSMART_REDIS_ADDR"`
	Password     string        `envconfig:"CLASSMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"CLASSMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CLASSMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CLASSMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CLASSMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CLASSMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CLASSMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CLASSMART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CLASSMART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CLASSMART_JWT_EXPIRATION_MINUTES" default:"1440"`
	SessionTTLMinutes int    `envconfig:"CLASSMART_SESSION_TTL_MINUTES" default:"43200"`
	VerifyTTLMinutes  int    `envconfig:"CLASSMART_VERIFY_TOKEN_TTL_MINUTES" default:"60"`
}

// SessionTTL returns the redis session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

// VerifyTTL returns the lifetime of email verification tokens.
func (j JWTConfig) VerifyTTL() time.Duration {
	if j.VerifyTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.VerifyTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CLASSMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CLASSMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CLASSMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CLASSMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CLASSMART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CLASSMART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"CLASSMART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CLASSMART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"CLASSMART_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"CLASSMART_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"CLASSMART_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type MediaConfig struct {
	UploadDir   string `envconfig:"CLASSMART_MEDIA_UPLOAD_DIR" default:"uploads"`
	PublicPath  string `envconfig:"CLASSMART_MEDIA_PUBLIC_PATH" default:"/media"`
	MaxUploadMB int    `envconfig:"CLASSMART_MEDIA_MAX_UPLOAD_MB" default:"10"`
}

type MailConfig struct {
	SendgridAPIKey string `envconfig:"CLASSMART_SENDGRID_API_KEY"`
	DefaultFrom    string `envconfig:"CLASSMART_SENDGRID_FROM_EMAIL" default:"no-reply@classmart.store"`
}

// Enabled reports whether an outbound mail provider is configured.
func (m MailConfig) Enabled() bool {
	return strings.TrimSpace(m.SendgridAPIKey) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CLASSMART_AUTO_MIGRATE" default:"false"`
	UseSQLite   bool `envconfig:"CLASSMART_USE_SQLITE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"CLASSMART_DB_HOST": db.Host,
		"CLASSMART_DB_USER": db.User,
		"CLASSMART_DB_NAME": db.Name,
	}
	for _, env := range []string{"CLASSMART_DB_HOST", "CLASSMART_DB_USER", "CLASSMART_DB_NAME"} {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either CLASSMART_DB_DSN or %s are required", strings.Join(missing, ", "))
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
