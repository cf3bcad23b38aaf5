package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Receipts     ReceiptsConfig
	Public       PublicConfig
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
	Env          string   `envconfig:"OPSDESK_APP_ENV" required:"true"`
	Port         string   `envconfig:"OPSDESK_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"OPSDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"OPSDESK_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"OPSDESK_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OPSDESK_DB_DSN"`
	Driver string `envconfig:"OPSDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"OPSDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"OPSDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"OPSDESK_DB_USER"`
	LegacyPassword string `envconfig:"OPSDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"OPSDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"OPSDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OPSDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OPSDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OPSDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OPSDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either OPSDESK_DB_DSN or host/user/name settings are required")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.LegacyUser, d.LegacyPassword),
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   d.LegacyName,
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"OPSDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"OPSDESK_REDIS_ADDR"`
	Password     string        `envconfig:"OPSDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"OPSDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OPSDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OPSDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OPSDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OPSDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OPSDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"OPSDESK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"OPSDESK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"OPSDESK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"OPSDESK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OPSDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OPSDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"OPSDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"OPSDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OPSDESK_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"OPSDESK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"OPSDESK_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"OPSDESK_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"OPSDESK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"OPSDESK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"OPSDESK_GCS_BUCKET_NAME" required:"true"`
	UploadURLExpiry   time.Duration `envconfig:"OPSDESK_GCS_UPLOAD_URL_EXPIRY" default:"15m"`
	DownloadURLExpiry time.Duration `envconfig:"OPSDESK_GCS_DOWNLOAD_URL_EXPIRY" default:"1h"`
}

type ReceiptsConfig struct {
	MaxUploadMB int `envconfig:"OPSDESK_RECEIPTS_MAX_UPLOAD_MB" default:"20"`
}

// PublicConfig carries the externally visible origin used when deriving
// QR-code target URLs.
type PublicConfig struct {
	Origin string `envconfig:"OPSDESK_PUBLIC_ORIGIN" required:"true"`
}
