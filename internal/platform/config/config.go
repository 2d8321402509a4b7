package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Locale    LocaleConfig    `yaml:"locale"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

// ServerConfig は gRPC / HTTP サーバーに関する設定です。
type ServerConfig struct {
	GRPCListenAddr string `yaml:"grpc_listen_addr" env:"CAREERPATH_GRPC_LISTEN_ADDR"`
	HTTPListenAddr string `yaml:"http_listen_addr" env:"CAREERPATH_HTTP_LISTEN_ADDR"`

	// CORSAllowOrigins はカンマ区切りのオリジン一覧です。空の場合 CORS ヘッダーを付与しません。
	CORSAllowOrigins string `yaml:"cors_allow_origins" env:"CAREERPATH_CORS_ALLOW_ORIGINS"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host" env:"CAREERPATH_DB_HOST"`
	Port               int           `yaml:"port" env:"CAREERPATH_DB_PORT"`
	User               string        `yaml:"user" env:"CAREERPATH_DB_USER"`
	Password           string        `yaml:"password" env:"CAREERPATH_DB_PASSWORD"`
	Name               string        `yaml:"name" env:"CAREERPATH_DB_NAME"`
	SSLMode            string        `yaml:"ssl_mode" env:"CAREERPATH_DB_SSL_MODE"`
	MaxOpenConns       int           `yaml:"max_open_conns" env:"CAREERPATH_DB_MAX_OPEN_CONNS"`
	MaxIdleConns       int           `yaml:"max_idle_conns" env:"CAREERPATH_DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime" env:"CAREERPATH_DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time" env:"CAREERPATH_DB_CONN_MAX_IDLE_TIME"`
}

// LocaleConfig は給与表示に使う言語と通貨の設定です。
type LocaleConfig struct {
	Language string `yaml:"language" env:"CAREERPATH_LOCALE_LANGUAGE"`
	Currency string `yaml:"currency" env:"CAREERPATH_LOCALE_CURRENCY"`
}

// BootstrapConfig は起動時のマイグレーションとシード投入の設定です。
type BootstrapConfig struct {
	Migrate       bool   `yaml:"migrate" env:"CAREERPATH_BOOTSTRAP_MIGRATE"`
	MigrationsDir string `yaml:"migrations_dir" env:"CAREERPATH_BOOTSTRAP_MIGRATIONS_DIR"`
	SeedFile      string `yaml:"seed_file" env:"CAREERPATH_BOOTSTRAP_SEED_FILE"`
	FakeEmployees int    `yaml:"fake_employees" env:"CAREERPATH_BOOTSTRAP_FAKE_EMPLOYEES"`
}

// TracingConfig は OpenTelemetry の設定です。
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" env:"CAREERPATH_OTEL_ENABLED"`
	Endpoint    string `yaml:"endpoint" env:"CAREERPATH_OTEL_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"CAREERPATH_OTEL_SERVICE_NAME"`
}

const (
	defaultLanguage      = "en-US"
	defaultCurrency      = "USD"
	defaultMigrationsDir = "assets/migrations"
	defaultServiceName   = "careerpath"
	defaultConfigPath    = "assets/local.yaml"
	dotenvPath           = ".env"
)

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書きします。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDotEnv はカレントディレクトリの .env を環境変数に読み込みます。
// ファイルが存在しない場合は何もしません。既存の環境変数は上書きしません。
func LoadDotEnv() error {
	if err := godotenv.Load(dotenvPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", dotenvPath, err)
	}
	return nil
}

// EffectivePath はフラグ・CONFIG_PATH・既定値の順に設定ファイルのパスを決定します。
func EffectivePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return defaultConfigPath
}

func (c *Config) validateAndNormalize() error {
	if c.Server.GRPCListenAddr == "" && c.Server.HTTPListenAddr == "" {
		return fmt.Errorf("config: server.grpc_listen_addr or server.http_listen_addr must be set")
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Locale.validateAndNormalize(); err != nil {
		return err
	}

	if c.Bootstrap.MigrationsDir == "" {
		c.Bootstrap.MigrationsDir = defaultMigrationsDir
	}
	if c.Bootstrap.FakeEmployees < 0 {
		return fmt.Errorf("config: bootstrap.fake_employees must not be negative")
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = defaultServiceName
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("config: tracing.endpoint must be set when tracing is enabled")
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (l *LocaleConfig) validateAndNormalize() error {
	if l.Language == "" {
		l.Language = defaultLanguage
	}
	if _, err := language.Parse(l.Language); err != nil {
		return fmt.Errorf("config: locale.language: %w", err)
	}

	if l.Currency == "" {
		l.Currency = defaultCurrency
	}
	if _, err := currency.ParseISO(l.Currency); err != nil {
		return fmt.Errorf("config: locale.currency: %w", err)
	}
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx / golang-migrate 用の接続文字列を返します。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}
