package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SITEDIARY"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Parser ParserConfig
	OCR    OCRConfig
	Enrich EnrichConfig
	Usage  UsageConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds session token signing and cookie settings.
type JWTConfig struct {
	Secret       string        `mapstructure:"secret"`
	Expiry       time.Duration `mapstructure:"expiry"`
	Issuer       string        `mapstructure:"issuer"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// S3Config holds settings of the diary photo bucket.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ParserProviderConfig holds settings for a single AI contact parser.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds the contact parser chain. Providers are tried in order
// primary, secondary, tertiary; the local extractor runs last when enabled.
type ParserConfig struct {
	Primary       ParserProviderConfig `mapstructure:"primary"`
	Secondary     ParserProviderConfig `mapstructure:"secondary"`
	Tertiary      ParserProviderConfig `mapstructure:"tertiary"`
	LocalFallback bool                 `mapstructure:"local_fallback"`
}

// PrimaryConfig returns the primary provider config, or nil if not configured.
func (p *ParserConfig) PrimaryConfig() *ParserProviderConfig {
	return configured(&p.Primary)
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	return configured(&p.Secondary)
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (p *ParserConfig) TertiaryConfig() *ParserProviderConfig {
	return configured(&p.Tertiary)
}

// Chain returns the configured AI providers in fallback order.
func (p *ParserConfig) Chain() []*ParserProviderConfig {
	var out []*ParserProviderConfig
	for _, c := range []*ParserProviderConfig{p.PrimaryConfig(), p.SecondaryConfig(), p.TertiaryConfig()} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func configured(c *ParserProviderConfig) *ParserProviderConfig {
	if c.Provider == "" {
		return nil
	}
	return c
}

// OCRConfig holds text recognition settings.
type OCRConfig struct {
	VisionAPIKey       string   `mapstructure:"vision_api_key"`
	VisionEndpoint     string   `mapstructure:"vision_endpoint"`
	TimeoutSecs        int      `mapstructure:"timeout_secs"`
	LanguageHints      []string `mapstructure:"language_hints"`
	TesseractLanguages []string `mapstructure:"tesseract_languages"`
	MaxDimension       int      `mapstructure:"max_dimension"`
	MaxImageSizeMB     int64    `mapstructure:"max_image_size_mb"`
}

// EnrichConfig holds partner enrichment settings.
type EnrichConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// UsageConfig holds the per-provider monthly call limit. Zero disables the limit.
type UsageConfig struct {
	MonthlyLimit int `mapstructure:"monthly_limit"`
}

var defaults = map[string]any{
	"server.port":          ":8080",
	"server.read_timeout":  "30s",
	"server.write_timeout": "60s",
	"server.environment":   "development",

	"db.host":     "localhost",
	"db.port":     5432,
	"db.user":     "sitediary",
	"db.password": "sitediary_secret",
	"db.name":     "sitediary",
	"db.sslmode":  "disable",
	"db.max_open": 25,
	"db.max_idle": 10,

	"jwt.secret":        "change-me-in-production",
	"jwt.expiry":        "168h",
	"jwt.issuer":        "sitediary",
	"jwt.cookie_name":   "sd_session",
	"jwt.cookie_secure": false,

	"s3.region":           "eu-central-1",
	"s3.bucket":           "diary-photos",
	"s3.endpoint":         "",
	"s3.access_key":       "",
	"s3.secret_key":       "",
	"s3.max_file_size_mb": 15,
	"s3.presign_expiry":   600,

	"log.level":  "debug",
	"log.format": "console",

	"cors.allowed_origins": "http://localhost:3000,http://127.0.0.1:3000",

	"parser.primary.provider":        "",
	"parser.primary.api_key":         "",
	"parser.primary.default_model":   "",
	"parser.primary.max_retries":     1,
	"parser.primary.timeout_secs":    20,
	"parser.secondary.provider":      "",
	"parser.secondary.api_key":       "",
	"parser.secondary.default_model": "",
	"parser.secondary.max_retries":   1,
	"parser.secondary.timeout_secs":  20,
	"parser.tertiary.provider":       "",
	"parser.tertiary.api_key":        "",
	"parser.tertiary.default_model":  "",
	"parser.tertiary.max_retries":    1,
	"parser.tertiary.timeout_secs":   20,
	"parser.local_fallback":          true,

	"ocr.vision_api_key":      "",
	"ocr.vision_endpoint":     "",
	"ocr.timeout_secs":        20,
	"ocr.language_hints":      "el,en",
	"ocr.tesseract_languages": "ell,eng",
	"ocr.max_dimension":       2000,
	"ocr.max_image_size_mb":   10,

	"enrich.api_key":      "",
	"enrich.model":        "gemini-2.5-pro",
	"enrich.timeout_secs": 60,

	"usage.monthly_limit": 1000,
}

// Load reads configuration from environment variables with the SITEDIARY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested keys are bound explicitly so Get* sees them without a config file.
	for key, val := range defaults {
		v.SetDefault(key, val)
		if err := v.BindEnv(key, EnvName(key)); err != nil {
			return nil, fmt.Errorf("config: binding %s: %w", key, err)
		}
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SITEDIARY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvName("server.port")) == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:       v.GetString("jwt.secret"),
		Expiry:       v.GetDuration("jwt.expiry"),
		Issuer:       v.GetString("jwt.issuer"),
		CookieName:   v.GetString("jwt.cookie_name"),
		CookieSecure: v.GetBool("jwt.cookie_secure"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Parser = ParserConfig{
		Primary:       providerConfig(v, "parser.primary"),
		Secondary:     providerConfig(v, "parser.secondary"),
		Tertiary:      providerConfig(v, "parser.tertiary"),
		LocalFallback: v.GetBool("parser.local_fallback"),
	}
	cfg.OCR = OCRConfig{
		VisionAPIKey:       v.GetString("ocr.vision_api_key"),
		VisionEndpoint:     v.GetString("ocr.vision_endpoint"),
		TimeoutSecs:        v.GetInt("ocr.timeout_secs"),
		LanguageHints:      splitList(v.GetString("ocr.language_hints")),
		TesseractLanguages: splitList(v.GetString("ocr.tesseract_languages")),
		MaxDimension:       v.GetInt("ocr.max_dimension"),
		MaxImageSizeMB:     v.GetInt64("ocr.max_image_size_mb"),
	}
	cfg.Enrich = EnrichConfig{
		APIKey:      v.GetString("enrich.api_key"),
		Model:       v.GetString("enrich.model"),
		TimeoutSecs: v.GetInt("enrich.timeout_secs"),
	}
	cfg.Usage = UsageConfig{
		MonthlyLimit: v.GetInt("usage.monthly_limit"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnvName returns the environment variable bound to a config key,
// e.g. "parser.primary.api_key" -> "SITEDIARY_PARSER_PRIMARY_API_KEY".
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret must not be empty")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("config: jwt.expiry must be positive")
	}
	if c.Usage.MonthlyLimit < 0 {
		return fmt.Errorf("config: usage.monthly_limit must not be negative")
	}
	return nil
}

func providerConfig(v *viper.Viper, prefix string) ParserProviderConfig {
	return ParserProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       v.GetString(prefix + ".api_key"),
		DefaultModel: v.GetString(prefix + ".default_model"),
		MaxRetries:   v.GetInt(prefix + ".max_retries"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}

// splitList parses a comma-separated env value.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
