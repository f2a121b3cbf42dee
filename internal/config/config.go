package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"

	// Development-only signing fallback. Production refuses to start on it.
	devJWTSecret = "dev-only-signing-secret"
)

type AppConfig struct {
	Port       int    `yaml:"port"`
	Env        string `yaml:"env"`
	GinMode    string `yaml:"gin_mode"`
	ExposeCode bool   `yaml:"expose_code"`
	UploadDir  string `yaml:"upload_dir"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type VerificationConfig struct {
	TTL   string `yaml:"ttl"`
	Store string `yaml:"store"` // "memory" (default) or "redis"
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Secure   bool   `yaml:"secure"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	Enabled  bool   `yaml:"enabled"`
}

type SMSConfig struct {
	Provider   string `yaml:"provider"`
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
	Enabled    bool   `yaml:"enabled"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Verification VerificationConfig `yaml:"verification"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	SMS          SMSConfig          `yaml:"sms"`
	Casbin       CasbinConfig       `yaml:"casbin"`
}

type Config struct {
	Port            string
	Env             string
	GinMode         string
	ExposeCode      bool
	UploadDir       string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	JWTTTL          time.Duration
	CodeTTL         time.Duration
	CodeStore       string
	SMTP            SMTPConfig
	SMS             SMSConfig
	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// IsProduction reports whether the deployment is flagged as production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	jwtTTL, err := time.ParseDuration(configFile.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}

	codeTTL, err := time.ParseDuration(configFile.Verification.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification code TTL: %w", err)
	}

	cfg := &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		Env:             env("APP_ENV", configFile.App.Env),
		GinMode:         configFile.App.GinMode,
		ExposeCode:      configFile.App.ExposeCode,
		UploadDir:       configFile.App.UploadDir,
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		JWTTTL:          jwtTTL,
		CodeTTL:         codeTTL,
		CodeStore:       configFile.Verification.Store,
		SMTP:            configFile.SMTP,
		SMS:             configFile.SMS,
		CasbinModelPath: configFile.Casbin.ModelPath,
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.CodeStore == "" {
		cfg.CodeStore = "memory"
	}

	// A guessable signing key must never reach production.
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("jwt secret is required in production")
		}
		cfg.JWTSecret = devJWTSecret
	}

	// The raw code in the issue-code response is a test convenience only.
	if cfg.IsProduction() {
		cfg.ExposeCode = false
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
