package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config is the runtime configuration of the API server. It is built once at
// startup from the process environment.
type Config struct {
	Env      string
	Port     string
	LogLevel string

	PostgresURL string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string
	AppBaseURL  string

	Strava StravaConfig
	SMTP   SMTPConfig
}

type StravaConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (s StravaConfig) Enabled() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseSSL   bool
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// LoadDotEnvs follows the dotenv convention: .env.<env>.local has the highest
// priority and .env the lowest. godotenv never overrides a variable that is
// already set, so the load order is the priority order.
func LoadDotEnvs() {
	env := currentEnv()
	_ = godotenv.Load(".env." + env + ".local")
	if env != "test" {
		_ = godotenv.Load(".env.local")
	}
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load(".env")
}

func currentEnv() string {
	if env := os.Getenv("RUNMIND_ENV"); env != "" {
		return env
	}
	return "dev"
}

// Load reads the configuration from the environment. JWT_SECRET and
// POSTGRES_URL have no defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Env:         currentEnv(),
		Port:        getEnvWithDefault("PORT", "8080"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AppBaseURL:  getEnvWithDefault("APP_BASE_URL", "http://localhost:3000"),
		CORSOrigins: splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
		Strava: StravaConfig{
			ClientID:     os.Getenv("STRAVA_CLIENT_ID"),
			ClientSecret: os.Getenv("STRAVA_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("STRAVA_REDIRECT_URL"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			FromName: getEnvWithDefault("SMTP_FROM_NAME", "RunMind"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.PostgresURL == "" {
		return nil, errors.New("POSTGRES_URL is required")
	}

	ttl, err := time.ParseDuration(getEnvWithDefault("JWT_TTL", "60m"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid JWT_TTL")
	}
	cfg.JWTTTL = ttl

	smtpPort, err := strconv.Atoi(getEnvWithDefault("SMTP_PORT", "587"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid SMTP_PORT")
	}
	cfg.SMTP.Port = smtpPort
	cfg.SMTP.UseSSL = smtpPort == 465

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
