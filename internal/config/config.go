package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centralizes the API configuration loaded from the environment.
type Config struct {
	Port            int
	DBDSN           string
	RedisURL        string
	JWTSecret       string
	JWTAccessTTL    time.Duration
	JWTRefreshTTL   time.Duration
	AllowOrigins    []string
	BackendURL      string
	FrontendURL     string
	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig
	OAuth           OAuthConfig
}

// RateLimitConfig holds simple throttling limits.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// OAuthConfig carries client credentials per integration provider.
type OAuthConfig struct {
	Google OAuthClient
	Slack  OAuthClient
	Zoom   OAuthClient
}

// OAuthClient is one provider's OAuth application credentials.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
}

// ClientConfig is what the terminal client needs: a single API base URL and
// a place to keep the session token.
type ClientConfig struct {
	BaseURL     string
	TokenFile   string
	HTTPTimeout time.Duration
}

// Load reads environment variables for the API and applies safe defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("invalid PORT")
	}
	cfg.Port = port

	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is required")
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET must be at least 32 characters")
	}

	accessTTL, err := parseDurationEnv("JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.JWTAccessTTL = accessTTL

	refreshTTL, err := parseDurationEnv("JWT_REFRESH_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTRefreshTTL = refreshTTL

	for _, origin := range strings.Split(getEnv("ALLOW_ORIGINS", "http://localhost:3000"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.BackendURL = strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8080"), "/")
	cfg.FrontendURL = strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/")

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	cfg.OAuth = OAuthConfig{
		Google: OAuthClient{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
		Slack: OAuthClient{
			ClientID:     getEnv("SLACK_CLIENT_ID", ""),
			ClientSecret: getEnv("SLACK_CLIENT_SECRET", ""),
		},
		Zoom: OAuthClient{
			ClientID:     getEnv("ZOOM_CLIENT_ID", ""),
			ClientSecret: getEnv("ZOOM_CLIENT_SECRET", ""),
		},
	}

	return cfg, nil
}

// LoadClient reads the terminal client's configuration. The API base URL is a
// single configurable value: the original dashboard mixed an env-configured
// origin with a hard-coded hosted URL in different views, which we treat as a
// defect rather than a feature.
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	base := strings.TrimRight(strings.TrimSpace(getEnv("TEND_API_URL", "http://localhost:8080")), "/")
	if base == "" {
		return nil, errors.New("TEND_API_URL must not be empty")
	}

	tokenFile := getEnv("TEND_TOKEN_FILE", "")
	if tokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		tokenFile = filepath.Join(dir, "tend", "token")
	}

	return &ClientConfig{
		BaseURL:     base,
		TokenFile:   tokenFile,
		HTTPTimeout: 15 * time.Second,
	}, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return dur, nil
}
