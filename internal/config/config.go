package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session persistence backends.
const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendSQLite   = "sqlite"
	SessionBackendPostgres = "postgres"
)

// Config holds runtime configuration values for the client and the development API.
type Config struct {
	AppName           string
	AppEnv            string
	LogLevel          string
	APIBaseURL        string
	HTTPTimeout       time.Duration
	MessageClearDelay time.Duration
	SessionBackend    string
	SessionRedisURL   string
	SessionKeyPrefix  string
	SessionDSN        string
	AuditNATSURL      string
	AuditSubject      string
	DevAPIPort        string
	DevAPIDriver      string
	DevAPIDSN         string
	DevAPIJWTSecret   string
	DevAPITokenTTL    time.Duration
	DevAPISeed        bool
	DevAPIRateLimit   int
}

// DevAPIAddress returns the address the development API should listen on.
func (c Config) DevAPIAddress() string {
	if strings.HasPrefix(c.DevAPIPort, ":") {
		return c.DevAPIPort
	}

	return fmt.Sprintf(":%s", c.DevAPIPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("COURSESYNC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "coursesync")
	v.SetDefault("app.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("api.base_url", "https://backend-sdev255-final-project.onrender.com/api")
	v.SetDefault("http_timeout", "0s")
	v.SetDefault("message_clear_delay", "3s")
	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.redis_prefix", "coursesync:session:")
	v.SetDefault("session.dsn", "coursesync-session.db")
	v.SetDefault("audit.subject", "coursesync.actions")
	v.SetDefault("devapi.port", "8080")
	v.SetDefault("devapi.driver", SessionBackendSQLite)
	v.SetDefault("devapi.dsn", "file::memory:?cache=shared")
	v.SetDefault("devapi.token_ttl", "24h")
	v.SetDefault("devapi.jwt_secret", "coursesync-dev-secret")
	v.SetDefault("devapi.seed", true)
	v.SetDefault("devapi.auth_rate_limit", 30)

	httpTimeout, err := parseDuration(v, "http_timeout")
	if err != nil {
		return Config{}, err
	}
	clearDelay, err := parseDuration(v, "message_clear_delay")
	if err != nil {
		return Config{}, err
	}
	tokenTTL, err := parseDuration(v, "devapi.token_ttl")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		LogLevel:          strings.ToLower(v.GetString("log.level")),
		APIBaseURL:        strings.TrimRight(v.GetString("api.base_url"), "/"),
		HTTPTimeout:       httpTimeout,
		MessageClearDelay: clearDelay,
		SessionBackend:    strings.ToLower(v.GetString("session.backend")),
		SessionRedisURL:   v.GetString("session.redis_url"),
		SessionKeyPrefix:  v.GetString("session.redis_prefix"),
		SessionDSN:        v.GetString("session.dsn"),
		AuditNATSURL:      v.GetString("audit.nats_url"),
		AuditSubject:      v.GetString("audit.subject"),
		DevAPIPort:        v.GetString("devapi.port"),
		DevAPIDriver:      strings.ToLower(v.GetString("devapi.driver")),
		DevAPIDSN:         v.GetString("devapi.dsn"),
		DevAPIJWTSecret:   v.GetString("devapi.jwt_secret"),
		DevAPITokenTTL:    tokenTTL,
		DevAPISeed:        v.GetBool("devapi.seed"),
		DevAPIRateLimit:   v.GetInt("devapi.auth_rate_limit"),
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("api base url must be provided")
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory, SessionBackendSQLite, SessionBackendPostgres:
	case SessionBackendRedis:
		if cfg.SessionRedisURL == "" {
			return Config{}, fmt.Errorf("session redis url must be provided for the redis backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}

	if cfg.MessageClearDelay <= 0 {
		cfg.MessageClearDelay = 3 * time.Second
	}

	if cfg.DevAPITokenTTL <= 0 {
		cfg.DevAPITokenTTL = 24 * time.Hour
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return d, nil
}
