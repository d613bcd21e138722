package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"agora/internal/core/post"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Settings تنظیمات برنامه که یک بار خوانده و به همه‌ی سازنده‌ها پاس داده می‌شود
type Settings struct {
	AppPort    string
	AppEnv     string
	Hostname   string
	TLSEnabled bool
	JWTSecret  []byte

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MetadataTimeout  time.Duration
	MetadataCacheTTL time.Duration
	MaxTitleLength   int
	NotifyWorkers    int
	NotifyQueueSize  int
	UserAgent        string
}

const (
	DefaultMaxTitleLength   = post.MaxNameLength
	DefaultMetadataTimeout  = 10 * time.Second
	DefaultMetadataCacheTTL = time.Hour
)

// ProtocolAndHostname e.g. "https://example.org".
func (s *Settings) ProtocolAndHostname() string {
	if s.TLSEnabled {
		return "https://" + s.Hostname
	}
	return "http://" + s.Hostname
}

// Load بارگذاری تنظیمات از .env و متغیرهای محیطی
func Load(logger *zap.Logger) (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds Settings from a lookup function.
func FromEnv(getenv func(string) string) (*Settings, error) {
	s := &Settings{
		AppPort:       orDefault(getenv("APP_PORT"), "8536"),
		AppEnv:        orDefault(getenv("APP_ENV"), "development"),
		Hostname:      getenv("HOSTNAME"),
		JWTSecret:     []byte(getenv("JWT_SECRET")),
		DBDriver:      strings.ToLower(orDefault(getenv("DB_DRIVER"), "mysql")),
		DBDSN:         getenv("DB_DSN"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		UserAgent:     orDefault(getenv("USER_AGENT"), "agora/0.1"),
	}

	var missing []string
	for name, v := range map[string]string{
		"HOSTNAME":   s.Hostname,
		"JWT_SECRET": string(s.JWTSecret),
		"DB_DSN":     s.DBDSN,
		"REDIS_ADDR": s.RedisAddr,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	if s.DBDriver != "mysql" && s.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
	}

	var err error
	if s.TLSEnabled, err = parseBool(getenv("TLS_ENABLED"), true); err != nil {
		return nil, fmt.Errorf("TLS_ENABLED: %w", err)
	}
	if s.RedisDB, err = parseInt(getenv("REDIS_DB"), 0); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	if s.MetadataTimeout, err = parseDuration(getenv("METADATA_TIMEOUT"), DefaultMetadataTimeout); err != nil {
		return nil, fmt.Errorf("METADATA_TIMEOUT: %w", err)
	}
	if s.MetadataCacheTTL, err = parseDuration(getenv("METADATA_CACHE_TTL"), DefaultMetadataCacheTTL); err != nil {
		return nil, fmt.Errorf("METADATA_CACHE_TTL: %w", err)
	}
	if s.MaxTitleLength, err = parseInt(getenv("MAX_TITLE_LENGTH"), DefaultMaxTitleLength); err != nil {
		return nil, fmt.Errorf("MAX_TITLE_LENGTH: %w", err)
	}
	if s.NotifyWorkers, err = parseInt(getenv("NOTIFY_WORKERS"), 4); err != nil {
		return nil, fmt.Errorf("NOTIFY_WORKERS: %w", err)
	}
	if s.NotifyQueueSize, err = parseInt(getenv("NOTIFY_QUEUE_SIZE"), 256); err != nil {
		return nil, fmt.Errorf("NOTIFY_QUEUE_SIZE: %w", err)
	}
	if s.MaxTitleLength <= 0 || s.NotifyWorkers <= 0 || s.NotifyQueueSize <= 0 {
		return nil, errors.New("MAX_TITLE_LENGTH, NOTIFY_WORKERS and NOTIFY_QUEUE_SIZE must be positive")
	}
	if s.MaxTitleLength > post.MaxNameLength {
		return nil, fmt.Errorf("MAX_TITLE_LENGTH: %d exceeds the post name column (%d)", s.MaxTitleLength, post.MaxNameLength)
	}
	return s, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseInt(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func parseBool(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	return strconv.ParseBool(v)
}

func parseDuration(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}
