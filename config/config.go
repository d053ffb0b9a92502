package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	// ErrMissingSetting is returned when a required setting is absent.
	ErrMissingSetting = errors.New("missing required setting")

	// ErrInvalidSetting is returned when a setting cannot be parsed or is not recognised.
	ErrInvalidSetting = errors.New("invalid setting")
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// CORS policies.
const (
	// CORSPermissive allows any origin, method and header, with credentials.
	CORSPermissive = "permissive"
	// CORSRestricted allows only the configured origins, without credentials.
	CORSRestricted = "restricted"
)

// Config holds the service configuration.
type Config struct {
	HTTPAddr        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	Store           StoreConfig
	CORS            CORSConfig
}

// StoreConfig selects and configures the todo store backend.
type StoreConfig struct {
	// Backend is either BackendMemory or BackendMongo.
	Backend string

	// MongoURI, Database and Collection are required for BackendMongo.
	MongoURI   string
	Database   string
	Collection string

	// ConnectTimeout bounds dialing and pinging MongoDB at startup.
	ConnectTimeout time.Duration
}

// CORSConfig holds the cross-origin policy of the HTTP API.
type CORSConfig struct {
	Policy         string
	AllowedOrigins []string
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		HTTPAddr:        "127.0.0.1:8080",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		Store: StoreConfig{
			Backend:        BackendMemory,
			ConnectTimeout: 10 * time.Second,
		},
		CORS: CORSConfig{
			Policy: CORSPermissive,
		},
	}
}

// Load reads the configuration from the environment.
// Variables from a .env file in the working directory are loaded first and
// never override variables already set in the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.Store.Backend = strings.ToLower(getEnv("TODO_STORE", cfg.Store.Backend))
	cfg.Store.MongoURI = os.Getenv("MONGODB_URI")
	cfg.Store.Database = os.Getenv("DATABASE_NAME")
	cfg.Store.Collection = os.Getenv("COLLECTION_NAME")
	cfg.CORS.Policy = strings.ToLower(getEnv("CORS_POLICY", cfg.CORS.Policy))
	cfg.CORS.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	if cfg.Store.ConnectTimeout, err = getEnvDuration("MONGODB_CONNECT_TIMEOUT", cfg.Store.ConnectTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate checks that every setting required by the selected options is present.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("%w: HTTP_ADDR", ErrMissingSetting)
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("%w: MONGODB_URI", ErrMissingSetting)
		}
		if c.Store.Database == "" {
			return fmt.Errorf("%w: DATABASE_NAME", ErrMissingSetting)
		}
		if c.Store.Collection == "" {
			return fmt.Errorf("%w: COLLECTION_NAME", ErrMissingSetting)
		}
	default:
		return fmt.Errorf("%w: TODO_STORE=%q", ErrInvalidSetting, c.Store.Backend)
	}

	switch c.CORS.Policy {
	case CORSPermissive:
	case CORSRestricted:
		if len(c.CORS.AllowedOrigins) == 0 {
			return fmt.Errorf("%w: CORS_ALLOWED_ORIGINS", ErrMissingSetting)
		}
		for _, origin := range c.CORS.AllowedOrigins {
			if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("%w: CORS_ALLOWED_ORIGINS origin %q", ErrInvalidSetting, origin)
			}
		}
	default:
		return fmt.Errorf("%w: CORS_POLICY=%q", ErrInvalidSetting, c.CORS.Policy)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, key, value)
	}
	return d, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
