package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Remote backends.
const (
	RemoteDatabase = "database"
	RemoteSupabase = "supabase"
)

var (
	ErrAPIURLMissing  = errors.New("environment variable API_URL must be set")
	ErrAPIURLInvalid  = errors.New("environment variable API_URL must be a valid URL")
	ErrRemoteInvalid  = errors.New("REMOTE_BACKEND must be one of 'database', 'supabase'")
	ErrTimeoutInvalid = errors.New("REMOTE_TIMEOUT must be a positive duration, e.g. '10s'")
	ErrOwnerMissing   = errors.New("OWNER_ID must be set")
	ErrSupabaseConfig = errors.New("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
)

type Config struct {
	APIURL        *url.URL
	Port          string
	Remote        string
	DataDir       string
	DB            Postgres
	Supabase      Supabase
	OwnerID       string
	RemoteTimeout time.Duration
	AMQP          AMQP
}

// Postgres is used instead of SQLite when Host is set.
type Postgres struct {
	Host     string
	User     string
	Password string
	Name     string
}

type Supabase struct {
	URL         string
	AnonKey     string
	AccessToken string
}

// AMQP publishing is enabled when URL is set.
type AMQP struct {
	URL      string
	Exchange string
}

// Load reads the configuration from the environment. Variables from a .env
// file in the working directory are loaded first, but never override
// variables that are already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, using environment variables")
	}

	c := Config{
		Port:    lookup("PORT", "8080"),
		Remote:  lookup("REMOTE_BACKEND", RemoteDatabase),
		DataDir: lookup("DATA_DIR", "data"),
		DB: Postgres{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Supabase: Supabase{
			URL:         os.Getenv("SUPABASE_URL"),
			AnonKey:     os.Getenv("SUPABASE_ANON_KEY"),
			AccessToken: os.Getenv("SUPABASE_ACCESS_TOKEN"),
		},
		OwnerID: strings.TrimSpace(os.Getenv("OWNER_ID")),
		AMQP: AMQP{
			URL:      os.Getenv("AMQP_URL"),
			Exchange: lookup("AMQP_EXCHANGE", "envelopes"),
		},
	}

	var errs []error

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		errs = append(errs, ErrAPIURLMissing)
	} else {
		u, err := url.Parse(apiURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ErrAPIURLInvalid)
		} else {
			c.APIURL = u
		}
	}

	timeout, err := time.ParseDuration(lookup("REMOTE_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		errs = append(errs, ErrTimeoutInvalid)
	}
	c.RemoteTimeout = timeout

	errs = append(errs, c.Validate())
	return c, errors.Join(errs...)
}

// Validate checks that the remote backend can be configured.
func (c Config) Validate() error {
	var errs []error

	switch c.Remote {
	case RemoteDatabase:
		if c.OwnerID == "" {
			errs = append(errs, ErrOwnerMissing)
		}
	case RemoteSupabase:
		if c.Supabase.URL == "" || c.Supabase.AnonKey == "" {
			errs = append(errs, ErrSupabaseConfig)
		}

		// The owner can be read from the access token
		if c.OwnerID == "" && c.Supabase.AccessToken == "" {
			errs = append(errs, fmt.Errorf("%w or SUPABASE_ACCESS_TOKEN must contain a subject", ErrOwnerMissing))
		}
	default:
		errs = append(errs, fmt.Errorf("%w, got '%s'", ErrRemoteInvalid, c.Remote))
	}

	return errors.Join(errs...)
}

// UsePostgres reports if the database backend connects to PostgreSQL.
func (c Config) UsePostgres() bool {
	return c.DB.Host != ""
}

// PostgresDSN is the connection string for gorm's postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s", c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name)
}

// SQLiteDSN is the path of the SQLite database inside the data directory.
func (c Config) SQLiteDSN() string {
	return filepath.Join(c.DataDir, "gorm.db") + "?_pragma=foreign_keys(1)"
}

func lookup(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
