package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"transit-cnmi/internal/panel"
	"transit-cnmi/internal/search"
	"transit-cnmi/internal/theme"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	StoreDriver string // sqlite | postgres | memory
	SQLitePath  string
	DatabaseURL string

	NATSURL           string
	NATSSubjectPrefix string
	LogNATSSubjects   bool
	MetricsAddr       string

	SearchLimit  int
	SnapPoints   panel.SnapPoints
	LoginDelay   time.Duration
	SessionTTL   time.Duration
	CatalogPath  string
	SystemScheme theme.Preference
}

func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.HTTPAddr = getenvDefault("HTTP_ADDR", ":8080")
	cfg.CORSOrigins = splitList(getenvDefault("CORS_ORIGINS", "http://localhost:8081,http://localhost:19006"))

	cfg.StoreDriver = strings.ToLower(getenvDefault("STORE_DRIVER", "sqlite"))
	switch cfg.StoreDriver {
	case "sqlite":
		cfg.SQLitePath = getenvDefault("SQLITE_PATH", "data/transit.db")
	case "postgres":
		dsn, err := postgresDSN()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseURL = dsn
	case "memory":
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER: %q", cfg.StoreDriver)
	}

	// Empty NATS_URL disables event publishing.
	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.NATSSubjectPrefix = getenvDefault("NATS_SUBJECT_PREFIX", "transit")
	cfg.LogNATSSubjects = parseBool(os.Getenv("LOG_NATS_SUBJECTS"))

	// Metrics listen address (e.g., ":9102"). Empty disables the metrics server.
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	if v := os.Getenv("SEARCH_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < search.MinLimit || n > search.MaxLimit {
			return nil, fmt.Errorf("invalid SEARCH_LIMIT: %q (want %d-%d)", v, search.MinLimit, search.MaxLimit)
		}
		cfg.SearchLimit = n
	} else {
		cfg.SearchLimit = search.DefaultLimit
	}

	if v := os.Getenv("SNAP_POINTS"); v != "" {
		p, err := panel.ParseSnapPoints(v)
		if err != nil || len(p) != 2 {
			return nil, fmt.Errorf("invalid SNAP_POINTS: %q", v)
		}
		cfg.SnapPoints = p
	} else {
		cfg.SnapPoints = panel.DefaultSnapPoints
	}

	if v := os.Getenv("LOGIN_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid LOGIN_DELAY_MS: %q", v)
		}
		cfg.LoginDelay = time.Duration(ms) * time.Millisecond
	} else {
		cfg.LoginDelay = time.Second
	}

	// Idle map sessions expire after this many minutes; 0 keeps them.
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		min, err := strconv.Atoi(v)
		if err != nil || min < 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES: %q", v)
		}
		cfg.SessionTTL = time.Duration(min) * time.Minute
	} else {
		cfg.SessionTTL = 30 * time.Minute
	}

	cfg.CatalogPath = os.Getenv("CATALOG_PATH")

	switch v := strings.ToLower(getenvDefault("SYSTEM_THEME", "light")); v {
	case "light":
		cfg.SystemScheme = theme.Light
	case "dark":
		cfg.SystemScheme = theme.Dark
	default:
		return nil, fmt.Errorf("invalid SYSTEM_THEME: %q", v)
	}

	return cfg, nil
}

// postgresDSN prefers DATABASE_URL / PG_DSN, else builds one from PG* vars.
func postgresDSN() (string, error) {
	if dsn := firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("PG_DSN")); dsn != "" {
		return dsn, nil
	}
	host := getenvDefault("PGHOST", "127.0.0.1")
	port := getenvDefault("PGPORT", "5432")
	user := getenvDefault("PGUSER", "postgres")
	pass := os.Getenv("PGPASSWORD")
	db := os.Getenv("PGDATABASE")
	if db == "" {
		return "", errors.New("PGDATABASE or DATABASE_URL must be set when STORE_DRIVER=postgres")
	}
	sslmode := getenvDefault("PGSSLMODE", "disable")
	if pass != "" {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", urlEscape(user), urlEscape(pass), host, port, db, sslmode), nil
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s", urlEscape(user), host, port, db, sslmode), nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	}
	return false
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func urlEscape(s string) string {
	// Minimal escape for DSN user/pass with special chars
	r := strings.NewReplacer("@", "%40", ":", "%3A", "/", "%2F", "?", "%3F", "#", "%23")
	return r.Replace(s)
}
