package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceJobsAPI = "jobsapi"
	SourceAdzuna  = "adzuna"

	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendNeo4j  = "neo4j"
)

// Config contains runtime settings for the job browser server
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080

	JobSource string // jobsapi or adzuna
	JobsAPI   struct {
		URL        string
		PageSize   int
		MaxRetries int
		RetryBase  time.Duration
		Timeout    time.Duration
	}
	CacheTTL          time.Duration // 0 disables the page cache
	PageInputDebounce time.Duration

	Adzuna struct {
		AppID   string
		AppKey  string
		Country string
	}

	StorageBackend string
	SQLitePath     string
	Redis          struct {
		Addr     string
		Password string
		DB       int
	}
	Neo4j struct {
		URI      string
		Username string
		Password string
	}

	Sheets struct {
		CredentialsPath string
		SpreadsheetID   string
	}
}

// Load populates config from environment variables. A .env file in the working
// directory is read first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel:       "info",
		Host:           "0.0.0.0",
		Port:           "8080",
		JobSource:      SourceJobsAPI,
		StorageBackend: BackendMemory,
		SQLitePath:     "data/job-browser.db",
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	var problems []string
	intVar := func(name string, def int) int {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			problems = append(problems, fmt.Sprintf("%s must be a non-negative integer", name))
			return def
		}
		return n
	}

	if v := os.Getenv("JOB_SOURCE"); v != "" {
		cfg.JobSource = strings.ToLower(strings.TrimSpace(v))
	}
	cfg.JobsAPI.URL = os.Getenv("JOBS_API_URL")
	cfg.JobsAPI.PageSize = intVar("JOBS_API_PAGE_SIZE", 11)
	cfg.JobsAPI.MaxRetries = intVar("JOBS_API_MAX_RETRIES", 2)
	cfg.JobsAPI.RetryBase = time.Duration(intVar("JOBS_API_RETRY_BASE_MS", 200)) * time.Millisecond
	cfg.JobsAPI.Timeout = time.Duration(intVar("JOBS_API_TIMEOUT_MS", 30000)) * time.Millisecond
	cfg.CacheTTL = time.Duration(intVar("JOBS_CACHE_TTL_SECONDS", 60)) * time.Second
	cfg.PageInputDebounce = time.Duration(intVar("PAGE_INPUT_DEBOUNCE_MS", 300)) * time.Millisecond

	cfg.Adzuna.AppID = os.Getenv("ADZUNA_APP_ID")
	cfg.Adzuna.AppKey = os.Getenv("ADZUNA_APP_KEY")
	if v := os.Getenv("ADZUNA_COUNTRY"); v != "" {
		cfg.Adzuna.Country = v
	} else {
		cfg.Adzuna.Country = "us"
	}

	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.StorageBackend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = intVar("REDIS_DB", 0)

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")
	cfg.Sheets.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")

	var missingVars []string

	switch cfg.JobSource {
	case SourceJobsAPI:
		if cfg.JobsAPI.URL == "" {
			missingVars = append(missingVars, "JOBS_API_URL")
		}
	case SourceAdzuna:
		if cfg.Adzuna.AppID == "" {
			missingVars = append(missingVars, "ADZUNA_APP_ID")
		}
		if cfg.Adzuna.AppKey == "" {
			missingVars = append(missingVars, "ADZUNA_APP_KEY")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown JOB_SOURCE %q", cfg.JobSource))
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if cfg.Redis.Addr == "" {
			missingVars = append(missingVars, "REDIS_ADDR")
		}
	case BackendNeo4j:
		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown STORAGE_BACKEND %q", cfg.StorageBackend))
	}

	if len(missingVars) > 0 {
		problems = append([]string{"missing required environment variables: " + strings.Join(missingVars, ", ")}, problems...)
	}
	if len(problems) > 0 {
		return cfg, fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	return cfg, nil
}
