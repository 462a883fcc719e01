package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config is constructed once per process via Load and treated as immutable.
// Every component receives it (or the fields it needs) at construction time;
// nothing reads the environment after startup.
type Config struct {
	Env        string
	ListenAddr string

	DBType     string // "file" or "postgres"
	DBDSN      string
	FileHabits string
	FileGoals  string
	FileUsers  string

	OracleAPIKey  string
	OracleModel   string
	OracleTimeout time.Duration
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:           getEnv("APP_ENV", "development"),
			ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
			DBType:        getEnv("STORAGE_BACKEND", "file"),
			DBDSN:         getEnv("POSTGRES_DSN", ""),
			FileHabits:    getEnv("HABITS_FILE", "data/habits.json"),
			FileGoals:     getEnv("GOALS_FILE", "data/goals.json"),
			FileUsers:     getEnv("USERS_FILE", "data/users.json"),
			OracleAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OracleModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OracleTimeout: time.Duration(getEnvInt("ORACLE_TIMEOUT_SECONDS", 30)) * time.Second,
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileHabits == "" || c.FileGoals == "" || c.FileUsers == "") {
		return errors.New("File storage requires HABITS_FILE, GOALS_FILE and USERS_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.OracleTimeout <= 0 {
		return errors.New("ORACLE_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func loadDotEnv() error {
	data, err := os.ReadFile(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, l := range splitLines(string(data)) {
		if len(l) == 0 || l[0] == '#' {
			continue
		}
		kv := splitKV(l)
		if len(kv) == 2 {
			os.Setenv(kv[0], kv[1])
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
