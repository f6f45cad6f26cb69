package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	DataDir   string
	OutputCSV string
	RulesPath string

	PretixAPIBaseURL   string
	PretixAPIToken     string
	PretixOrganizer    string
	PretixEvent        string
	PretixRateLimitRPS int
	PretixTimeoutMs    int

	Locale     string
	CSVLimit   int
	OrderCodes []string
	Pseudodata bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		DataDir:   getEnv("DATA_DIR", filepath.Join(cwd, "data")),
		OutputCSV: getEnv("OUTPUT_CSV", filepath.Join(cwd, "csv", "badges.csv")),
		RulesPath: getEnv("RULES_PATH", ""),

		PretixAPIBaseURL:   getEnv("PRETIX_API_BASE_URL", "https://pretix.eu/api/v1"),
		PretixAPIToken:     getEnv("PRETIX_API_TOKEN", ""),
		PretixOrganizer:    getEnv("PRETIX_ORGANIZER", "fossgis"),
		PretixEvent:        getEnv("PRETIX_EVENT", "2025"),
		PretixRateLimitRPS: getEnvInt("PRETIX_RATE_LIMIT_RPS", 5),
		PretixTimeoutMs:    getEnvInt("PRETIX_TIMEOUT_MS", 30000),

		Locale:     getEnv("LOCALE", "de"),
		CSVLimit:   getEnvInt("CSV_LIMIT", -1),
		OrderCodes: getEnvList("ORDER_CODES"),
		Pseudodata: getEnvBool("PSEUDODATA", false),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

// EventDataDir is where the fetched source documents of the configured event
// live.
func (c Config) EventDataDir() string {
	return filepath.Join(c.DataDir, c.PretixEvent)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}

func getEnvList(key string) []string {
	value := getEnv(key, "")
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
