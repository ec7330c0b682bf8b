package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port               string
	Env                string
	LogLevel           string
	DatabaseURL        string
	OpenAIKey          string
	OpenAIModel        string
	UseAIContext       bool
	UseAISummary       bool
	UseAIActions       bool
	DuplicateThreshold float64
	SpamKeywordsFile   string
	SpamKeywords       []string
	EmergencyAPIKey    string
	FailureThreshold   int
	FailureWindow      time.Duration
	DefaultUserID      string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             GetEnv("PORT", "8080"),
		Env:              GetEnv("ENV", "development"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		DatabaseURL:      GetEnv("DATABASE_URL", ""),
		OpenAIKey:        GetEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      GetEnv("OPENAI_MODEL", "gpt-4o-mini"),
		UseAIContext:     getEnvBool("USE_AI_CONTEXT", false),
		UseAISummary:     getEnvBool("USE_AI_SUMMARY", false),
		UseAIActions:     getEnvBool("USE_AI_ACTIONS", false),
		SpamKeywordsFile: GetEnv("SPAM_KEYWORDS_FILE", "spam_keywords.yaml"),
		EmergencyAPIKey:  GetEnv("EMERGENCY_WEBHOOK_API_KEY", ""),
		DefaultUserID:    GetEnv("DEFAULT_USER_ID", "default"),
	}

	threshold, err := strconv.ParseFloat(GetEnv("DUPLICATE_THRESHOLD", "0.9"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DUPLICATE_THRESHOLD: %w", err)
	}
	cfg.DuplicateThreshold = threshold

	cfg.FailureThreshold = getEnvInt("FAILURE_ALERT_THRESHOLD", 5)
	windowSeconds := getEnvInt("FAILURE_ALERT_WINDOW_SECONDS", 600)
	cfg.FailureWindow = time.Duration(windowSeconds) * time.Second

	// A missing or unreadable keyword file leaves the list empty, which
	// means the spam check fails open rather than rejecting everything.
	cfg.SpamKeywords = loadSpamKeywords(cfg.SpamKeywordsFile)

	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	switch value {
	case "true", "1", "yes", "TRUE", "True":
		return true
	}
	return false
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

type spamKeywordsFile struct {
	Keywords []string `yaml:"keywords"`
}

func loadSpamKeywords(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var file spamKeywordsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil
	}
	return file.Keywords
}

func (c *Config) Validate() error {
	if c.UseAIContext || c.UseAISummary || c.UseAIActions {
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when an AI flag is enabled")
		}
	}
	if c.DuplicateThreshold < 0 || c.DuplicateThreshold > 1 {
		return fmt.Errorf("DUPLICATE_THRESHOLD must be between 0 and 1")
	}
	return nil
}

// IsTest reports whether the service runs under the test environment, in
// which the webhook gate skips the IP allowlist check.
func (c *Config) IsTest() bool {
	return c.Env == "test"
}
