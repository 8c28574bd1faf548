package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort           string
	DataSource         string // "csv" or "sqlite"
	DataDir            string
	DatabasePath       string
	RAGTopK            int
	WatchData          bool
	RedactDebugContext bool
	LogLevel           string
}

var AppConfig Config

// fileConfig mirrors Config for the optional YAML file. Pointer fields so
// that only keys present in the file override the defaults.
type fileConfig struct {
	HTTPPort           *string `yaml:"http_port"`
	DataSource         *string `yaml:"data_source"`
	DataDir            *string `yaml:"data_dir"`
	DatabasePath       *string `yaml:"database_path"`
	RAGTopK            *int    `yaml:"rag_top_k"`
	WatchData          *bool   `yaml:"watch_data"`
	RedactDebugContext *bool   `yaml:"redact_debug_context"`
	LogLevel           *string `yaml:"log_level"`
}

// LoadConfig resolves configuration in three layers: built-in defaults,
// then the optional YAML file, then environment variables.
func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		HTTPPort:     "8080",
		DataSource:   "csv",
		DataDir:      "data",
		DatabasePath: "support_bot.db",
		RAGTopK:      3,
		LogLevel:     "INFO",
	}

	applyConfigFile(&AppConfig, getEnv("CONFIG_FILE", "config.yaml"))

	AppConfig.HTTPPort = getEnv("HTTP_PORT", AppConfig.HTTPPort)
	AppConfig.DataSource = getEnv("DATA_SOURCE", AppConfig.DataSource)
	AppConfig.DataDir = getEnv("DATA_DIR", AppConfig.DataDir)
	AppConfig.DatabasePath = getEnv("DATABASE_PATH", AppConfig.DatabasePath)
	AppConfig.RAGTopK = getEnvAsInt("RAG_TOP_K", AppConfig.RAGTopK)
	AppConfig.WatchData = getEnvAsBool("WATCH_DATA", AppConfig.WatchData)
	AppConfig.RedactDebugContext = getEnvAsBool("REDACT_DEBUG_CONTEXT", AppConfig.RedactDebugContext)
	AppConfig.LogLevel = getEnv("LOG_LEVEL", AppConfig.LogLevel)

	if AppConfig.DataSource != "csv" && AppConfig.DataSource != "sqlite" {
		log.Fatalf("Unsupported DATA_SOURCE %q, expected csv or sqlite", AppConfig.DataSource)
	}
}

func applyConfigFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Failed to read config file %s: %v", path, err)
		}
		return
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Fatalf("Failed to parse config file %s: %v", path, err)
	}

	if fc.HTTPPort != nil {
		cfg.HTTPPort = *fc.HTTPPort
	}
	if fc.DataSource != nil {
		cfg.DataSource = *fc.DataSource
	}
	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.RAGTopK != nil {
		cfg.RAGTopK = *fc.RAGTopK
	}
	if fc.WatchData != nil {
		cfg.WatchData = *fc.WatchData
	}
	if fc.RedactDebugContext != nil {
		cfg.RedactDebugContext = *fc.RedactDebugContext
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool accepts the strconv.ParseBool spellings plus yes/no, the
// same vocabulary the dataset loaders use for boolean cells.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	switch strings.ToLower(valueStr) {
	case "yes", "y":
		return true
	case "no", "n":
		return false
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
