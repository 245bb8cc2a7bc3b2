package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	MongoURI    string
	MongoDB     string
	StoreDriver string
	JWTSecret   string
	FrontendURL string

	ClassifierDriver  string
	ClassifierURL     string
	ClassifierAPIKey  string
	ClassifierTimeout time.Duration
	GeminiAPIKey      string
	GeminiModel       string

	RedisURL string
	CacheTTL time.Duration

	// Complaints a single user may file per hour.
	ComplaintRateLimit int
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "moderation"),
		StoreDriver: getEnv("STORE_DRIVER", "mongo"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		ClassifierDriver:  getEnv("CLASSIFIER_DRIVER", "keyword"),
		ClassifierURL:     getEnv("CLASSIFIER_URL", ""),
		ClassifierAPIKey:  getEnv("CLASSIFIER_API_KEY", ""),
		ClassifierTimeout: getDuration("CLASSIFIER_TIMEOUT", 5*time.Second),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getDuration("CACHE_TTL", 10*time.Minute),

		ComplaintRateLimit: getInt("COMPLAINT_RATE_LIMIT", 30),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getDuration accepts Go duration strings ("5s", "1m30s").
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
