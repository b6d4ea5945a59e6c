package config

import (
	"math"    // For rejecting NaN and infinite prices
	"os"      // For environment variables
	"strconv" // For string to number conversion
	"time"    // For retry durations

	"github.com/joho/godotenv" // For loading .env files
)

// Store backends
const (
	BackendSupabase = "supabase" // Hosted PostgREST tables
	BackendMySQL    = "mysql"    // Local MySQL through GORM
)

// Config holds the application configuration
type Config struct {
	AppPort   string // Application port
	JWTSecret string // JWT secret key
	IsProd    bool   // Is production environment

	StoreBackend   string // supabase or mysql
	SupabaseURL    string // Project URL
	SupabaseKey    string // Anon or service key
	SupabaseSchema string // Schema holding the tables

	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name

	RedisAddr string // Redis server address, empty disables the name cache
	RedisPass string // Redis password
	RedisDB   int    // Redis database number

	GeminiAPIKey string // Empty selects the fixed name list
	GeminiModel  string // Gemini model name

	WaterUnitPrice    float64 // Price per water unit
	ElectricUnitPrice float64 // Price per electricity unit

	SyncQueueSize   int           // Buffered remote writes
	SyncMaxAttempts int           // Tries per remote write
	SyncRetryWait   time.Duration // First retry wait, doubled after each failure
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:   getEnv("APP_PORT", "8080"),     // Application port
		JWTSecret: os.Getenv("JWT_SECRET"),        // JWT secret key
		IsProd:    os.Getenv("IS_PROD") == "true", // Is production environment

		StoreBackend:   getEnv("STORE_BACKEND", BackendSupabase), // Table backend
		SupabaseURL:    os.Getenv("SUPABASE_URL"),                // Supabase project URL
		SupabaseKey:    os.Getenv("SUPABASE_KEY"),                // Supabase key
		SupabaseSchema: getEnv("SUPABASE_SCHEMA", "House-Management"),

		DBUser:     os.Getenv("DB_USER"),     // Database user
		DBPassword: os.Getenv("DB_PASSWORD"), // Database password
		DBHost:     os.Getenv("DB_HOST"),     // Database host
		DBPort:     os.Getenv("DB_PORT"),     // Database port
		DBName:     os.Getenv("DB_NAME"),     // Database name

		RedisAddr: os.Getenv("REDIS_ADDR"),   // Redis server address
		RedisPass: os.Getenv("REDIS_PASS"),   // Redis password
		RedisDB:   getInt("REDIS_DB", 0, 0), // Redis database number

		GeminiAPIKey: getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")), // API_KEY kept for old .env files
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		WaterUnitPrice:    getFloat("WATER_UNIT_PRICE", 18),
		ElectricUnitPrice: getFloat("ELECTRIC_UNIT_PRICE", 8),

		SyncQueueSize:   getInt("SYNC_QUEUE_SIZE", 256, 1),
		SyncMaxAttempts: getInt("SYNC_MAX_ATTEMPTS", 3, 1),
		SyncRetryWait:   getDuration("SYNC_RETRY_WAIT", 500*time.Millisecond),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt falls back to def when the value is missing, malformed or below lowest
func getInt(key string, def, lowest int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < lowest {
		return def
	}
	return v
}

// getFloat falls back to def when the value is missing, malformed, negative or not finite
func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
