package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DatabaseURL string // empty selects the in-memory store

	JWTSecret string

	AllowedOrigins string

	LogLevel  string
	LogFormat string // "console" or "json"

	// CascadeDelete removes a realm's modules and lessons (and a module's
	// lessons) when the parent is deleted instead of orphaning them.
	CascadeDelete bool

	// RequireAdmin gates content-authoring routes behind the isAdmin claim.
	RequireAdmin bool

	// SeedData loads the starter curriculum on boot.
	SeedData bool
}

// Load reads .env if present, then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getenv("PORT", "5300"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      getenv("JWT_SECRET", "dev-secret-change-me"),
		AllowedOrigins: getenv("ALLOWED_ORIGINS", "http://localhost:3000"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "console"),
		CascadeDelete:  getbool("CASCADE_DELETE", false),
		RequireAdmin:   getbool("REQUIRE_ADMIN", false),
		SeedData:       getbool("SEED_DATA", false),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
