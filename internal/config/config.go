package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port              string
	DBPath            string
	CSRFKey           []byte
	SessionKey        []byte
	AdminPassword     string
	AdminPasswordHash string // bcrypt; takes precedence over AdminPassword when set
	CookieDomain      string
	CookieSecure      bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8686"),
		DBPath:            getEnv("DB_PATH", "./laundry.db"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "admin123"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		CookieDomain:      getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:      getEnv("COOKIE_SECURE", "false") == "true",
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	if os.Getenv("ADMIN_PASSWORD") == "" && cfg.AdminPasswordHash == "" {
		slog.Warn("ADMIN_PASSWORD not set. Using the default development password. PLEASE SET ADMIN_PASSWORD OR ADMIN_PASSWORD_HASH IN PRODUCTION!")
	}

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8686"
	}

	return cfg, nil
}

// loadKey reads a base64 key from the environment, falling back to a
// random per-process key for development when unset or malformed.
func loadKey(envVar string) []byte {
	keyStr := os.Getenv(envVar)
	if keyStr == "" {
		slog.Warn(envVar + " environment variable not set. Generating a random key for development. This key will change on each restart. PLEASE SET " + envVar + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(keyStr)
	if err != nil || len(decoded) < 32 {
		slog.Warn(envVar + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + envVar + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil { // Use crypto/rand
		slog.Error("Failed to read random bytes", "error", err)
		// Fallback to a less secure random string if crypto/rand fails
		// This fallback is only for panic prevention, not for production use
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
