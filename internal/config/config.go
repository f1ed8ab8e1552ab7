package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIPort       string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	AllowOrigins  []string
	ChatRetention int

	// Bootstrap admin used when neither cache nor remote has any users yet.
	AdminUsername string
	AdminPassword string
	AdminName     string
	AdminMobile   string
}

func Load() Config {
	return Config{
		APIPort:       getenv("API_PORT", "8080"),
		MongoURI:      getenv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getenv("MONGO_DATABASE", "admissions"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AllowOrigins:  getenvList("ALLOW_ORIGINS", "http://localhost:3000"),
		ChatRetention: getenvInt("CHAT_RETENTION", 200),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getenv("ADMIN_NAME", "Administrator"),
		AdminMobile:   os.Getenv("ADMIN_MOBILE"),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvList(key, fallback string) []string {
	raw := getenv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
