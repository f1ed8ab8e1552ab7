package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.APIPort)
	}
	if cfg.MongoDatabase != "admissions" {
		t.Fatalf("expected default database, got %s", cfg.MongoDatabase)
	}
	if cfg.ChatRetention != 200 {
		t.Fatalf("expected default chat retention 200, got %d", cfg.ChatRetention)
	}
	if cfg.AdminUsername != "admin" {
		t.Fatalf("expected default admin username, got %s", cfg.AdminUsername)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "testdb")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6380")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CHAT_RETENTION", "25")
	t.Setenv("ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()
	if cfg.APIPort != "9999" {
		t.Fatalf("expected API_PORT override, got %s", cfg.APIPort)
	}
	if cfg.MongoURI != "mongodb://db:27017" {
		t.Fatalf("expected MONGO_URI override, got %s", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "testdb" {
		t.Fatalf("expected MONGO_DATABASE override, got %s", cfg.MongoDatabase)
	}
	if cfg.RedisAddr != "127.0.0.1:6380" {
		t.Fatalf("expected REDIS_ADDR override, got %s", cfg.RedisAddr)
	}
	if cfg.ChatRetention != 25 {
		t.Fatalf("expected CHAT_RETENTION override, got %d", cfg.ChatRetention)
	}
	if len(cfg.AllowOrigins) != 2 || cfg.AllowOrigins[1] != "https://b.example.com" {
		t.Fatalf("expected trimmed origin list, got %v", cfg.AllowOrigins)
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("CHAT_RETENTION", "not-a-number")
	cfg := Load()
	if cfg.ChatRetention != 200 {
		t.Fatalf("expected fallback retention, got %d", cfg.ChatRetention)
	}
}
