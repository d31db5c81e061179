package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"CHESS_BOARD_STORE", "CHESS_LISTEN_ADDR", "CHESS_RENDER_SQUARE", "LOG_TO_FILE"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.BoardStore != StoreFile || cfg.SavedBoard != "savedBoard.txt" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.PGNDir != "Saved PGN games" || cfg.RenderSquare != 64 || cfg.Log.ToFile {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHESS_BOARD_STORE", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("CHESS_BOARD_TTL", "90")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_TO_CONSOLE", "false")
	t.Setenv("CHESS_RENDER_SQUARE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BoardStore != StoreRedis || cfg.BoardTTL != 90*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Log.Format != "json" || cfg.Log.Console {
		t.Fatalf("log = %+v", cfg.Log)
	}
	if cfg.RenderSquare != 64 {
		t.Fatalf("bad number should keep default, got %d", cfg.RenderSquare)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("CHESS_BOARD_STORE", "redis")
	t.Setenv("REDIS_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without REDIS_URL")
	}

	t.Setenv("CHESS_BOARD_STORE", "s3")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown store")
	}

	t.Setenv("CHESS_BOARD_STORE", "")
	t.Setenv("CHESS_RENDER_SQUARE", "4")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for tiny squares")
	}

	t.Setenv("CHESS_RENDER_SQUARE", "")
	t.Setenv("RELAY_BASE_URL", "http://relay.local")
	t.Setenv("RELAY_ROOM", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for relay without a room")
	}
	t.Setenv("RELAY_ROOM", "lobby")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RelayURL != "http://relay.local" || cfg.RelayRoom != "lobby" {
		t.Fatalf("relay cfg = %+v", cfg)
	}
}
