package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/park285/cheese-board/internal/obslog"
)

const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

type AppConfig struct {
	ListenAddr string

	BoardStore string
	BoardDir   string
	StartBoard string
	SavedBoard string

	RedisURL string
	BoardTTL time.Duration

	DatabaseURL string

	PGNDir   string
	PGNEvent string
	PGNSite  string

	MessagesDir  string
	RenderSquare int

	// Optional chat relay for finished-game announcements.
	RelayURL   string
	RelayRoom  string
	RelayToken string

	Log obslog.Options
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ListenAddr:   ":8080",
		BoardStore:   StoreFile,
		BoardDir:     "boardData",
		StartBoard:   "startBoard.txt",
		SavedBoard:   "savedBoard.txt",
		PGNDir:       "Saved PGN games",
		PGNEvent:     "Casual game",
		PGNSite:      "cheese-board",
		RenderSquare: 64,
		Log: obslog.Options{
			Level:   "info",
			Console: true,
			ToFile:  false,
			Format:  "legacy",
		},
	}

	setString(&cfg.ListenAddr, "CHESS_LISTEN_ADDR")
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("CHESS_BOARD_STORE"))); v != "" {
		cfg.BoardStore = v
	}
	setString(&cfg.BoardDir, "CHESS_BOARD_DIR")
	setString(&cfg.StartBoard, "CHESS_START_BOARD")
	setString(&cfg.SavedBoard, "CHESS_SAVED_BOARD")

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	if v := strings.TrimSpace(os.Getenv("CHESS_BOARD_TTL")); v != "" { // seconds
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.BoardTTL = time.Duration(n) * time.Second
		}
	}
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	setString(&cfg.PGNDir, "CHESS_PGN_DIR")
	setString(&cfg.PGNEvent, "CHESS_PGN_EVENT")
	setString(&cfg.PGNSite, "CHESS_PGN_SITE")

	cfg.MessagesDir = strings.TrimSpace(os.Getenv("CHESS_MESSAGES_DIR"))
	if v := strings.TrimSpace(os.Getenv("CHESS_RENDER_SQUARE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RenderSquare = n
		}
	}

	cfg.RelayURL = strings.TrimSpace(os.Getenv("RELAY_BASE_URL"))
	cfg.RelayRoom = strings.TrimSpace(os.Getenv("RELAY_ROOM"))
	cfg.RelayToken = strings.TrimSpace(os.Getenv("RELAY_TOKEN"))

	// logging
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setBool(&cfg.Log.Console, "LOG_TO_CONSOLE")
	setBool(&cfg.Log.ToFile, "LOG_TO_FILE")
	setBool(&cfg.Log.Caller, "LOG_CALLER")
	setString(&cfg.Log.File, "LOG_FILE")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	switch cfg.BoardStore {
	case StoreFile:
	case StoreRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL is required when CHESS_BOARD_STORE=redis")
		}
	default:
		return nil, fmt.Errorf("unknown CHESS_BOARD_STORE %q", cfg.BoardStore)
	}
	if cfg.RelayURL != "" && cfg.RelayRoom == "" {
		return nil, errors.New("RELAY_ROOM is required when RELAY_BASE_URL is set")
	}
	if cfg.RenderSquare < 16 || cfg.RenderSquare > 256 {
		return nil, fmt.Errorf("CHESS_RENDER_SQUARE out of range: %d", cfg.RenderSquare)
	}

	return cfg, nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
