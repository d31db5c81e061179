package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/park285/cheese-board/internal/adapter/chesspresenter"
	"github.com/park285/cheese-board/internal/archive"
	"github.com/park285/cheese-board/internal/boardfile"
	appcfg "github.com/park285/cheese-board/internal/config"
	"github.com/park285/cheese-board/internal/httpapi"
	"github.com/park285/cheese-board/internal/msgcat"
	"github.com/park285/cheese-board/internal/obslog"
	"github.com/park285/cheese-board/internal/relay"
	"github.com/park285/cheese-board/internal/render"
	"github.com/park285/cheese-board/internal/session"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.Init(cfg.Log); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()
	logger := obslog.L()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Fatal("board_store_init_error", zap.Error(err))
	}
	defer closeStore()

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if wrote, err := boardfile.SeedStart(seedCtx, store, cfg.StartBoard); err != nil {
		logger.Warn("start_board_seed_error", zap.String("name", cfg.StartBoard), zap.Error(err))
	} else if wrote {
		logger.Info("start_board_seeded", zap.String("name", cfg.StartBoard))
	}
	seedCancel()

	repo, err := openArchive(cfg)
	if err != nil {
		logger.Fatal("archive_init_error", zap.Error(err))
	}
	defer repo.Close()

	renderer := render.New(cfg.RenderSquare)

	var archiver session.Archiver = repo
	if cfg.RelayURL != "" {
		headers := func() map[string]string {
			if cfg.RelayToken == "" {
				return nil
			}
			return map[string]string{"X-Relay-Token": cfg.RelayToken}
		}
		client := relay.NewClient(cfg.RelayURL, relay.WithHeaderProvider(headers), relay.WithTimeout(5*time.Second))
		archiver = relay.NewAnnouncer(repo, client, cfg.RelayRoom, relay.WithBoardImage(renderer.RenderFEN))
		logger.Info("relay_enabled", zap.String("url", cfg.RelayURL), zap.String("room", cfg.RelayRoom))
	}

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		logger.Fatal("message_catalog_error", zap.Error(err))
	}

	sess := session.New(session.Options{
		Store:     store,
		StartName: cfg.StartBoard,
		SavedName: cfg.SavedBoard,
		Archive:   archiver,
		Event:     cfg.PGNEvent,
		Site:      cfg.PGNSite,
	})
	srv := httpapi.New(sess,
		chesspresenter.NewFormatter(cat),
		chesspresenter.NewPresenter(renderer),
		httpapi.Options{PGNDir: cfg.PGNDir, History: repo},
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(cfg.ListenAddr) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutdown_signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("http_serve_error", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("http_shutdown_error", zap.Error(err))
	}
}

func openStore(cfg *appcfg.AppConfig) (boardfile.Store, func(), error) {
	if cfg.BoardStore == appcfg.StoreRedis {
		rs, err := boardfile.NewRedisStore(cfg.RedisURL, cfg.BoardTTL)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}
	return boardfile.NewFileStore(cfg.BoardDir), func() {}, nil
}

func openArchive(cfg *appcfg.AppConfig) (archive.Repository, error) {
	if cfg.DatabaseURL == "" {
		obslog.L().Info("archive_memory", zap.String("reason", "DATABASE_URL not set"))
		return archive.NewMemoryRepository(), nil
	}
	repo, err := archive.NewPostgresRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("ensure archive schema: %w", err)
	}
	return repo, nil
}
