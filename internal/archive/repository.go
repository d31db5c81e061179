package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/park285/cheese-board/internal/domain"
)

// ErrGameNotFound is returned when no archived game has the requested ID.
var ErrGameNotFound = errors.New("archived game not found")

// Repository stores finished games.
type Repository interface {
	SaveGame(ctx context.Context, g *domain.GameRecord) error
	GetGame(ctx context.Context, id string) (*domain.GameRecord, error)
	RecentGames(ctx context.Context, limit int) ([]*domain.GameRecord, error)
	Close() error
}

const schema = `CREATE TABLE IF NOT EXISTS board_games (
    game_id     TEXT PRIMARY KEY,
    white_name  TEXT NOT NULL,
    black_name  TEXT NOT NULL,
    winner      TEXT NOT NULL,
    winner_name TEXT NOT NULL,
    result      TEXT NOT NULL,
    moves       JSONB NOT NULL,
    pgn         TEXT NOT NULL,
    final_fen   TEXT NOT NULL DEFAULT '',
    started_at  TIMESTAMPTZ NOT NULL,
    ended_at    TIMESTAMPTZ NOT NULL,
    duration_ms BIGINT NOT NULL
)`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresRepository{db: db}, nil
}

const addFinalFEN = `ALTER TABLE board_games ADD COLUMN IF NOT EXISTS final_fen TEXT NOT NULL DEFAULT ''`

// EnsureSchema creates the games table when it is missing and adds columns
// introduced after the first release.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, addFinalFEN)
	return err
}

func (r *PostgresRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveGame upserts a finished game.
func (r *PostgresRepository) SaveGame(ctx context.Context, g *domain.GameRecord) error {
	if r == nil || r.db == nil || g == nil {
		return nil
	}
	movesRaw, err := json.Marshal(g.Moves)
	if err != nil {
		return err
	}
	duration := g.Duration.Milliseconds()
	if duration < 0 {
		duration = 0
	}

	q := `INSERT INTO board_games (
        game_id, white_name, black_name, winner, winner_name,
        result, moves, pgn, final_fen, started_at, ended_at, duration_ms
      ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
      ) ON CONFLICT (game_id) DO UPDATE SET
        white_name=EXCLUDED.white_name,
        black_name=EXCLUDED.black_name,
        winner=EXCLUDED.winner,
        winner_name=EXCLUDED.winner_name,
        result=EXCLUDED.result,
        moves=EXCLUDED.moves,
        pgn=EXCLUDED.pgn,
        final_fen=EXCLUDED.final_fen,
        started_at=EXCLUDED.started_at,
        ended_at=EXCLUDED.ended_at,
        duration_ms=EXCLUDED.duration_ms`

	_, err = r.db.ExecContext(ctx, q,
		g.ID, g.WhiteName, g.BlackName, g.Winner, g.WinnerName,
		g.Result, string(movesRaw), g.PGN, g.FinalFEN, g.StartedAt, g.EndedAt, duration,
	)
	return err
}

const selectColumns = `game_id, white_name, black_name, winner, winner_name,
    result, moves, pgn, final_fen, started_at, ended_at, duration_ms`

func (r *PostgresRepository) GetGame(ctx context.Context, id string) (*domain.GameRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM board_games WHERE game_id = $1`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	return g, err
}

func (r *PostgresRepository) RecentGames(ctx context.Context, limit int) ([]*domain.GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM board_games ORDER BY ended_at DESC, game_id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(s rowScanner) (*domain.GameRecord, error) {
	var (
		g          domain.GameRecord
		movesRaw   []byte
		durationMS int64
	)
	if err := s.Scan(&g.ID, &g.WhiteName, &g.BlackName, &g.Winner, &g.WinnerName,
		&g.Result, &movesRaw, &g.PGN, &g.FinalFEN, &g.StartedAt, &g.EndedAt, &durationMS); err != nil {
		return nil, err
	}
	if len(movesRaw) > 0 {
		if err := json.Unmarshal(movesRaw, &g.Moves); err != nil {
			return nil, fmt.Errorf("decode moves of %s: %w", g.ID, err)
		}
	}
	g.Duration = time.Duration(durationMS) * time.Millisecond
	return &g, nil
}
