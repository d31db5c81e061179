package httpapi

import (
	"errors"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/cheese-board/internal/adapter/chesspresenter"
	"github.com/park285/cheese-board/internal/archive"
	"github.com/park285/cheese-board/internal/obslog"
)

const (
	defaultRecentGames = 10
	maxRecentGames     = 100
)

func (s *Server) handleRecentGames(ctx *fasthttp.RequestCtx) {
	if s.opts.History == nil {
		writeError(ctx, fasthttp.StatusNotFound, "no_archive", "game archive is not configured")
		return
	}
	limit := defaultRecentGames
	if ctx.QueryArgs().Has("limit") {
		n, err := ctx.QueryArgs().GetUint("limit")
		if err != nil || n == 0 {
			writeError(ctx, fasthttp.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return
		}
		limit = min(n, maxRecentGames)
	}
	games, err := s.opts.History.RecentGames(ctx, limit)
	if err != nil {
		obslog.L().Error("recent_games_error", zap.Int("limit", limit), zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "archive_failed", err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, chesspresenter.ToDTOGames(games))
}

func (s *Server) handleGame(ctx *fasthttp.RequestCtx, id string) {
	if s.opts.History == nil {
		writeError(ctx, fasthttp.StatusNotFound, "no_archive", "game archive is not configured")
		return
	}
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		writeError(ctx, fasthttp.StatusNotFound, "not_found", "no such route")
		return
	}
	g, err := s.opts.History.GetGame(ctx, id)
	switch {
	case errors.Is(err, archive.ErrGameNotFound):
		writeError(ctx, fasthttp.StatusNotFound, "game_not_found", "no archived game "+id)
	case err != nil:
		obslog.L().Error("get_game_error", zap.String("game_id", id), zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "archive_failed", err.Error())
	default:
		writeJSON(ctx, fasthttp.StatusOK, chesspresenter.ToDTOGame(g, true))
	}
}
