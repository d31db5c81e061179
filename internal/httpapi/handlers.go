package httpapi

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/cheese-board/internal/adapter/chesspresenter"
	"github.com/park285/cheese-board/internal/boardfile"
	"github.com/park285/cheese-board/internal/engine"
	"github.com/park285/cheese-board/internal/obslog"
	"github.com/park285/cheese-board/internal/pgn"
	"github.com/park285/cheese-board/internal/session"
	"github.com/park285/cheese-board/pkg/chessdto"
)

func (s *Server) noGame(ctx *fasthttp.RequestCtx) {
	writeError(ctx, fasthttp.StatusConflict, "no_game", s.formatter.NoGame())
}

func (s *Server) boardState(msg string) (*chessdto.BoardState, error) {
	snap, err := s.sess.Snapshot()
	if err != nil {
		return nil, err
	}
	dto := chesspresenter.ToDTOBoard(snap)
	dto.Message = msg
	return dto, nil
}

func (s *Server) handleStart(ctx *fasthttp.RequestCtx) {
	var req chessdto.StartRequest
	if !decodeBody(ctx, &req) {
		return
	}
	snap, err := s.sess.StartGame(ctx, req.White, req.Black)
	if err != nil {
		obslog.L().Error("game_start_error", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "start_failed", err.Error())
		return
	}
	s.lastDiffs = nil
	dto := chesspresenter.ToDTOBoard(snap)
	dto.Message = s.formatter.Started(snap)
	writeJSON(ctx, fasthttp.StatusOK, dto)
}

func (s *Server) handleClick(ctx *fasthttp.RequestCtx) {
	var req chessdto.ClickRequest
	if !decodeBody(ctx, &req) {
		return
	}
	var p engine.Pos
	switch {
	case req.Square != "":
		var ok bool
		if p, ok = engine.ParsePos(req.Square); !ok {
			writeError(ctx, fasthttp.StatusBadRequest, "bad_square", "unknown square "+strconv.Quote(req.Square))
			return
		}
	case req.I != nil && req.J != nil:
		p = engine.Pos{I: *req.I, J: *req.J}
	default:
		writeError(ctx, fasthttp.StatusBadRequest, "bad_square", "either square or i and j are required")
		return
	}
	if !s.sess.Started() {
		s.noGame(ctx)
		return
	}

	res := s.sess.SquareClicked(ctx, p.I, p.J)
	if res.Action == session.ActionMove {
		s.lastDiffs = res.Diffs
	}
	mover := s.sess.Mover()
	kind := engine.Empty
	if sq, ok := s.sess.Square(p.I, p.J); ok {
		kind = sq.Kind
	}
	result := ""
	if res.GameOver && res.Winner != nil {
		result = pgn.ResultFor(res.Winner.Color)
	}
	dto := chesspresenter.ToDTOClick(res, mover, s.sess.MovePending(), chesspresenter.Targets(s.sess))
	dto.Message = s.formatter.Click(res, mover, kind, result)
	writeJSON(ctx, fasthttp.StatusOK, dto)
}

func (s *Server) handleConfirm(ctx *fasthttp.RequestCtx) {
	if !s.sess.Started() {
		s.noGame(ctx)
		return
	}
	advanced := s.sess.AdvanceTurn()
	mover := s.sess.Mover()
	msg := s.formatter.Turn(mover)
	if !advanced && s.sess.Finished() {
		if w, ok := s.sess.Winner(); ok {
			msg = s.formatter.GameOver(w, pgn.ResultFor(w.Color))
		}
	}
	writeJSON(ctx, fasthttp.StatusOK, chessdto.TurnResult{
		Advanced: advanced,
		Mover:    chesspresenter.ToDTOPlayer(mover),
		Message:  msg,
	})
}

func (s *Server) handleSave(ctx *fasthttp.RequestCtx) {
	err := s.sess.SaveBoard(ctx)
	switch {
	case errors.Is(err, session.ErrNoGame):
		s.noGame(ctx)
	case err != nil:
		writeError(ctx, fasthttp.StatusInternalServerError, "save_failed", s.formatter.SaveFailed(err))
	default:
		writeJSON(ctx, fasthttp.StatusOK, chessdto.SaveResult{Saved: true, Message: s.formatter.Saved()})
	}
}

func (s *Server) handleLoad(ctx *fasthttp.RequestCtx) {
	warns, err := s.sess.LoadBoard(ctx)
	switch {
	case errors.Is(err, boardfile.ErrNotFound):
		writeError(ctx, fasthttp.StatusNotFound, "no_saved_board", s.formatter.LoadFailed(err))
		return
	case err != nil:
		writeError(ctx, fasthttp.StatusInternalServerError, "load_failed", s.formatter.LoadFailed(err))
		return
	}
	s.lastDiffs = nil
	msg := s.formatter.Loaded(s.sess.Mover(), len(warns))
	dto, err := s.boardState(msg)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "load_failed", err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, chessdto.LoadResult{
		Board:    dto,
		Warnings: chesspresenter.WarningStrings(warns),
		Message:  msg,
	})
}

func (s *Server) handleBoard(ctx *fasthttp.RequestCtx) {
	if !s.sess.Started() {
		s.noGame(ctx)
		return
	}
	dto, err := s.boardState(s.formatter.Turn(s.sess.Mover()))
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, dto)
}

func (s *Server) handleSquare(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	i, errI := args.GetUint("i")
	j, errJ := args.GetUint("j")
	if errI != nil || errJ != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "bad_square", "i and j must be non-negative integers")
		return
	}
	if !s.sess.Started() {
		s.noGame(ctx)
		return
	}
	sq, ok := s.sess.Square(i, j)
	if !ok {
		writeError(ctx, fasthttp.StatusBadRequest, "bad_square", "square is off the board")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, chesspresenter.ToDTOSquare(sq))
}

func (s *Server) handlePGN(ctx *fasthttp.RequestCtx) {
	var buf bytes.Buffer
	if err := s.sess.ExportPGN(&buf); err != nil {
		if errors.Is(err, session.ErrNoGame) {
			s.noGame(ctx)
			return
		}
		writeError(ctx, fasthttp.StatusInternalServerError, "pgn_failed", err.Error())
		return
	}
	ctx.SetContentType("application/x-chess-pgn")
	ctx.SetBody(buf.Bytes())
}

func (s *Server) handleSavePGN(ctx *fasthttp.RequestCtx) {
	path, err := s.sess.SavePGN(s.opts.PGNDir)
	switch {
	case errors.Is(err, session.ErrNoGame):
		s.noGame(ctx)
	case err != nil:
		writeError(ctx, fasthttp.StatusInternalServerError, "pgn_failed", err.Error())
	default:
		writeJSON(ctx, fasthttp.StatusOK, chessdto.SaveResult{Saved: true, Message: s.formatter.PGNSaved(path)})
	}
}

func (s *Server) handleFEN(ctx *fasthttp.RequestCtx) {
	if !s.sess.Started() {
		s.noGame(ctx)
		return
	}
	writeText(ctx, s.sess.FEN())
}

func (s *Server) handleBoardPNG(ctx *fasthttp.RequestCtx) {
	out, err := s.presenter.BoardPNG(ctx, s.sess, s.lastDiffs)
	switch {
	case errors.Is(err, session.ErrNoGame):
		s.noGame(ctx)
	case err != nil:
		obslog.L().Error("board_render_error", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "render_failed", err.Error())
	default:
		ctx.SetContentType("image/png")
		ctx.SetBody(out)
	}
}
