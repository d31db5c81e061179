package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/cheese-board/internal/adapter/chesspresenter"
	"github.com/park285/cheese-board/internal/domain"
	"github.com/park285/cheese-board/internal/engine"
	"github.com/park285/cheese-board/internal/obslog"
	"github.com/park285/cheese-board/internal/session"
	"github.com/park285/cheese-board/pkg/chessdto"
)

const maxBodyBytes = 1 << 16

// GameHistory reads finished games back from the archive.
type GameHistory interface {
	GetGame(ctx context.Context, id string) (*domain.GameRecord, error)
	RecentGames(ctx context.Context, limit int) ([]*domain.GameRecord, error)
}

type Options struct {
	// PGNDir receives files written by POST /game/pgn.
	PGNDir string
	// History serves /games/*; nil disables those routes.
	History      GameHistory
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server exposes one Session over HTTP. Every handler runs under mu since
// the session has a single writer.
type Server struct {
	mu        sync.Mutex
	sess      *session.Session
	lastDiffs []engine.SquareState

	formatter *chesspresenter.Formatter
	presenter *chesspresenter.Presenter
	opts      Options

	srv *fasthttp.Server
}

func New(sess *session.Session, formatter *chesspresenter.Formatter, presenter *chesspresenter.Presenter, opts Options) *Server {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	s := &Server{sess: sess, formatter: formatter, presenter: presenter, opts: opts}
	s.srv = &fasthttp.Server{
		Name:               "cheese-board",
		Handler:            s.Handler(),
		ReadTimeout:        opts.ReadTimeout,
		WriteTimeout:       opts.WriteTimeout,
		MaxRequestBodySize: maxBodyBytes,
	}
	return s
}

func (s *Server) ListenAndServe(addr string) error {
	obslog.L().Info("http_listen", zap.String("addr", addr))
	return s.srv.ListenAndServe(addr)
}

func (s *Server) Serve(ln net.Listener) error { return s.srv.Serve(ln) }

func (s *Server) Shutdown(ctx context.Context) error { return s.srv.ShutdownWithContext(ctx) }

// Handler routes requests by method and path.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		s.route(ctx)
		obslog.L().Debug("http_request",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	if path == "/healthz" {
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
		return
	}

	get := ctx.IsGet()
	post := ctx.IsPost()

	// the archive is safe for concurrent reads and stays outside mu
	switch {
	case get && path == "/games/recent":
		s.handleRecentGames(ctx)
		return
	case get && strings.HasPrefix(path, "/games/"):
		s.handleGame(ctx, strings.TrimPrefix(path, "/games/"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case post && path == "/game/start":
		s.handleStart(ctx)
	case post && path == "/game/click":
		s.handleClick(ctx)
	case post && path == "/game/confirm":
		s.handleConfirm(ctx)
	case post && path == "/game/save":
		s.handleSave(ctx)
	case post && path == "/game/load":
		s.handleLoad(ctx)
	case post && path == "/game/pgn":
		s.handleSavePGN(ctx)
	case get && path == "/game/board":
		s.handleBoard(ctx)
	case get && path == "/game/square":
		s.handleSquare(ctx)
	case get && path == "/game/pgn":
		s.handlePGN(ctx)
	case get && path == "/game/fen":
		s.handleFEN(ctx)
	case get && path == "/game/board.png":
		s.handleBoardPNG(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not_found", "no such route")
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		obslog.L().Error("http_encode_error", zap.Error(err))
		ctx.Error("encode error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, msg string) {
	writeJSON(ctx, status, chessdto.DomainError{
		Code:      code,
		Message:   msg,
		Retryable: status >= fasthttp.StatusInternalServerError,
	})
}

func writeText(ctx *fasthttp.RequestCtx, body string) {
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetBodyString(body)
}

// decodeBody accepts an empty body as the zero value.
func decodeBody(ctx *fasthttp.RequestCtx, v any) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "bad_request", "invalid JSON body")
		return false
	}
	return true
}
