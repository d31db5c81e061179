package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/park285/cheese-board/internal/adapter/chesspresenter"
	"github.com/park285/cheese-board/internal/archive"
	"github.com/park285/cheese-board/internal/boardfile"
	"github.com/park285/cheese-board/internal/domain"
	"github.com/park285/cheese-board/internal/msgcat"
	"github.com/park285/cheese-board/internal/render"
	"github.com/park285/cheese-board/internal/session"
	"github.com/park285/cheese-board/pkg/chessdto"
)

type testClient struct {
	t      *testing.T
	client *fasthttp.Client
	repo   *archive.MemoryRepository
}

func newTestServer(t *testing.T) *testClient {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	repo := archive.NewMemoryRepository()
	sess := session.New(session.Options{
		Store:   boardfile.NewFileStore(t.TempDir()),
		Archive: repo,
		Now:     func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	srv := New(sess, chesspresenter.NewFormatter(cat), chesspresenter.NewPresenter(render.New(24)), Options{PGNDir: t.TempDir(), History: repo})

	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
		_ = ln.Close()
	})
	return &testClient{
		t:      t,
		client: &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }},
		repo:   repo,
	}
}

func (c *testClient) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()
	req.Header.SetMethod(method)
	req.SetRequestURI("http://board.test" + path)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}
	if err := c.client.DoTimeout(req, resp, 5*time.Second); err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp.StatusCode(), append([]byte(nil), resp.Body()...)
}

func (c *testClient) decode(method, path string, body any, wantStatus int, out any) {
	c.t.Helper()
	status, raw := c.do(method, path, body)
	if status != wantStatus {
		c.t.Fatalf("%s %s: expected status %d, got %d (%s)", method, path, wantStatus, status, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.t.Fatalf("%s %s: decode: %v (%s)", method, path, err, raw)
		}
	}
}

func intPtr(v int) *int { return &v }

func TestRoutesBeforeStart(t *testing.T) {
	c := newTestServer(t)

	for _, tc := range []struct {
		method, path string
	}{
		{fasthttp.MethodGet, "/game/board"},
		{fasthttp.MethodGet, "/game/fen"},
		{fasthttp.MethodGet, "/game/pgn"},
		{fasthttp.MethodGet, "/game/board.png"},
		{fasthttp.MethodPost, "/game/confirm"},
		{fasthttp.MethodPost, "/game/save"},
	} {
		var e chessdto.DomainError
		c.decode(tc.method, tc.path, nil, fasthttp.StatusConflict, &e)
		if e.Code != "no_game" {
			t.Fatalf("%s %s: unexpected error %+v", tc.method, tc.path, e)
		}
	}

	if status, _ := c.do(fasthttp.MethodGet, "/nope", nil); status != fasthttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if status, _ := c.do(fasthttp.MethodGet, "/game/start", nil); status != fasthttp.StatusNotFound {
		t.Fatalf("GET on a POST route should be 404, got %d", status)
	}
	if status, body := c.do(fasthttp.MethodGet, "/healthz", nil); status != fasthttp.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected healthz %d %q", status, body)
	}
}

func TestPlayAMove(t *testing.T) {
	c := newTestServer(t)

	var board chessdto.BoardState
	c.decode(fasthttp.MethodPost, "/game/start", chessdto.StartRequest{White: "Ana", Black: "Ben"}, fasthttp.StatusOK, &board)
	if board.Mover.Name != "Ana" || len(board.Squares) != 64 {
		t.Fatalf("unexpected start state: mover=%+v squares=%d", board.Mover, len(board.Squares))
	}

	var click chessdto.ClickResult
	c.decode(fasthttp.MethodPost, "/game/click", chessdto.ClickRequest{Square: "e2"}, fasthttp.StatusOK, &click)
	if click.Action != "select" || len(click.Targets) != 2 {
		t.Fatalf("unexpected select: %+v", click)
	}
	c.decode(fasthttp.MethodPost, "/game/click", chessdto.ClickRequest{I: intPtr(4), J: intPtr(3)}, fasthttp.StatusOK, &click)
	if click.Action != "move" || click.Notation != "Pe4" || !click.MovePending || len(click.Diffs) != 2 {
		t.Fatalf("unexpected move: %+v", click)
	}
	if !strings.Contains(click.Message, "Pe4") {
		t.Fatalf("message should mention the move: %q", click.Message)
	}

	var turn chessdto.TurnResult
	c.decode(fasthttp.MethodPost, "/game/confirm", nil, fasthttp.StatusOK, &turn)
	if !turn.Advanced || turn.Mover.Name != "Ben" {
		t.Fatalf("unexpected turn: %+v", turn)
	}

	status, fen := c.do(fasthttp.MethodGet, "/game/fen", nil)
	if status != fasthttp.StatusOK || string(fen) != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR" {
		t.Fatalf("unexpected fen %d %q", status, fen)
	}

	var sq chessdto.Square
	c.decode(fasthttp.MethodGet, "/game/square?i=4&j=3", nil, fasthttp.StatusOK, &sq)
	if sq.Square != "e4" || sq.Kind != "pawn" || sq.Color != "white" {
		t.Fatalf("unexpected square %+v", sq)
	}

	status, text := c.do(fasthttp.MethodGet, "/game/pgn", nil)
	if status != fasthttp.StatusOK || !strings.Contains(string(text), "1. Pe4 *") {
		t.Fatalf("unexpected pgn %d %q", status, text)
	}

	status, img := c.do(fasthttp.MethodGet, "/game/board.png", nil)
	if status != fasthttp.StatusOK {
		t.Fatalf("unexpected png status %d", status)
	}
	if _, err := png.Decode(bytes.NewReader(img)); err != nil {
		t.Fatalf("decode png: %v", err)
	}
}

func TestBadInput(t *testing.T) {
	c := newTestServer(t)
	c.decode(fasthttp.MethodPost, "/game/start", nil, fasthttp.StatusOK, nil)

	for _, body := range []any{
		chessdto.ClickRequest{},
		chessdto.ClickRequest{Square: "z9"},
		chessdto.ClickRequest{I: intPtr(1)},
	} {
		c.decode(fasthttp.MethodPost, "/game/click", body, fasthttp.StatusBadRequest, nil)
	}
	if status, _ := c.do(fasthttp.MethodGet, "/game/square?i=9&j=0", nil); status != fasthttp.StatusBadRequest {
		t.Fatalf("off-board square should be 400, got %d", status)
	}
	if status, _ := c.do(fasthttp.MethodGet, "/game/square?i=x", nil); status != fasthttp.StatusBadRequest {
		t.Fatalf("bad query should be 400, got %d", status)
	}

	// Off-board clicks are not errors.
	var click chessdto.ClickResult
	c.decode(fasthttp.MethodPost, "/game/click", chessdto.ClickRequest{I: intPtr(-1), J: intPtr(3)}, fasthttp.StatusOK, &click)
	if click.Action != "none" {
		t.Fatalf("expected none, got %+v", click)
	}
}

func TestSaveAndLoad(t *testing.T) {
	c := newTestServer(t)

	var e chessdto.DomainError
	c.decode(fasthttp.MethodPost, "/game/load", nil, fasthttp.StatusNotFound, &e)
	if e.Code != "no_saved_board" {
		t.Fatalf("unexpected load error %+v", e)
	}

	c.decode(fasthttp.MethodPost, "/game/start", chessdto.StartRequest{White: "Ana", Black: "Ben"}, fasthttp.StatusOK, nil)
	c.decode(fasthttp.MethodPost, "/game/click", chessdto.ClickRequest{Square: "b1"}, fasthttp.StatusOK, nil)
	c.decode(fasthttp.MethodPost, "/game/click", chessdto.ClickRequest{Square: "c3"}, fasthttp.StatusOK, nil)

	var saved chessdto.SaveResult
	c.decode(fasthttp.MethodPost, "/game/save", nil, fasthttp.StatusOK, &saved)
	if !saved.Saved {
		t.Fatalf("expected saved result")
	}

	var loaded chessdto.LoadResult
	c.decode(fasthttp.MethodPost, "/game/load", nil, fasthttp.StatusOK, &loaded)
	if loaded.Board == nil || loaded.Board.Mover.Name != "Ben" || loaded.Board.MovePending {
		t.Fatalf("unexpected loaded board %+v", loaded.Board)
	}
	if len(loaded.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", loaded.Warnings)
	}

	var pgnSaved chessdto.SaveResult
	c.decode(fasthttp.MethodPost, "/game/pgn", nil, fasthttp.StatusOK, &pgnSaved)
	if !strings.Contains(pgnSaved.Message, ".pgn") {
		t.Fatalf("unexpected pgn save message %q", pgnSaved.Message)
	}
}

func TestArchivedGames(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()
	ended := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"g1", "g2", "g3"} {
		err := c.repo.SaveGame(ctx, &domain.GameRecord{
			ID:         id,
			WhiteName:  "Ana",
			BlackName:  "Ben",
			Winner:     "white",
			WinnerName: "Ana",
			Result:     "1-0",
			Moves:      []string{"Pe4", "Pd5"},
			PGN:        "1. Pe4 Pd5 1-0\n",
			EndedAt:    ended.Add(time.Duration(i) * time.Minute),
			Duration:   90 * time.Second,
		})
		if err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	var recent chessdto.RecentGames
	c.decode(fasthttp.MethodGet, "/games/recent?limit=2", nil, fasthttp.StatusOK, &recent)
	if len(recent.Games) != 2 || recent.Games[0].ID != "g3" || recent.Games[1].ID != "g2" {
		t.Fatalf("unexpected recent games %+v", recent.Games)
	}
	if recent.Games[0].Plies != 2 || recent.Games[0].PGN != "" || recent.Games[0].DurationMS != 90000 {
		t.Fatalf("unexpected listing entry %+v", recent.Games[0])
	}
	c.decode(fasthttp.MethodGet, "/games/recent", nil, fasthttp.StatusOK, &recent)
	if len(recent.Games) != 3 {
		t.Fatalf("expected all 3 games, got %d", len(recent.Games))
	}
	c.decode(fasthttp.MethodGet, "/games/recent?limit=0", nil, fasthttp.StatusBadRequest, nil)

	var game chessdto.ArchivedGame
	c.decode(fasthttp.MethodGet, "/games/g1", nil, fasthttp.StatusOK, &game)
	if game.White != "Ana" || game.Result != "1-0" || len(game.Moves) != 2 || game.PGN == "" {
		t.Fatalf("unexpected game %+v", game)
	}

	var e chessdto.DomainError
	c.decode(fasthttp.MethodGet, "/games/missing", nil, fasthttp.StatusNotFound, &e)
	if e.Code != "game_not_found" {
		t.Fatalf("unexpected error %+v", e)
	}
}
