package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/cheese-board/internal/boardfile"
	"github.com/park285/cheese-board/internal/domain"
	"github.com/park285/cheese-board/internal/engine"
	"github.com/park285/cheese-board/internal/obslog"
	"github.com/park285/cheese-board/internal/pgn"
)

const (
	DefaultStartName = "startBoard.txt"
	DefaultSavedName = "savedBoard.txt"

	DefaultArchiveTimeout = 10 * time.Second
)

// Session drives one board through the select/move/confirm cycle.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	opts Options

	board    *engine.Board
	players  [2]Player // indexed by color
	mover    engine.Color
	gameType GameType

	selected    engine.Pos
	hasSelected bool
	movePending bool

	finished bool
	winner   engine.Color

	gameID    string
	startedAt time.Time
	enc       *pgn.Encoder
}

func New(opts Options) *Session {
	if strings.TrimSpace(opts.StartName) == "" {
		opts.StartName = DefaultStartName
	}
	if strings.TrimSpace(opts.SavedName) == "" {
		opts.SavedName = DefaultSavedName
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ArchiveTimeout <= 0 {
		opts.ArchiveTimeout = DefaultArchiveTimeout
	}
	if opts.NewName == nil {
		opts.NewName = func() string { return petname.Generate(2, "-") }
	}
	return &Session{opts: opts, enc: pgn.NewEncoder()}
}

// StartGame loads the start position and resets the turn state. The
// embedded standard setup is used when the store has no start file.
func (s *Session) StartGame(ctx context.Context, whiteName, blackName string) (*Snapshot, error) {
	doc, err := s.loadStart(ctx)
	if err != nil {
		return nil, err
	}
	s.install(doc)
	s.players[engine.White] = Player{Name: s.nameOr(whiteName), Color: engine.White}
	s.players[engine.Black] = Player{Name: s.nameOr(blackName), Color: engine.Black}

	obslog.L().Info("game_started",
		zap.String("game_id", s.gameID),
		zap.String("white", s.players[engine.White].Name),
		zap.String("black", s.players[engine.Black].Name),
		zap.String("mover", s.mover.String()),
	)
	return s.Snapshot()
}

func (s *Session) loadStart(ctx context.Context) (*boardfile.Document, error) {
	if s.opts.Store == nil {
		return boardfile.StartingPosition(), nil
	}
	doc, warns, err := s.opts.Store.Load(ctx, s.opts.StartName)
	if errors.Is(err, boardfile.ErrNotFound) {
		obslog.L().Info("start_board_fallback", zap.String("name", s.opts.StartName))
		return boardfile.StartingPosition(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load start board: %w", err)
	}
	logWarnings(s.opts.StartName, warns)
	return doc, nil
}

// install replaces the board and clears every piece of turn state.
func (s *Session) install(doc *boardfile.Document) {
	s.board = doc.Board
	s.mover = doc.Mover
	s.gameType = doc.GameType
	s.hasSelected = false
	s.movePending = false
	s.finished = false
	s.gameID = uuid.NewString()
	s.startedAt = s.opts.Now()
	s.enc.Reset()
}

func (s *Session) nameOr(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return s.opts.NewName()
}

// SquareClicked applies one board click for the current mover.
func (s *Session) SquareClicked(ctx context.Context, i, j int) ClickResult {
	p := engine.Pos{I: i, J: j}
	res := ClickResult{Action: ActionNone, Square: p}
	if s.board == nil || s.finished || !p.OnBoard() {
		return res
	}

	target := s.board.Occupant(p)
	ownPiece := !target.IsEmpty() && target.Color == s.mover

	switch {
	case s.hasSelected && !s.movePending && !ownPiece && s.board.IsValidMove(s.selected, p):
		return s.move(ctx, p)
	case !s.hasSelected && !s.movePending && ownPiece:
		s.selected, s.hasSelected = p, true
		res.Action = ActionSelect
		res.Selected = posPtr(p)
	case s.hasSelected && ownPiece && p != s.selected:
		res.Action = ActionReselect
		res.Cleared = posPtr(s.selected)
		res.Selected = posPtr(p)
		s.selected = p
	}
	return res
}

func (s *Session) move(ctx context.Context, to engine.Pos) ClickResult {
	from := s.selected
	fromSnap := s.board.Square(from.I, from.J)
	toSnap := s.board.Square(to.I, to.J)

	diffs := s.board.MakeMove(from, to)
	s.enc.AddMove(fromSnap, toSnap)
	notation := pgn.EncodeMove(fromSnap, toSnap)
	s.movePending = true
	s.hasSelected = false

	res := ClickResult{
		Action:   ActionMove,
		Square:   to,
		Cleared:  posPtr(from),
		Diffs:    diffs,
		Notation: notation,
	}
	obslog.L().Info("game_move",
		zap.String("game_id", s.gameID),
		zap.String("mover", s.mover.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.String("notation", notation),
	)

	if toSnap.Kind == engine.King {
		s.finished = true
		s.winner = s.mover
		w := s.players[s.mover]
		res.GameOver = true
		res.Winner = &w
		obslog.L().Info("game_over",
			zap.String("game_id", s.gameID),
			zap.String("winner", w.Name),
			zap.Int("plies", s.enc.Len()),
		)
		s.archive(ctx)
	}
	return res
}

// AdvanceTurn hands the board to the other player once a move is pending.
func (s *Session) AdvanceTurn() bool {
	if s.board == nil || !s.movePending {
		return false
	}
	s.mover = s.mover.Opposite()
	s.movePending = false
	s.hasSelected = false
	return true
}

// ConfirmMove is AdvanceTurn under the name the UI uses.
func (s *Session) ConfirmMove() bool { return s.AdvanceTurn() }

// SaveBoard writes the position under the saved-board name. The mover tag
// names the side to move next, so a pending move is saved as confirmed.
func (s *Session) SaveBoard(ctx context.Context) error {
	if s.board == nil {
		return ErrNoGame
	}
	if s.opts.Store == nil {
		return errors.New("no board store configured")
	}
	next := s.mover
	if s.movePending {
		next = next.Opposite()
	}
	doc := &boardfile.Document{
		Board:    s.board.Clone(),
		Mover:    next,
		GameType: s.gameType,
		Players:  []Player{s.players[engine.White], s.players[engine.Black]},
	}
	if err := s.opts.Store.Save(ctx, s.opts.SavedName, doc); err != nil {
		obslog.L().Error("board_save_error", zap.String("name", s.opts.SavedName), zap.Error(err))
		return fmt.Errorf("save board: %w", err)
	}
	obslog.L().Info("board_saved", zap.String("game_id", s.gameID), zap.String("name", s.opts.SavedName))
	return nil
}

// LoadBoard replaces the game with the saved board. On failure the current
// game is left untouched.
func (s *Session) LoadBoard(ctx context.Context) ([]boardfile.Warning, error) {
	if s.opts.Store == nil {
		return nil, errors.New("no board store configured")
	}
	doc, warns, err := s.opts.Store.Load(ctx, s.opts.SavedName)
	if err != nil {
		obslog.L().Warn("board_load_error", zap.String("name", s.opts.SavedName), zap.Error(err))
		return nil, fmt.Errorf("load board: %w", err)
	}
	logWarnings(s.opts.SavedName, warns)

	prev := s.players
	s.install(doc)
	s.players = [2]Player{
		{Name: prev[engine.White].Name, Color: engine.White},
		{Name: prev[engine.Black].Name, Color: engine.Black},
	}
	// tags fill the slot of their color; a file that repeats a color falls
	// back to file order, first tag white.
	byOrder := len(doc.Players) == 2 && doc.Players[0].Color == doc.Players[1].Color
	for i, p := range doc.Players {
		c := p.Color
		if byOrder {
			c = engine.Color(i)
		}
		s.players[c].Name = p.Name
	}
	for c := range s.players {
		s.players[c].Name = s.nameOr(s.players[c].Name)
	}
	obslog.L().Info("board_loaded",
		zap.String("game_id", s.gameID),
		zap.String("name", s.opts.SavedName),
		zap.Int("warnings", len(warns)),
	)
	return warns, nil
}

func (s *Session) tags() pgn.Tags {
	result := pgn.ResultOngoing
	if s.finished {
		result = pgn.ResultFor(s.winner)
	}
	return pgn.Tags{
		Event:   s.opts.Event,
		Site:    s.opts.Site,
		Date:    s.opts.Now(),
		Players: []Player{s.players[engine.White], s.players[engine.Black]},
		Result:  result,
	}
}

// ExportPGN writes the tag section and movetext of the current game.
func (s *Session) ExportPGN(w io.Writer) error {
	if s.board == nil {
		return ErrNoGame
	}
	return pgn.Write(w, s.tags(), s.enc.Moves())
}

// SavePGN stores the current game as a .pgn file in dir.
func (s *Session) SavePGN(dir string) (string, error) {
	if s.board == nil {
		return "", ErrNoGame
	}
	path, err := pgn.SaveFile(dir, s.tags(), s.enc.Moves())
	if err != nil {
		return "", fmt.Errorf("save pgn: %w", err)
	}
	obslog.L().Info("pgn_saved", zap.String("game_id", s.gameID), zap.String("path", path))
	return path, nil
}

func (s *Session) archive(ctx context.Context) {
	if s.opts.Archive == nil {
		return
	}
	tags := s.tags()
	ended := s.opts.Now()
	rec := &domain.GameRecord{
		ID:         s.gameID,
		WhiteName:  s.players[engine.White].Name,
		BlackName:  s.players[engine.Black].Name,
		Winner:     s.winner.String(),
		WinnerName: s.players[s.winner].Name,
		Result:     tags.Result,
		Moves:      s.enc.Moves(),
		PGN:        pgn.Render(tags, s.enc.Moves()),
		FinalFEN:   s.FEN(),
		StartedAt:  s.startedAt,
		EndedAt:    ended,
		Duration:   ended.Sub(s.startedAt),
	}
	// the request that took the king may go away; the save should not
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ArchiveTimeout)
	defer cancel()
	if err := s.opts.Archive.SaveGame(ctx, rec); err != nil {
		obslog.L().Error("archive_save_error", zap.String("game_id", s.gameID), zap.Error(err))
	}
}

func logWarnings(name string, warns []boardfile.Warning) {
	for _, w := range warns {
		obslog.L().Warn("board_load_warning",
			zap.String("name", name),
			zap.Int("line", w.Line),
			zap.String("token", w.Token),
			zap.String("reason", w.Reason),
		)
	}
}

func posPtr(p engine.Pos) *engine.Pos { return &p }
