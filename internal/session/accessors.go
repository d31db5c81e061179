package session

import "github.com/park285/cheese-board/internal/engine"

func (s *Session) Started() bool { return s.board != nil }

// Board returns all 64 squares, or nil before the first game.
func (s *Session) Board() []engine.SquareState {
	if s.board == nil {
		return nil
	}
	return s.board.Squares()
}

// Square returns one square; ok is false before the first game or off board.
func (s *Session) Square(i, j int) (engine.SquareState, bool) {
	if s.board == nil || !(engine.Pos{I: i, J: j}).OnBoard() {
		return engine.SquareState{}, false
	}
	return s.board.Square(i, j), true
}

// EngineBoard returns a copy of the board for rendering.
func (s *Session) EngineBoard() *engine.Board {
	if s.board == nil {
		return nil
	}
	return s.board.Clone()
}

func (s *Session) Mover() Player { return s.players[s.mover] }

func (s *Session) Players() [2]Player { return s.players }

func (s *Session) Selection() (engine.Pos, bool) { return s.selected, s.hasSelected }

func (s *Session) MovePending() bool { return s.movePending }

func (s *Session) Finished() bool { return s.finished }

// Winner is the player who captured a king.
func (s *Session) Winner() (Player, bool) {
	if !s.finished {
		return Player{}, false
	}
	return s.players[s.winner], true
}

func (s *Session) GameID() string { return s.gameID }

func (s *Session) GameType() GameType { return s.gameType }

// FEN is the piece placement field of the current board.
func (s *Session) FEN() string {
	if s.board == nil {
		return ""
	}
	return engine.FEN(s.board)
}

func (s *Session) Moves() []string { return s.enc.Moves() }

func (s *Session) Snapshot() (*Snapshot, error) {
	if s.board == nil {
		return nil, ErrNoGame
	}
	snap := &Snapshot{
		GameID:      s.gameID,
		Squares:     s.board.Squares(),
		Mover:       s.Mover(),
		Players:     s.players,
		GameType:    s.gameType,
		MovePending: s.movePending,
		Finished:    s.finished,
		FEN:         engine.FEN(s.board),
		Moves:       s.enc.Moves(),
	}
	if s.hasSelected {
		snap.Selection = posPtr(s.selected)
	}
	if w, ok := s.Winner(); ok {
		snap.Winner = &w
	}
	return snap, nil
}
