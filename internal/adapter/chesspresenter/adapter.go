package chesspresenter

import (
	"github.com/park285/cheese-board/internal/boardfile"
	"github.com/park285/cheese-board/internal/domain"
	"github.com/park285/cheese-board/internal/engine"
	"github.com/park285/cheese-board/internal/session"
	"github.com/park285/cheese-board/pkg/chessdto"
)

func ToDTOSquare(s engine.SquareState) chessdto.Square {
	return chessdto.Square{
		Square: s.Pos().String(),
		I:      s.I,
		J:      s.J,
		Color:  s.Color.String(),
		Kind:   s.Kind.String(),
		Token:  s.Token(),
	}
}

func ToDTOSquares(in []engine.SquareState) []chessdto.Square {
	if in == nil {
		return nil
	}
	out := make([]chessdto.Square, 0, len(in))
	for _, s := range in {
		out = append(out, ToDTOSquare(s))
	}
	return out
}

func ToDTOPlayer(p session.Player) chessdto.Player {
	return chessdto.Player{Name: p.Name, Color: p.Color.String()}
}

func toDTOPlayerPtr(p *session.Player) *chessdto.Player {
	if p == nil {
		return nil
	}
	v := ToDTOPlayer(*p)
	return &v
}

func posString(p *engine.Pos) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func ToDTOBoard(s *session.Snapshot) *chessdto.BoardState {
	if s == nil {
		return nil
	}
	return &chessdto.BoardState{
		GameID:      s.GameID,
		Squares:     ToDTOSquares(s.Squares),
		Mover:       ToDTOPlayer(s.Mover),
		Players:     []chessdto.Player{ToDTOPlayer(s.Players[engine.White]), ToDTOPlayer(s.Players[engine.Black])},
		GameType:    s.GameType.String(),
		Selection:   posString(s.Selection),
		MovePending: s.MovePending,
		Finished:    s.Finished,
		Winner:      toDTOPlayerPtr(s.Winner),
		FEN:         s.FEN,
		Moves:       append([]string{}, s.Moves...),
	}
}

// ToDTOClick converts a click result. targets lists the destinations of the
// selected piece, if any.
func ToDTOClick(r session.ClickResult, mover session.Player, pending bool, targets []engine.Pos) *chessdto.ClickResult {
	out := &chessdto.ClickResult{
		Action:      r.Action.String(),
		Square:      r.Square.String(),
		Selected:    posString(r.Selected),
		Cleared:     posString(r.Cleared),
		Diffs:       ToDTOSquares(r.Diffs),
		Notation:    r.Notation,
		GameOver:    r.GameOver,
		Winner:      toDTOPlayerPtr(r.Winner),
		Mover:       ToDTOPlayer(mover),
		MovePending: pending,
	}
	for _, p := range targets {
		out.Targets = append(out.Targets, p.String())
	}
	return out
}

func WarningStrings(warns []boardfile.Warning) []string {
	if len(warns) == 0 {
		return nil
	}
	out := make([]string, 0, len(warns))
	for _, w := range warns {
		out = append(out, w.String())
	}
	return out
}

// ToDTOGame converts an archived game. withMoves adds the move list and PGN.
func ToDTOGame(g *domain.GameRecord, withMoves bool) chessdto.ArchivedGame {
	out := chessdto.ArchivedGame{
		ID:         g.ID,
		White:      g.WhiteName,
		Black:      g.BlackName,
		Winner:     g.Winner,
		WinnerName: g.WinnerName,
		Result:     g.Result,
		Plies:      len(g.Moves),
		StartedAt:  g.StartedAt,
		EndedAt:    g.EndedAt,
		DurationMS: g.Duration.Milliseconds(),
	}
	if withMoves {
		out.Moves = append([]string{}, g.Moves...)
		out.PGN = g.PGN
		out.FinalFEN = g.FinalFEN
	}
	return out
}

func ToDTOGames(in []*domain.GameRecord) chessdto.RecentGames {
	out := chessdto.RecentGames{Games: make([]chessdto.ArchivedGame, 0, len(in))}
	for _, g := range in {
		out.Games = append(out.Games, ToDTOGame(g, false))
	}
	return out
}
