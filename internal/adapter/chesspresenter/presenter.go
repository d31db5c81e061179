package chesspresenter

import (
	"context"

	"github.com/park285/cheese-board/internal/engine"
	"github.com/park285/cheese-board/internal/render"
	"github.com/park285/cheese-board/internal/session"
)

// Presenter renders the board image of a session.
type Presenter struct {
	renderer *render.Renderer
}

func NewPresenter(renderer *render.Renderer) *Presenter {
	return &Presenter{renderer: renderer}
}

// BoardPNG draws the current board with the selection, its destinations and
// the squares changed by the last move.
func (p *Presenter) BoardPNG(ctx context.Context, s *session.Session, lastDiffs []engine.SquareState) ([]byte, error) {
	if !s.Started() {
		return nil, session.ErrNoGame
	}
	b := s.EngineBoard()
	var opts render.Options
	if sel, ok := s.Selection(); ok {
		sq := engine.NChessSquare(sel)
		opts.Selected = &sq
		for _, t := range b.AvailableMoves(sel) {
			opts.Targets = append(opts.Targets, engine.NChessSquare(t))
		}
	}
	for _, d := range lastDiffs {
		opts.Changed = append(opts.Changed, engine.NChessSquare(d.Pos()))
	}
	return p.renderer.RenderPNG(ctx, engine.ToNChess(b), opts)
}

// Targets lists the destinations of the selected piece.
func Targets(s *session.Session) []engine.Pos {
	sel, ok := s.Selection()
	if !ok {
		return nil
	}
	b := s.EngineBoard()
	if b == nil {
		return nil
	}
	return b.AvailableMoves(sel)
}
