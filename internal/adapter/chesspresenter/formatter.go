package chesspresenter

import (
	"go.uber.org/zap"

	"github.com/park285/cheese-board/internal/engine"
	"github.com/park285/cheese-board/internal/msgcat"
	"github.com/park285/cheese-board/internal/obslog"
	"github.com/park285/cheese-board/internal/session"
)

// Formatter turns session outcomes into catalog messages.
type Formatter struct {
	cat *msgcat.Catalog
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	return &Formatter{cat: cat}
}

// render falls back to the key itself so a broken override never hides a
// result from the client.
func (f *Formatter) render(key string, data map[string]any) string {
	if f == nil || f.cat == nil {
		return key
	}
	s, err := f.cat.Render(key, data)
	if err != nil {
		obslog.L().Warn("message_render_error", zap.String("key", key), zap.Error(err))
		return key
	}
	return s
}

func (f *Formatter) Started(s *session.Snapshot) string {
	if s == nil {
		return f.NoGame()
	}
	return f.render("game.started", map[string]any{
		"White": s.Players[engine.White].Name,
		"Black": s.Players[engine.Black].Name,
		"Mover": s.Mover.Name,
	})
}

func (f *Formatter) NoGame() string { return f.render("game.no_game", nil) }

func (f *Formatter) Turn(mover session.Player) string {
	return f.render("game.turn", map[string]any{"Mover": mover.Name, "Color": mover.Color.String()})
}

// Click describes a click result from the point of view of mover.
func (f *Formatter) Click(r session.ClickResult, mover session.Player, kind engine.PieceKind, result string) string {
	switch r.Action {
	case session.ActionSelect:
		return f.render("click.select", map[string]any{"Kind": kind.String(), "Square": r.Square.String()})
	case session.ActionReselect:
		return f.render("click.reselect", map[string]any{"Kind": kind.String(), "Square": r.Square.String()})
	case session.ActionMove:
		if r.GameOver && r.Winner != nil {
			return f.GameOver(*r.Winner, result)
		}
		return f.render("game.pending", map[string]any{"Mover": mover.Name, "Notation": r.Notation})
	default:
		return f.render("click.none", map[string]any{"Square": r.Square.String()})
	}
}

func (f *Formatter) GameOver(winner session.Player, result string) string {
	return f.render("game.over", map[string]any{"Winner": winner.Name, "Result": result})
}

func (f *Formatter) Saved() string { return f.render("board.saved", nil) }

func (f *Formatter) SaveFailed(err error) string {
	return f.render("board.save_failed", map[string]any{"Reason": err.Error()})
}

func (f *Formatter) Loaded(mover session.Player, warnings int) string {
	if warnings > 0 {
		return f.render("board.loaded_with_warnings", map[string]any{"Count": warnings, "Mover": mover.Name})
	}
	return f.render("board.loaded", map[string]any{"Mover": mover.Name})
}

func (f *Formatter) LoadFailed(err error) string {
	return f.render("board.load_failed", map[string]any{"Reason": err.Error()})
}

func (f *Formatter) PGNSaved(path string) string {
	return f.render("pgn.saved", map[string]any{"Path": path})
}
