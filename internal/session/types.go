package session

import (
	"context"
	"errors"
	"time"

	"github.com/park285/cheese-board/internal/boardfile"
	"github.com/park285/cheese-board/internal/domain"
	"github.com/park285/cheese-board/internal/engine"
)

// ErrNoGame is returned by operations that need a running game.
var ErrNoGame = errors.New("no game in progress")

type (
	Player   = boardfile.Player
	GameType = boardfile.GameType
)

const (
	GameTypeShared = boardfile.GameTypeShared
	GameTypeMatch  = boardfile.GameTypeMatch
)

// Action is the outcome of a click.
type Action uint8

const (
	ActionNone Action = iota
	ActionSelect
	ActionReselect
	ActionMove
)

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionReselect:
		return "reselect"
	case ActionMove:
		return "move"
	default:
		return "none"
	}
}

// ClickResult tells the presentation layer what to redraw.
type ClickResult struct {
	Action Action
	Square engine.Pos
	// Selected is the square to highlight, Cleared the one to un-highlight.
	Selected *engine.Pos
	Cleared  *engine.Pos
	// Diffs and Notation are set for ActionMove.
	Diffs    []engine.SquareState
	Notation string
	GameOver bool
	Winner   *Player
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	GameID      string
	Squares     []engine.SquareState
	Mover       Player
	Players     [2]Player
	GameType    GameType
	Selection   *engine.Pos
	MovePending bool
	Finished    bool
	Winner      *Player
	FEN         string
	Moves       []string
}

// Archiver receives finished games.
type Archiver interface {
	SaveGame(ctx context.Context, g *domain.GameRecord) error
}

type Options struct {
	Store     boardfile.Store
	StartName string
	SavedName string
	Archive   Archiver
	// ArchiveTimeout bounds the save of a finished game. Zero means
	// DefaultArchiveTimeout.
	ArchiveTimeout time.Duration
	Event          string
	Site           string
	Now            func() time.Time
	// NewName generates a name for a player who did not give one.
	NewName func() string
}
