package boardfile

import (
	"fmt"

	"github.com/park285/cheese-board/internal/engine"
)

// GameType is the `$` tag of an annotation file.
type GameType uint8

const (
	// GameTypeShared is two players sharing one board. Files written by the game carry `$s`.
	GameTypeShared GameType = iota
	// GameTypeMatch is accepted and written back as `$m` but not played differently.
	GameTypeMatch
)

func (g GameType) Letter() byte {
	if g == GameTypeMatch {
		return 'm'
	}
	return 's'
}

func (g GameType) String() string {
	if g == GameTypeMatch {
		return "match"
	}
	return "shared"
}

type Player struct {
	Name  string
	Color engine.Color
}

// Document is the content of one annotation file.
type Document struct {
	Board    *engine.Board
	Mover    engine.Color
	GameType GameType
	// Players holds the first two `%` tags in file order.
	Players []Player
}

// NewDocument returns an empty board with White to move.
func NewDocument() *Document {
	return &Document{Board: engine.NewBoard(), Mover: engine.White, GameType: GameTypeShared}
}

// Warning describes a token the reader skipped or a suspicious position.
type Warning struct {
	Line   int
	Token  string
	Reason string
}

func (w Warning) String() string {
	if w.Token == "" {
		return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
	}
	return fmt.Sprintf("line %d: %q: %s", w.Line, w.Token, w.Reason)
}
