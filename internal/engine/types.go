package engine

import "fmt"

// Size is the number of files and ranks on the board.
const Size = 8

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Letter is the single-character form used in board annotation files.
func (c Color) Letter() byte {
	if c == Black {
		return 'b'
	}
	return 'w'
}

// Label is the capitalised form used in PGN tags.
func (c Color) Label() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

func ParseColor(b byte) (Color, bool) {
	switch b {
	case 'w':
		return White, true
	case 'b':
		return Black, true
	default:
		return White, false
	}
}

// PieceKind is the kind of the occupant of a square. Empty means no piece.
type PieceKind uint8

const (
	Bishop PieceKind = iota
	King
	Knight
	Pawn
	Queen
	Rook
	Empty
)

func (k PieceKind) Letter() byte {
	switch k {
	case Bishop:
		return 'B'
	case King:
		return 'K'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	default:
		return 'E'
	}
}

func (k PieceKind) String() string {
	switch k {
	case Bishop:
		return "bishop"
	case King:
		return "king"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

func ParsePieceKind(b byte) (PieceKind, bool) {
	switch b {
	case 'B':
		return Bishop, true
	case 'K':
		return King, true
	case 'N':
		return Knight, true
	case 'P':
		return Pawn, true
	case 'Q':
		return Queen, true
	case 'R':
		return Rook, true
	case 'E':
		return Empty, true
	default:
		return Empty, false
	}
}

// Pos is a board-native coordinate: I is the file (0 = "a"), J the rank (0 = "1").
type Pos struct {
	I int
	J int
}

func (p Pos) OnBoard() bool {
	return p.I >= 0 && p.I < Size && p.J >= 0 && p.J < Size
}

func (p Pos) Add(di, dj int) Pos { return Pos{I: p.I + di, J: p.J + dj} }

func (p Pos) String() string {
	if !p.OnBoard() {
		return fmt.Sprintf("(%d,%d)", p.I, p.J)
	}
	return string([]byte{byte('a' + p.I), byte('1' + p.J)})
}

// ParsePos parses algebraic square names such as "e4".
func ParsePos(s string) (Pos, bool) {
	if len(s) != 2 {
		return Pos{}, false
	}
	f, r := s[0], s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return Pos{}, false
	}
	return Pos{I: int(f - 'a'), J: int(r - '1')}, true
}

// SquareState is the (color, kind, i, j) tuple used both for move diffs and
// for board snapshots. Empty squares report White as their color.
type SquareState struct {
	Color Color
	Kind  PieceKind
	I     int
	J     int
}

func (s SquareState) Pos() Pos { return Pos{I: s.I, J: s.J} }

func (s SquareState) IsEmpty() bool { return s.Kind == Empty }

// Token renders the four character annotation token, e.g. "wRa1".
func (s SquareState) Token() string {
	return string([]byte{s.Color.Letter(), s.Kind.Letter(), byte('a' + s.I), byte('1' + s.J)})
}
