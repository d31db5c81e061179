package pgn

import (
	"bufio"
	"io"
	"strconv"

	"github.com/park285/cheese-board/internal/engine"
)

// MaxLineWidth is the column budget of a movetext line.
const MaxLineWidth = 255

// Encoder collects plies in a simplified notation: no check marks, no
// disambiguation and no castling symbols.
type Encoder struct {
	moves []string
}

func NewEncoder() *Encoder { return &Encoder{} }

// AddMove records one ply. from and to are the square snapshots taken before
// the move was executed.
func (e *Encoder) AddMove(from, to engine.SquareState) {
	e.moves = append(e.moves, EncodeMove(from, to))
}

// EncodeMove renders "Pe4" for a quiet move and "dxPe5" for a capture. The
// letter is always the kind of the piece that left the origin square.
func EncodeMove(from, to engine.SquareState) string {
	dest := to.Pos().String()
	letter := string(from.Kind.Letter())
	if to.IsEmpty() {
		return letter + dest
	}
	return string(rune('a'+from.I)) + "x" + letter + dest
}

func (e *Encoder) Moves() []string {
	return append([]string(nil), e.moves...)
}

func (e *Encoder) Len() int { return len(e.moves) }

func (e *Encoder) Reset() { e.moves = e.moves[:0] }

// WriteMovetext numbers every second ply and wraps lines before they pass
// MaxLineWidth. A move number always stays on the line of its first ply.
func (e *Encoder) WriteMovetext(w io.Writer) error {
	return writeMovetext(w, e.moves, "")
}

func writeMovetext(w io.Writer, moves []string, result string) error {
	bw := bufio.NewWriter(w)
	width := 0
	emit := func(unit string) {
		switch {
		case width == 0:
		case width+1+len(unit) > MaxLineWidth:
			bw.WriteByte('\n')
			width = 0
		default:
			bw.WriteByte(' ')
			width++
		}
		bw.WriteString(unit)
		width += len(unit)
	}
	for i, m := range moves {
		if i%2 == 0 {
			emit(strconv.Itoa(i/2+1) + ". " + m)
			continue
		}
		emit(m)
	}
	if result != "" {
		emit(result)
	}
	if width > 0 {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
