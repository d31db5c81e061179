package engine

// Occupant is the value record held by a square. Movement flags travel with
// the record when it is copied to another square.
type Occupant struct {
	Color           Color
	Kind            PieceKind
	Moved           bool
	JustDoubleMoved bool
	// Forward is the rank step of a pawn (+1 or -1). It is bound once from
	// the placement square and never re-derived.
	Forward int
	// Start is the square the occupant was created on.
	Start Pos
}

func emptyOccupant() Occupant {
	return Occupant{Color: White, Kind: Empty}
}

// NewOccupant creates a fresh, unmoved occupant placed at p.
func NewOccupant(c Color, k PieceKind, p Pos) Occupant {
	if k == Empty {
		return emptyOccupant()
	}
	fwd := 1
	if p.J >= Size/2 {
		fwd = -1
	}
	return Occupant{Color: c, Kind: k, Forward: fwd, Start: p}
}

func (o Occupant) IsEmpty() bool { return o.Kind == Empty }

func (o Occupant) isOpponentOf(c Color) bool { return o.Kind != Empty && o.Color != c }

// Board is the 8x8 grid. It is not safe for concurrent use.
type Board struct {
	squares [Size][Size]Occupant
}

// NewBoard returns a board with every square empty.
func NewBoard() *Board {
	b := &Board{}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			b.squares[i][j] = emptyOccupant()
		}
	}
	return b
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Place puts a new unmoved piece on (i, j). Placing Empty clears the square.
func (b *Board) Place(c Color, k PieceKind, i, j int) {
	p := Pos{I: i, J: j}
	if !p.OnBoard() {
		return
	}
	b.squares[i][j] = NewOccupant(c, k, p)
}

func (b *Board) Clear(i, j int) {
	if !(Pos{I: i, J: j}).OnBoard() {
		return
	}
	b.squares[i][j] = emptyOccupant()
}

// Occupant returns a copy of the record at p. Off-board positions read as empty.
func (b *Board) Occupant(p Pos) Occupant {
	if !p.OnBoard() {
		return emptyOccupant()
	}
	return b.squares[p.I][p.J]
}

func (b *Board) at(p Pos) *Occupant { return &b.squares[p.I][p.J] }

func (b *Board) Square(i, j int) SquareState {
	o := b.Occupant(Pos{I: i, J: j})
	return SquareState{Color: o.Color, Kind: o.Kind, I: i, J: j}
}

// Squares returns all 64 squares, file-major (a1, a2, ... h8).
func (b *Board) Squares() []SquareState {
	out := make([]SquareState, 0, Size*Size)
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			out = append(out, b.Square(i, j))
		}
	}
	return out
}

func (b *Board) IsEmptySquare(i, j int) bool {
	return b.Occupant(Pos{I: i, J: j}).IsEmpty()
}

func (b *Board) IsOpponentPiece(i, j int, c Color) bool {
	return b.Occupant(Pos{I: i, J: j}).isOpponentOf(c)
}

func (b *Board) IsKing(i, j int) bool {
	return b.Occupant(Pos{I: i, J: j}).Kind == King
}

func (b *Board) KingCount(c Color) int {
	n := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if o := b.squares[i][j]; o.Kind == King && o.Color == c {
				n++
			}
		}
	}
	return n
}

// IsValidMove reports whether to is among the destinations of the piece on from.
func (b *Board) IsValidMove(from, to Pos) bool {
	for _, d := range b.AvailableMoves(from) {
		if d == to {
			return true
		}
	}
	return false
}

// AvailableMoves lists the destinations of the piece on from.
func (b *Board) AvailableMoves(from Pos) []Pos {
	return AvailableMoves(b, from)
}

// MakeMove relocates the piece on from to to and applies castling, promotion,
// double-step and en passant side effects. The move is not re-validated.
// The returned diff lists rook squares (castling), the en passant victim
// square, then the destination and the origin.
func (b *Board) MakeMove(from, to Pos) []SquareState {
	if !from.OnBoard() || !to.OnBoard() {
		return nil
	}
	mover := b.Occupant(from)
	if mover.IsEmpty() {
		return nil
	}
	b.clearDoubleMoveFlags(mover.Color)

	var diffs []SquareState
	if rookFrom, rookTo, ok := castlingRook(mover, from, to); ok {
		diffs = append(diffs, b.MakeMove(rookFrom, rookTo)...)
	}

	origin := b.at(from)
	if isPromotion(mover, to) {
		origin.Kind = Queen
	}
	if mover.Kind == Pawn && abs(to.J-from.J) == 2 {
		origin.JustDoubleMoved = true
	}
	if victim, ok := b.enPassantVictim(mover, from, to); ok {
		b.squares[victim.I][victim.J] = emptyOccupant()
		diffs = append(diffs, b.Square(victim.I, victim.J))
	}

	*b.at(to) = *origin
	*origin = emptyOccupant()
	b.at(to).Moved = true

	diffs = append(diffs, b.Square(to.I, to.J), b.Square(from.I, from.J))
	return diffs
}

func (b *Board) clearDoubleMoveFlags(c Color) {
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if o := &b.squares[i][j]; o.Color == c && o.Kind != Empty {
				o.JustDoubleMoved = false
			}
		}
	}
}

func castlingRook(mover Occupant, from, to Pos) (Pos, Pos, bool) {
	if mover.Kind != King || to.J != from.J {
		return Pos{}, Pos{}, false
	}
	switch from.I - to.I {
	case 2:
		return from.Add(-4, 0), from.Add(-1, 0), true
	case -2:
		return from.Add(3, 0), from.Add(1, 0), true
	}
	return Pos{}, Pos{}, false
}

func isPromotion(mover Occupant, to Pos) bool {
	return mover.Kind == Pawn && (to.J == 0 || to.J == Size-1)
}

// enPassantVictim reports the flanking square cleared by a diagonal pawn move
// into an empty square.
func (b *Board) enPassantVictim(mover Occupant, from, to Pos) (Pos, bool) {
	if mover.Kind != Pawn || abs(to.I-from.I) != 1 || abs(to.J-from.J) != 1 {
		return Pos{}, false
	}
	if !b.Occupant(to).IsEmpty() {
		return Pos{}, false
	}
	victim := Pos{I: to.I, J: from.J}
	if !b.Occupant(victim).isOpponentOf(mover.Color) {
		return Pos{}, false
	}
	return victim, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
