package engine

var (
	rookDirs   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [][2]int{{1, 1}, {-1, -1}, {1, -1}, {-1, 1}}
	queenDirs  = append(append([][2]int{}, rookDirs...), bishopDirs...)

	knightOffsets = [][2]int{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingOffsets = [][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

// AvailableMoves returns the candidate destinations of the occupant on from.
// It reads the board only. Only the king filters its destinations against
// attacked squares; no other piece is checked for exposing its own king.
func AvailableMoves(b *Board, from Pos) []Pos {
	o := b.Occupant(from)
	switch o.Kind {
	case Bishop:
		return slide(b, from, o.Color, bishopDirs)
	case Rook:
		return slide(b, from, o.Color, rookDirs)
	case Queen:
		return slide(b, from, o.Color, queenDirs)
	case Knight:
		return jumps(b, from, o.Color, knightOffsets)
	case Pawn:
		return pawnMoves(b, from, o)
	case King:
		return kingMoves(b, from, o)
	default:
		return nil
	}
}

func slide(b *Board, from Pos, c Color, dirs [][2]int) []Pos {
	var out []Pos
	for _, d := range dirs {
		for p := from.Add(d[0], d[1]); p.OnBoard(); p = p.Add(d[0], d[1]) {
			target := b.Occupant(p)
			if target.IsEmpty() {
				out = append(out, p)
				continue
			}
			if target.Color != c {
				out = append(out, p)
			}
			break
		}
	}
	return out
}

func jumps(b *Board, from Pos, c Color, offsets [][2]int) []Pos {
	var out []Pos
	for _, d := range offsets {
		p := from.Add(d[0], d[1])
		if !p.OnBoard() {
			continue
		}
		if target := b.Occupant(p); target.IsEmpty() || target.Color != c {
			out = append(out, p)
		}
	}
	return out
}

func pawnMoves(b *Board, from Pos, o Occupant) []Pos {
	var out []Pos
	fwd := o.Forward
	if fwd == 0 {
		fwd = 1
	}

	one := from.Add(0, fwd)
	if one.OnBoard() && b.Occupant(one).IsEmpty() {
		out = append(out, one)
		two := from.Add(0, 2*fwd)
		if from == o.Start && two.OnBoard() && b.Occupant(two).IsEmpty() {
			out = append(out, two)
		}
	}

	for _, di := range []int{-1, 1} {
		diag := from.Add(di, fwd)
		if !diag.OnBoard() {
			continue
		}
		target := b.Occupant(diag)
		if target.isOpponentOf(o.Color) {
			out = append(out, diag)
			continue
		}
		if !target.IsEmpty() {
			continue
		}
		flank := b.Occupant(from.Add(di, 0))
		if flank.Kind == Pawn && flank.isOpponentOf(o.Color) && flank.JustDoubleMoved {
			out = append(out, diag)
		}
	}
	return out
}

func kingMoves(b *Board, from Pos, o Occupant) []Pos {
	var out []Pos
	for _, d := range kingOffsets {
		p := from.Add(d[0], d[1])
		if !p.OnBoard() {
			continue
		}
		if !b.Occupant(p).IsEmpty() {
			continue
		}
		if isUnderAttack(b, p, o.Color) {
			continue
		}
		out = append(out, p)
	}

	if o.Moved {
		return out
	}
	// queenside: three empty squares, rook four files away
	if canCastle(b, from, -1, 3) {
		out = append(out, from.Add(-2, 0))
	}
	// kingside: two empty squares, rook three files away
	if canCastle(b, from, 1, 2) {
		out = append(out, from.Add(2, 0))
	}
	return out
}

// canCastle only asks for an unmoved rook on the corner; its color is not checked.
func canCastle(b *Board, from Pos, dir, gap int) bool {
	rookPos := from.Add(dir*(gap+1), 0)
	if !rookPos.OnBoard() {
		return false
	}
	for k := 1; k <= gap; k++ {
		if !b.Occupant(from.Add(dir*k, 0)).IsEmpty() {
			return false
		}
	}
	rook := b.Occupant(rookPos)
	return rook.Kind == Rook && !rook.Moved
}

// isUnderAttack reports whether any opposing piece other than a king lists p
// among its destinations.
func isUnderAttack(b *Board, p Pos, c Color) bool {
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			o := b.squares[i][j]
			if o.Kind == Empty || o.Kind == King || o.Color == c {
				continue
			}
			for _, d := range AvailableMoves(b, Pos{I: i, J: j}) {
				if d == p {
					return true
				}
			}
		}
	}
	return false
}
