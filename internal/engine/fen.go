package engine

import (
	nchess "github.com/corentings/chess/v2"
)

var nchessTypes = map[PieceKind]nchess.PieceType{
	King:   nchess.King,
	Queen:  nchess.Queen,
	Rook:   nchess.Rook,
	Bishop: nchess.Bishop,
	Knight: nchess.Knight,
	Pawn:   nchess.Pawn,
}

// ToNChess converts the board into a corentings/chess board so that it can be
// rendered or printed with that library. Movement flags are not carried over.
func ToNChess(b *Board) *nchess.Board {
	m := make(map[nchess.Square]nchess.Piece)
	for _, sq := range b.Squares() {
		if sq.IsEmpty() {
			continue
		}
		m[NChessSquare(sq.Pos())] = NChessPiece(sq.Color, sq.Kind)
	}
	return nchess.NewBoard(m)
}

func NChessSquare(p Pos) nchess.Square {
	return nchess.NewSquare(nchess.File(p.I), nchess.Rank(p.J))
}

func NChessPiece(c Color, k PieceKind) nchess.Piece {
	pt, ok := nchessTypes[k]
	if !ok {
		return nchess.NoPiece
	}
	nc := nchess.White
	if c == Black {
		nc = nchess.Black
	}
	return nchess.NewPiece(pt, nc)
}

// FEN returns the piece placement field of the board, e.g. "8/8/8/8/8/8/8/R7".
func FEN(b *Board) string {
	return ToNChess(b).String()
}
