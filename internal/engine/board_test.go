package engine

import "testing"

func TestMakeMoveSimpleKingStep(t *testing.T) {
	b := NewBoard()
	b.Place(White, King, 0, 0)
	b.Place(Black, King, 7, 7)

	from, to := Pos{I: 0, J: 0}, Pos{I: 0, J: 1}
	if !b.IsValidMove(from, to) {
		t.Fatalf("a1-a2 should be valid")
	}
	diffs := b.MakeMove(from, to)
	if len(diffs) != 2 {
		t.Fatalf("diff len = %d, want 2: %+v", len(diffs), diffs)
	}
	if diffs[0] != (SquareState{Color: White, Kind: King, I: 0, J: 1}) {
		t.Fatalf("destination diff = %+v", diffs[0])
	}
	if diffs[1] != (SquareState{Color: White, Kind: Empty, I: 0, J: 0}) {
		t.Fatalf("origin diff = %+v", diffs[1])
	}
	if !b.Occupant(to).Moved {
		t.Fatalf("moved flag not set")
	}
}

func TestMakeMoveDoubleStepMarksFlag(t *testing.T) {
	b := NewBoard()
	b.Place(White, Pawn, 4, 1)
	b.MakeMove(Pos{I: 4, J: 1}, Pos{I: 4, J: 3})
	o := b.Occupant(Pos{I: 4, J: 3})
	if o.Kind != Pawn || !o.JustDoubleMoved || !o.Moved {
		t.Fatalf("e4 occupant = %+v", o)
	}
	if b.Occupant(Pos{I: 4, J: 1}) != emptyOccupant() {
		t.Fatalf("e2 not reset: %+v", b.Occupant(Pos{I: 4, J: 1}))
	}
}

func TestMakeMoveEnPassantClearsVictim(t *testing.T) {
	b := NewBoard()
	b.Place(White, Pawn, 4, 3) // e4
	b.Place(Black, Pawn, 3, 5) // d6
	b.MakeMove(Pos{I: 3, J: 5}, Pos{I: 3, J: 3})

	diffs := b.MakeMove(Pos{I: 4, J: 3}, Pos{I: 3, J: 4})
	if len(diffs) != 3 {
		t.Fatalf("diff len = %d, want 3: %+v", len(diffs), diffs)
	}
	if diffs[0] != (SquareState{Color: White, Kind: Empty, I: 3, J: 3}) {
		t.Fatalf("victim diff = %+v", diffs[0])
	}
	if !b.IsEmptySquare(3, 3) {
		t.Fatalf("d4 still occupied")
	}
	if got := b.Square(3, 4); got.Kind != Pawn || got.Color != White {
		t.Fatalf("d5 = %+v", got)
	}
}

func TestMakeMoveCastlingMovesRookFirst(t *testing.T) {
	tests := []struct {
		name     string
		kingTo   Pos
		rookFrom Pos
		rookTo   Pos
	}{
		{"kingside", Pos{I: 6, J: 0}, Pos{I: 7, J: 0}, Pos{I: 5, J: 0}},
		{"queenside", Pos{I: 2, J: 0}, Pos{I: 0, J: 0}, Pos{I: 3, J: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			b.Place(White, King, 4, 0)
			b.Place(White, Rook, 0, 0)
			b.Place(White, Rook, 7, 0)
			b.Place(Black, King, 4, 7)

			kingFrom := Pos{I: 4, J: 0}
			if !b.IsValidMove(kingFrom, tt.kingTo) {
				t.Fatalf("castling to %s not offered", tt.kingTo)
			}
			diffs := b.MakeMove(kingFrom, tt.kingTo)
			if len(diffs) != 4 {
				t.Fatalf("diff len = %d, want 4: %+v", len(diffs), diffs)
			}
			if diffs[0].Pos() != tt.rookTo || diffs[0].Kind != Rook {
				t.Fatalf("first diff = %+v, want rook on %s", diffs[0], tt.rookTo)
			}
			if diffs[1].Pos() != tt.rookFrom || !diffs[1].IsEmpty() {
				t.Fatalf("second diff = %+v, want empty %s", diffs[1], tt.rookFrom)
			}
			if diffs[2].Pos() != tt.kingTo || diffs[2].Kind != King {
				t.Fatalf("third diff = %+v", diffs[2])
			}
			if !b.Occupant(tt.kingTo).Moved || !b.Occupant(tt.rookTo).Moved {
				t.Fatalf("castled pieces not marked moved")
			}
		})
	}
}

func TestMakeMovePromotesToQueen(t *testing.T) {
	b := NewBoard()
	b.Place(White, Pawn, 0, 1)
	for j := 1; j < 6; j++ {
		if !b.IsValidMove(Pos{I: 0, J: j}, Pos{I: 0, J: j + 1}) {
			t.Fatalf("a%d-a%d should be valid", j+1, j+2)
		}
		b.MakeMove(Pos{I: 0, J: j}, Pos{I: 0, J: j + 1})
	}
	diffs := b.MakeMove(Pos{I: 0, J: 6}, Pos{I: 0, J: 7})
	if diffs[0].Kind != Queen || diffs[0].Color != White {
		t.Fatalf("promotion diff = %+v", diffs[0])
	}
	if got := b.Square(0, 7); got.Kind != Queen {
		t.Fatalf("a8 = %+v, want queen", got)
	}

	// g5 lies on the upper half, so the pawn walks toward rank 1
	b2 := NewBoard()
	b2.Place(Black, Pawn, 6, 4)
	for j := 4; j > 0; j-- {
		b2.MakeMove(Pos{I: 6, J: j}, Pos{I: 6, J: j - 1})
	}
	if got := b2.Square(6, 0); got.Kind != Queen || got.Color != Black {
		t.Fatalf("g1 = %+v, want black queen", got)
	}
}

func TestCaptureOfKingIsAllowed(t *testing.T) {
	b := NewBoard()
	b.Place(White, Rook, 0, 0)
	b.Place(Black, King, 0, 7)
	if !b.IsValidMove(Pos{I: 0, J: 0}, Pos{I: 0, J: 7}) {
		t.Fatalf("rook should be able to take the king")
	}
	b.MakeMove(Pos{I: 0, J: 0}, Pos{I: 0, J: 7})
	if b.KingCount(Black) != 0 {
		t.Fatalf("black king still on board")
	}
}

func TestSquaresOrderAndQueries(t *testing.T) {
	b := NewBoard()
	b.Place(Black, Knight, 1, 0)
	sq := b.Squares()
	if len(sq) != 64 {
		t.Fatalf("len = %d", len(sq))
	}
	if sq[8] != (SquareState{Color: Black, Kind: Knight, I: 1, J: 0}) {
		t.Fatalf("squares[8] = %+v", sq[8])
	}
	if !b.IsOpponentPiece(1, 0, White) || b.IsOpponentPiece(1, 0, Black) {
		t.Fatalf("IsOpponentPiece wrong for b1")
	}
	if b.IsOpponentPiece(2, 2, White) {
		t.Fatalf("empty square reported as opponent")
	}
}

func TestFENBridge(t *testing.T) {
	b := NewBoard()
	b.Place(White, Rook, 0, 0)
	b.Place(Black, King, 7, 7)
	if got, want := FEN(b), "7k/8/8/8/8/8/8/R7"; got != want {
		t.Fatalf("FEN = %q, want %q", got, want)
	}
}
