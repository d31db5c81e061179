package boardfile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/park285/cheese-board/internal/engine"
)

func sampleDocument() *Document {
	doc := NewDocument()
	doc.Board.Place(engine.White, engine.King, 4, 0)
	doc.Board.Place(engine.White, engine.Pawn, 4, 3)
	doc.Board.Place(engine.Black, engine.King, 4, 7)
	doc.Board.Place(engine.Black, engine.Queen, 3, 5)
	doc.Mover = engine.Black
	doc.GameType = GameTypeMatch
	doc.Players = []Player{
		{Name: "Ana", Color: engine.White},
		{Name: "Beto", Color: engine.Black},
	}
	return doc
}

func assertSameDocument(t *testing.T, got, want *Document) {
	t.Helper()
	for i := 0; i < engine.Size; i++ {
		for j := 0; j < engine.Size; j++ {
			if g, w := got.Board.Square(i, j), want.Board.Square(i, j); g != w {
				t.Fatalf("square %s = %+v, want %+v", engine.Pos{I: i, J: j}, g, w)
			}
		}
	}
	if got.Mover != want.Mover {
		t.Fatalf("mover = %v, want %v", got.Mover, want.Mover)
	}
	if got.GameType != want.GameType {
		t.Fatalf("game type = %v, want %v", got.GameType, want.GameType)
	}
	if len(got.Players) != len(want.Players) {
		t.Fatalf("players = %+v, want %+v", got.Players, want.Players)
	}
	for i := range got.Players {
		if got.Players[i] != want.Players[i] {
			t.Fatalf("player %d = %+v, want %+v", i, got.Players[i], want.Players[i])
		}
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	want := sampleDocument()
	got, warns, err := ParseString(String(want))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	assertSameDocument(t, got, want)
}

func TestSingleRookFile(t *testing.T) {
	doc := NewDocument()
	doc.Board.Place(engine.White, engine.Rook, 0, 0)
	doc.Players = []Player{{Name: "a", Color: engine.White}, {Name: "b", Color: engine.Black}}
	text := String(doc)

	squares := 0
	sawRook := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		for _, tok := range strings.Fields(line) {
			if len(tok) == 4 && tok[0] != '%' {
				squares++
			}
			if tok == "wRa1" {
				sawRook = true
			}
		}
	}
	if squares != 64 || !sawRook {
		t.Fatalf("square tokens = %d, rook = %v\n%s", squares, sawRook, text)
	}
	for _, tag := range []string{"\n@w\n", "\n$s\n", "\n%w_a\n", "\n%b_b\n"} {
		if !strings.Contains(text, tag) {
			t.Fatalf("missing %q in\n%s", tag, text)
		}
	}

	back, _, err := ParseString(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	occupied := 0
	for _, sq := range back.Board.Squares() {
		if !sq.IsEmpty() {
			occupied++
		}
	}
	if occupied != 1 || back.Board.Square(0, 0).Kind != engine.Rook {
		t.Fatalf("reloaded board has %d pieces, a1 = %+v", occupied, back.Board.Square(0, 0))
	}
}

func TestParseIsTolerant(t *testing.T) {
	in := strings.Join([]string{
		"# comment line",
		"wKe1 bKe8 xKa1 wZa2 wKi9 hello # trailing wQd1",
		"&w_300 &b_300",
		"@b $s",
		"%w_Ana %b_Beto %w_Extra",
	}, "\n")
	doc, warns, err := ParseString(in)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !doc.Board.IsKing(4, 0) || !doc.Board.IsKing(4, 7) {
		t.Fatalf("kings not placed")
	}
	if !doc.Board.IsEmptySquare(3, 0) {
		t.Fatalf("token after comment marker was read")
	}
	if doc.Mover != engine.Black {
		t.Fatalf("mover = %v", doc.Mover)
	}
	if len(doc.Players) != 2 || doc.Players[1].Name != "Beto" {
		t.Fatalf("players = %+v", doc.Players)
	}
	// xKa1, wZa2, wKi9, hello, %w_Extra
	if len(warns) != 5 {
		t.Fatalf("warnings = %v", warns)
	}
}

func TestCommentMayStartInsideAToken(t *testing.T) {
	doc, warns, err := ParseString("wKe1 bKe8 wRa1#note bQd8\n@w#black to move? no\n%w_a %b_b\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.Board.Square(0, 0); got.Kind != engine.Rook || got.Color != engine.White {
		t.Fatalf("a1 = %+v, want white rook", got)
	}
	if !doc.Board.IsEmptySquare(3, 7) {
		t.Fatalf("token after an inline comment was read")
	}
	if doc.Mover != engine.White || len(warns) != 0 {
		t.Fatalf("mover = %v, warnings = %v", doc.Mover, warns)
	}
}

func TestParseWarnsOnDuplicatePlayerColor(t *testing.T) {
	doc, warns, err := ParseString("wKe1 bKe8\n%w_A %w_B\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Players) != 2 || doc.Players[0].Name != "A" || doc.Players[1].Name != "B" {
		t.Fatalf("players = %+v", doc.Players)
	}
	if len(warns) != 1 || warns[0].Token != "%w_B" {
		t.Fatalf("warnings = %v", warns)
	}
}

func TestParseWarnsOnMissingKing(t *testing.T) {
	_, warns, err := ParseString("wKe1\n@w\n%w_a %b_b\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warns) != 1 || !strings.Contains(warns[0].Reason, "black has 0 kings") {
		t.Fatalf("warnings = %v", warns)
	}
}

func TestEncodeNameFoldsWhitespace(t *testing.T) {
	if got := EncodeName("  Juan  Pablo "); got != "Juan_Pablo" {
		t.Fatalf("EncodeName = %q", got)
	}
	if got := EncodeName("Team#1"); got != "Team_1" {
		t.Fatalf("EncodeName(Team#1) = %q", got)
	}
	if got := EncodeName(""); got != "anonymous" {
		t.Fatalf("EncodeName(empty) = %q", got)
	}
}

func TestStartingPosition(t *testing.T) {
	doc := StartingPosition()
	if doc.Board.KingCount(engine.White) != 1 || doc.Board.KingCount(engine.Black) != 1 {
		t.Fatalf("start position kings wrong")
	}
	if got := engine.FEN(doc.Board); got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" {
		t.Fatalf("FEN = %q", got)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(t.TempDir())

	if _, _, err := s.Load(ctx, "savedBoard.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load missing: err = %v, want ErrNotFound", err)
	}
	want := sampleDocument()
	if err := s.Save(ctx, "savedBoard.txt", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _, err := s.Load(ctx, "savedBoard.txt")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameDocument(t, got, want)
}

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStoreWithClient(rdb, "test:", time.Minute), mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t)

	if _, _, err := s.Load(ctx, "saved"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load missing: err = %v, want ErrNotFound", err)
	}
	want := sampleDocument()
	if err := s.Save(ctx, "saved", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !mr.Exists("test:saved") {
		t.Fatalf("key not written")
	}
	if ttl := mr.TTL("test:saved"); ttl != time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
	got, _, err := s.Load(ctx, "saved")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameDocument(t, got, want)

	mr.FastForward(2 * time.Minute)
	if _, _, err := s.Load(ctx, "saved"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired key: err = %v", err)
	}
}

func TestSeedStart(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)

	wrote, err := SeedStart(ctx, s, "start")
	if err != nil || !wrote {
		t.Fatalf("first seed: wrote=%v err=%v", wrote, err)
	}
	doc, _, err := s.Load(ctx, "start")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := engine.FEN(doc.Board); got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" {
		t.Fatalf("seeded FEN = %q", got)
	}

	edited := sampleDocument()
	if err := s.Save(ctx, "start", edited); err != nil {
		t.Fatalf("Save: %v", err)
	}
	wrote, err = SeedStart(ctx, s, "start")
	if err != nil || wrote {
		t.Fatalf("second seed: wrote=%v err=%v", wrote, err)
	}
	got, _, err := s.Load(ctx, "start")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameDocument(t, got, edited)
}
