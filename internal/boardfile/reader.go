package boardfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/park285/cheese-board/internal/engine"
)

// Parse reads an annotation file. Malformed or unknown tokens never fail the
// parse; they are skipped and reported as warnings. The returned error is
// only set when r itself fails.
func Parse(r io.Reader) (*Document, []Warning, error) {
	doc := NewDocument()
	var warns []Warning
	warn := func(line int, tok, reason string) {
		warns = append(warns, Warning{Line: line, Token: tok, Reason: reason})
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, tok := range strings.Fields(text) {
			switch {
			case tok[0] == '@' && len(tok) >= 2:
				c, ok := engine.ParseColor(tok[1])
				if !ok {
					warn(line, tok, "unknown mover color")
					continue
				}
				doc.Mover = c
			case tok[0] == '$' && len(tok) >= 2:
				switch tok[1] {
				case 's':
					doc.GameType = GameTypeShared
				case 'm':
					doc.GameType = GameTypeMatch
				default:
					warn(line, tok, "unknown game type")
				}
			case tok[0] == '%' && len(tok) >= 4:
				p, ok := parsePlayer(tok)
				if !ok {
					warn(line, tok, "malformed player tag")
					continue
				}
				if len(doc.Players) >= 2 {
					warn(line, tok, "extra player tag ignored")
					continue
				}
				if len(doc.Players) == 1 && doc.Players[0].Color == p.Color {
					warn(line, tok, "duplicate player color")
				}
				doc.Players = append(doc.Players, p)
			case tok[0] == '&' && len(tok) >= 4:
				// timer tags from older saves; no clock support
			case len(tok) == 4:
				if !placeToken(doc.Board, tok) {
					warn(line, tok, "malformed square token")
				}
			default:
				warn(line, tok, "unknown token")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, warns, fmt.Errorf("read board annotation: %w", err)
	}

	if len(doc.Players) < 2 {
		warn(line, "", fmt.Sprintf("expected 2 player tags, found %d", len(doc.Players)))
	}
	for _, c := range []engine.Color{engine.White, engine.Black} {
		if n := doc.Board.KingCount(c); n != 1 {
			warn(line, "", fmt.Sprintf("%s has %d kings", c, n))
		}
	}
	return doc, warns, nil
}

// ParseString is Parse over an in-memory annotation.
func ParseString(s string) (*Document, []Warning, error) {
	return Parse(strings.NewReader(s))
}

func parsePlayer(tok string) (Player, bool) {
	c, ok := engine.ParseColor(tok[1])
	if !ok || tok[2] != '_' {
		return Player{}, false
	}
	return Player{Name: tok[3:], Color: c}, true
}

func placeToken(b *engine.Board, tok string) bool {
	c, ok := engine.ParseColor(tok[0])
	if !ok {
		return false
	}
	k, ok := engine.ParsePieceKind(tok[1])
	if !ok {
		return false
	}
	p, ok := engine.ParsePos(tok[2:])
	if !ok {
		return false
	}
	b.Place(c, k, p.I, p.J)
	return true
}
