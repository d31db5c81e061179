package pgn

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/park285/cheese-board/internal/boardfile"
	"github.com/park285/cheese-board/internal/engine"
)

const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultOngoing   = "*"
)

type Tags struct {
	Event   string
	Site    string
	Date    time.Time
	Players []boardfile.Player
	Result  string
}

// ResultFor maps a winning color to the PGN result token.
func ResultFor(winner engine.Color) string {
	if winner == engine.Black {
		return ResultBlackWins
	}
	return ResultWhiteWins
}

// Write emits the tag section followed by a blank line and the movetext.
func Write(w io.Writer, tags Tags, moves []string) error {
	bw := bufio.NewWriter(w)
	date := tags.Date
	if date.IsZero() {
		date = time.Now()
	}
	result := strings.TrimSpace(tags.Result)
	if result == "" {
		result = ResultOngoing
	}

	fmt.Fprintf(bw, "[Event \"%s\"]\n", sanitize(tags.Event))
	fmt.Fprintf(bw, "[Site \"%s\"]\n", sanitize(tags.Site))
	fmt.Fprintf(bw, "[Date \"%s\"]\n", date.Format("2006-01-02"))
	for _, p := range tags.Players {
		fmt.Fprintf(bw, "[%s \"%s\"]\n", p.Color.Label(), sanitize(p.Name))
	}
	fmt.Fprintf(bw, "[Result \"%s\"]\n\n", result)
	if err := bw.Flush(); err != nil {
		return err
	}
	return writeMovetext(w, moves, result)
}

// Render is Write into a string.
func Render(tags Tags, moves []string) string {
	var b bytes.Buffer
	_ = Write(&b, tags, moves)
	return b.String()
}

// SaveFile writes the game into dir under a name derived from the players
// and the date, and returns the path.
func SaveFile(dir string, tags Tags, moves []string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create pgn dir: %w", err)
	}
	date := tags.Date
	if date.IsZero() {
		date = time.Now()
	}
	names := make([]string, 0, len(tags.Players))
	for _, p := range tags.Players {
		names = append(names, fileSafe.Replace(boardfile.EncodeName(p.Name)))
	}
	base := strings.Join(names, "_vs_")
	if base == "" {
		base = "game"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.pgn", base, date.Format("20060102-150405")))

	var buf bytes.Buffer
	if err := Write(&buf, tags, moves); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var fileSafe = strings.NewReplacer("/", "-", "\\", "-", ":", "-")

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}
