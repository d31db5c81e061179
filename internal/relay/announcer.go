package relay

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/park285/cheese-board/internal/domain"
	"github.com/park285/cheese-board/internal/obslog"
)

// GameSaver is the archive side of a finished game.
type GameSaver interface {
	SaveGame(ctx context.Context, g *domain.GameRecord) error
}

type Sender interface {
	SendText(ctx context.Context, room, message string) error
	SendImage(ctx context.Context, room, imageBase64 string) error
}

// BoardImager draws a FEN piece placement as a PNG.
type BoardImager func(ctx context.Context, placement string) ([]byte, error)

// Announcer archives a finished game and then posts a summary to a room,
// with the PGN folded under it, followed by the final board when an imager
// is set.
// A relay failure is logged and never fails the save.
type Announcer struct {
	next   GameSaver
	sender Sender
	room   string
	image  BoardImager
}

type AnnouncerOption func(*Announcer)

func WithBoardImage(f BoardImager) AnnouncerOption {
	return func(a *Announcer) { a.image = f }
}

func NewAnnouncer(next GameSaver, sender Sender, room string, opts ...AnnouncerOption) *Announcer {
	a := &Announcer{next: next, sender: sender, room: room}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Announcer) SaveGame(ctx context.Context, g *domain.GameRecord) error {
	if a.next != nil {
		if err := a.next.SaveGame(ctx, g); err != nil {
			return err
		}
	}
	if a.sender == nil || g == nil {
		return nil
	}
	log := obslog.L().With(zap.String("game_id", g.ID), zap.String("room", a.room))
	if err := a.sender.SendText(ctx, a.room, Fold(Summary(g), g.PGN)); err != nil {
		log.Warn("relay_announce_error", zap.Error(err))
		return nil
	}
	if a.image == nil || g.FinalFEN == "" {
		return nil
	}
	img, err := a.image(ctx, g.FinalFEN)
	if err != nil {
		log.Warn("relay_board_render_error", zap.String("fen", g.FinalFEN), zap.Error(err))
		return nil
	}
	if err := a.sender.SendImage(ctx, a.room, base64.StdEncoding.EncodeToString(img)); err != nil {
		log.Warn("relay_board_image_error", zap.Error(err))
	}
	return nil
}

// Summary is the one-line announcement of a finished game.
func Summary(g *domain.GameRecord) string {
	return fmt.Sprintf("%s vs %s: %s captured the king (%s) after %d plies, %s",
		g.WhiteName, g.BlackName, g.WinnerName, g.Result, len(g.Moves), g.Duration.Round(time.Second))
}
