package boardfile

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when the named board does not exist.
var ErrNotFound = errors.New("board not found")

// Store persists annotation documents by name.
type Store interface {
	Load(ctx context.Context, name string) (*Document, []Warning, error)
	Save(ctx context.Context, name string, doc *Document) error
}

//go:embed startBoard.txt
var startBoard string

// StartingPosition returns the standard opening setup.
func StartingPosition() *Document {
	doc, _, err := ParseString(startBoard)
	if err != nil {
		panic("boardfile: embedded start position: " + err.Error())
	}
	return doc
}

// SeedStart saves the standard setup under name when the store has nothing
// there yet, so operators get a start file to edit. It reports whether it
// wrote one.
func SeedStart(ctx context.Context, s Store, name string) (bool, error) {
	_, _, err := s.Load(ctx, name)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, ErrNotFound):
		return false, fmt.Errorf("check start board: %w", err)
	}
	if err := s.Save(ctx, name, StartingPosition()); err != nil {
		return false, fmt.Errorf("seed start board: %w", err)
	}
	return true, nil
}
