package domain

import "time"

// GameRecord is a finished game as stored by the archive.
type GameRecord struct {
	ID         string
	WhiteName  string
	BlackName  string
	Winner     string // "white" | "black"
	WinnerName string
	Result     string // PGN result token
	Moves      []string
	PGN        string
	// FinalFEN is the piece placement when the king fell.
	FinalFEN  string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
}
