package chessdto

import "time"

// ArchivedGame is a finished game as served from the archive. Moves, PGN
// and the final position are left out of listings.
type ArchivedGame struct {
	ID         string    `json:"id"`
	White      string    `json:"white"`
	Black      string    `json:"black"`
	Winner     string    `json:"winner"`
	WinnerName string    `json:"winner_name"`
	Result     string    `json:"result"`
	Plies      int       `json:"plies"`
	Moves      []string  `json:"moves,omitempty"`
	PGN        string    `json:"pgn,omitempty"`
	FinalFEN   string    `json:"final_fen,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	DurationMS int64     `json:"duration_ms"`
}

type RecentGames struct {
	Games []ArchivedGame `json:"games"`
}
