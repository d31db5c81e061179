package chessdto

// Square is one board square; empty squares have Kind "empty".
type Square struct {
	Square string `json:"square"`
	I      int    `json:"i"`
	J      int    `json:"j"`
	Color  string `json:"color"`
	Kind   string `json:"kind"`
	Token  string `json:"token"`
}

type Player struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BoardState is the full session snapshot.
type BoardState struct {
	GameID      string   `json:"gameId"`
	Squares     []Square `json:"squares"`
	Mover       Player   `json:"mover"`
	Players     []Player `json:"players"`
	GameType    string   `json:"gameType"`
	Selection   string   `json:"selection,omitempty"`
	MovePending bool     `json:"movePending"`
	Finished    bool     `json:"finished"`
	Winner      *Player  `json:"winner,omitempty"`
	FEN         string   `json:"fen"`
	Moves       []string `json:"moves"`
	Message     string   `json:"message,omitempty"`
}
