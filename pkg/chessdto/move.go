package chessdto

// ClickResult reports what a board click did.
type ClickResult struct {
	Action      string   `json:"action"`
	Square      string   `json:"square"`
	Selected    string   `json:"selected,omitempty"`
	Cleared     string   `json:"cleared,omitempty"`
	Targets     []string `json:"targets,omitempty"`
	Diffs       []Square `json:"diffs,omitempty"`
	Notation    string   `json:"notation,omitempty"`
	GameOver    bool     `json:"gameOver"`
	Winner      *Player  `json:"winner,omitempty"`
	Mover       Player   `json:"mover"`
	MovePending bool     `json:"movePending"`
	Message     string   `json:"message,omitempty"`
}

type TurnResult struct {
	Advanced bool   `json:"advanced"`
	Mover    Player `json:"mover"`
	Message  string `json:"message,omitempty"`
}
