package chessdto

type StartRequest struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// ClickRequest names the square either by coordinates or algebraically.
type ClickRequest struct {
	I      *int   `json:"i,omitempty"`
	J      *int   `json:"j,omitempty"`
	Square string `json:"square,omitempty"`
}

type SaveResult struct {
	Saved   bool   `json:"saved"`
	Message string `json:"message,omitempty"`
}

type LoadResult struct {
	Board    *BoardState `json:"board"`
	Warnings []string    `json:"warnings,omitempty"`
	Message  string      `json:"message,omitempty"`
}
