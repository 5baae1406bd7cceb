package replaydto

import "time"

// ViewState is the board at a cursor position. Board rows run from the 8th
// rank down; empty squares are "".
type ViewState struct {
	DocumentID string       `json:"document_id,omitempty"`
	Cursor     int          `json:"cursor"`
	TotalTurns int          `json:"total_turns"`
	Applied    int          `json:"applied"`
	Board      [8][8]string `json:"board"`
	Failure    *TurnFailure `json:"failure,omitempty"`
}

// TurnFailure describes the first move that could not be applied.
type TurnFailure struct {
	Turn    int    `json:"turn"`
	Number  int    `json:"number"`
	Colour  string `json:"colour"`
	Token   string `json:"token"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Document struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}
