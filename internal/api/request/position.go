package request

// CreatePositionRequest represents the request body for creating a position.
//
// SizingMode selects which fields matter: "shares" uses Shares and
// EntryPrice; "allocation" uses Fraction and Bankroll and resolves its
// entry price from price history.
type CreatePositionRequest struct {
	Player     string  `json:"player"`
	Symbol     string  `json:"symbol"`
	SizingMode string  `json:"sizingMode"`
	Shares     float64 `json:"shares,omitempty"`
	Fraction   float64 `json:"fraction,omitempty"`
	Bankroll   float64 `json:"bankroll,omitempty"`
	EntryPrice float64 `json:"entryPrice,omitempty"`
	EntryDate  string  `json:"entryDate"` // "2006-01-02"
}
