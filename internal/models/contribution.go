package models

// ContributionEvent represents a recorded wallet contribution published to
// the event stream.
type ContributionEvent struct {
	EventID       string `json:"event_id"`       // EventID is a unique identifier for the event.
	Timestamp     int64  `json:"timestamp"`      // Timestamp is the Unix timestamp (in seconds) when the contribution was recorded.
	WalletID      string `json:"wallet_id"`      // WalletID is the wallet that received the contribution.
	ContributorID string `json:"contributor_id"` // ContributorID is the user who contributed.
	Currency      string `json:"currency"`       // Currency is the contribution currency code.
	Amount        string `json:"amount"`         // Amount is the contributed amount in major units, as an exact decimal string.
	Actor         string `json:"actor"`          // Actor describes who performed the request.
}
