package models

import "time"

// MovementFilters narrows the joined movement analytics query. From/To bound
// the movement timestamp (inclusive); Category and Kind are optional exact
// matches against the owning account's category and the movement kind.
type MovementFilters struct {
	From     time.Time
	To       time.Time
	Category string
	Kind     string
}

// MovementAnalyticsRow is one row of the analytics query: a movement joined
// with its account and client fields. Grouping is the caller's concern.
type MovementAnalyticsRow struct {
	OccurredAt        time.Time `json:"occurred_at"`
	Kind              string    `json:"kind"`
	Amount            string    `json:"amount"`
	Description       string    `json:"description,omitempty"`
	OriginNumber      string    `json:"origin_number,omitempty"`
	DestinationNumber string    `json:"destination_number,omitempty"`
	AccountNumber     string    `json:"account_number"`
	Category          string    `json:"category"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
}

// ExportRow is one row of the full account export: account fields joined with
// the owner's identity, shaped for the reporting consumer.
type ExportRow struct {
	AccountNumber string `json:"account_number"`
	Kind          string `json:"kind"`
	Category      string `json:"category"`
	Balance       string `json:"balance"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	NationalID    string `json:"national_id"`
	Email         string `json:"email,omitempty"`
	ClientActive  bool   `json:"client_active"`
}
