package model

import "time"

// CustomerEvent is an audit row recording a customer lifecycle change.
// There is deliberately no FK to customers so deletion events survive
// the customer row they describe.
type CustomerEvent struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	EventType  string    `json:"event_type"`
	CreatedAt  time.Time `json:"created_at"`
}
