// internal/repository/event_repository.go
package repository

import (
	"database/sql"

	"github.com/unclebandit/cms-backend/internal/model"
)

// EventRepositoryInterface persists customer lifecycle audit rows.
type EventRepositoryInterface interface {
	Create(e *model.CustomerEvent) error
	ListByCustomerID(customerID int) ([]model.CustomerEvent, error)
}

type EventRepository struct {
	DB *sql.DB
}

// Create inserts an audit row and fills in the generated id and timestamp.
func (r *EventRepository) Create(e *model.CustomerEvent) error {
	query := `
        INSERT INTO customer_events (customer_id, event_type)
        VALUES ($1, $2)
        RETURNING id, created_at`
	return r.DB.QueryRow(query, e.CustomerID, e.EventType).Scan(&e.ID, &e.CreatedAt)
}

// ListByCustomerID returns the audit trail for one customer, newest first.
func (r *EventRepository) ListByCustomerID(customerID int) ([]model.CustomerEvent, error) {
	query := `
        SELECT id, customer_id, event_type, created_at
        FROM customer_events
        WHERE customer_id = $1
        ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.Query(query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.CustomerEvent{}
	for rows.Next() {
		var e model.CustomerEvent
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.EventType, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

var _ EventRepositoryInterface = (*EventRepository)(nil)
