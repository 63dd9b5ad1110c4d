package model

import "time"

// Address always belongs to exactly one customer; deleting the customer
// cascades at the storage layer.
type Address struct {
	ID              int        `json:"id"`
	CustomerID      int        `json:"customer_id"`
	HouseFlatNumber string     `json:"house_flat_number"`
	BuildingStreet  string     `json:"building_street"`
	LocalityArea    string     `json:"locality_area"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	PinCode         string     `json:"pin_code"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}
