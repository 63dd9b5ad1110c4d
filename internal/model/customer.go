package model

import "time"

type Customer struct {
	ID          int        `json:"id"`
	FullName    string     `json:"full_name"`
	CompanyName string     `json:"company_name"`
	PhoneNumber string     `json:"phone_number"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// CustomerWithAddresses is what the customer use cases return: the customer
// row merged with its current address list.
type CustomerWithAddresses struct {
	Customer
	Addresses []Address `json:"addresses"`
}
