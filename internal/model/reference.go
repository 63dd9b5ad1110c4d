package model

// State and City are read-only reference data used to validate address
// city/state combinations. They are never mutated by the application.

type State struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type City struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	StateID int    `json:"state_id"`
}
