// internal/repository/reference_repository.go
package repository

import (
	"database/sql"

	"github.com/unclebandit/cms-backend/internal/model"
)

// ReferenceRepositoryInterface is the read-only gate over the states and
// cities reference tables. No method here ever writes.
type ReferenceRepositoryInterface interface {
	StateExists(name string) (bool, error)
	CityExistsForState(cityName, stateName string) (bool, error)
	GetStateByID(id int) (*model.State, error)
	ListStates() ([]model.State, error)
	ListCities() ([]model.City, error)
	ListCitiesByState(stateID int) ([]model.City, error)
}

type ReferenceRepository struct {
	DB *sql.DB
}

// StateExists checks the state name against the reference table,
// case-insensitively.
func (r *ReferenceRepository) StateExists(name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM states WHERE LOWER(name) = LOWER($1))`
	var exists bool
	if err := r.DB.QueryRow(query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CityExistsForState checks that the city belongs to the named state, both
// compared case-insensitively.
func (r *ReferenceRepository) CityExistsForState(cityName, stateName string) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM cities c
            JOIN states s ON c.state_id = s.id
            WHERE LOWER(c.name) = LOWER($1)
              AND LOWER(s.name) = LOWER($2)
        )`
	var exists bool
	if err := r.DB.QueryRow(query, cityName, stateName).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetStateByID fetches one state. Returns nil, nil when not found.
func (r *ReferenceRepository) GetStateByID(id int) (*model.State, error) {
	var s model.State
	err := r.DB.QueryRow(`SELECT id, name FROM states WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListStates returns all states ordered alphabetically.
func (r *ReferenceRepository) ListStates() ([]model.State, error) {
	rows, err := r.DB.Query(`SELECT id, name FROM states ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := []model.State{}
	for rows.Next() {
		var s model.State
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

// ListCities returns all cities ordered alphabetically.
func (r *ReferenceRepository) ListCities() ([]model.City, error) {
	return r.queryCities(`SELECT id, name, state_id FROM cities ORDER BY name ASC`)
}

// ListCitiesByState returns the cities belonging to one state.
func (r *ReferenceRepository) ListCitiesByState(stateID int) ([]model.City, error) {
	return r.queryCities(`SELECT id, name, state_id FROM cities WHERE state_id = $1 ORDER BY name ASC`, stateID)
}

func (r *ReferenceRepository) queryCities(query string, args ...any) ([]model.City, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := []model.City{}
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

var _ ReferenceRepositoryInterface = (*ReferenceRepository)(nil)
