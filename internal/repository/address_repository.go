// internal/repository/address_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/unclebandit/cms-backend/internal/db"
	"github.com/unclebandit/cms-backend/internal/model"
)

const addressColumns = "id, customer_id, house_flat_number, building_street, locality_area, city, state, pin_code, created_at, updated_at"

// AddressRepositoryInterface defines the address store methods used by services.
type AddressRepositoryInterface interface {
	GetByID(tx *sql.Tx, id int) (*model.Address, error)
	ListByCustomerID(tx *sql.Tx, customerID int) ([]model.Address, error)
	Create(tx *sql.Tx, customerID int, in AddressCreateInput) (*model.Address, error)
	Update(tx *sql.Tx, id int, in AddressUpdateInput) (*model.Address, error)
	DeleteByID(tx *sql.Tx, id int) (bool, error)
}

type AddressCreateInput struct {
	HouseFlatNumber string
	BuildingStreet  string
	LocalityArea    string
	City            string
	State           string
	PinCode         string
}

// AddressUpdateInput carries the partial update payload; the enumeration in
// columns() is the column allow-list.
type AddressUpdateInput struct {
	HouseFlatNumber *string
	BuildingStreet  *string
	LocalityArea    *string
	City            *string
	State           *string
	PinCode         *string
}

func (in AddressUpdateInput) columns() ([]string, []any) {
	cols := []string{}
	vals := []any{}
	if in.HouseFlatNumber != nil {
		cols = append(cols, "house_flat_number")
		vals = append(vals, *in.HouseFlatNumber)
	}
	if in.BuildingStreet != nil {
		cols = append(cols, "building_street")
		vals = append(vals, *in.BuildingStreet)
	}
	if in.LocalityArea != nil {
		cols = append(cols, "locality_area")
		vals = append(vals, *in.LocalityArea)
	}
	if in.City != nil {
		cols = append(cols, "city")
		vals = append(vals, *in.City)
	}
	if in.State != nil {
		cols = append(cols, "state")
		vals = append(vals, *in.State)
	}
	if in.PinCode != nil {
		cols = append(cols, "pin_code")
		vals = append(vals, *in.PinCode)
	}
	return cols, vals
}

func (in AddressUpdateInput) HasFields() bool {
	cols, _ := in.columns()
	return len(cols) > 0
}

// AddressRepository is the concrete Postgres implementation.
type AddressRepository struct {
	DB *sql.DB
}

func (r *AddressRepository) querier(tx *sql.Tx) db.Querier {
	if tx != nil {
		return tx
	}
	return r.DB
}

func scanAddress(row *sql.Row) (*model.Address, error) {
	var a model.Address
	err := row.Scan(&a.ID, &a.CustomerID, &a.HouseFlatNumber, &a.BuildingStreet, &a.LocalityArea, &a.City, &a.State, &a.PinCode, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// GetByID fetches a single address. Returns nil, nil when not found. A non-nil
// tx makes the read part of that transaction.
func (r *AddressRepository) GetByID(tx *sql.Tx, id int) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`
	return scanAddress(r.querier(tx).QueryRow(query, id))
}

// ListByCustomerID returns all addresses owned by a customer, oldest first.
// Called with the open tx when the caller needs to see its own uncommitted
// address writes, e.g. the re-read at the end of a customer update.
func (r *AddressRepository) ListByCustomerID(tx *sql.Tx, customerID int) ([]model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE customer_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.querier(tx).Query(query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := []model.Address{}
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.HouseFlatNumber, &a.BuildingStreet, &a.LocalityArea, &a.City, &a.State, &a.PinCode, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

// Create inserts a new address owned by the given customer.
func (r *AddressRepository) Create(tx *sql.Tx, customerID int, in AddressCreateInput) (*model.Address, error) {
	query := `
        INSERT INTO addresses (customer_id, house_flat_number, building_street, locality_area, city, state, pin_code)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + addressColumns
	return scanAddress(r.querier(tx).QueryRow(
		query,
		customerID, in.HouseFlatNumber, in.BuildingStreet, in.LocalityArea, in.City, in.State, in.PinCode,
	))
}

// Update writes only the allow-listed columns present in the payload and
// stamps updated_at. Returns nil, nil both when the payload contributes no
// columns (no-op) and when the row does not exist.
func (r *AddressRepository) Update(tx *sql.Tx, id int, in AddressUpdateInput) (*model.Address, error) {
	cols, vals := in.columns()
	if len(cols) == 0 {
		return nil, nil
	}

	vals = append(vals, id)
	query := fmt.Sprintf(
		`UPDATE addresses SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		setClause(cols, 1), len(vals), addressColumns,
	)
	return scanAddress(r.querier(tx).QueryRow(query, vals...))
}

// DeleteByID hard-deletes a single address.
func (r *AddressRepository) DeleteByID(tx *sql.Tx, id int) (bool, error) {
	res, err := r.querier(tx).Exec(`DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ AddressRepositoryInterface = (*AddressRepository)(nil)
