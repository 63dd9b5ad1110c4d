// internal/repository/customer_repository.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/unclebandit/cms-backend/internal/db"
	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/model"
)

const customerColumns = "id, full_name, company_name, phone_number, email, created_at, updated_at"

// CustomerRepositoryInterface defines the customer store methods used by services.
type CustomerRepositoryInterface interface {
	GetByID(tx *sql.Tx, id int) (*model.Customer, error)
	GetByEmail(email string) (*model.Customer, error)
	List(page, limit int, search string) ([]model.Customer, int, error)
	Create(tx *sql.Tx, in CustomerCreateInput) (*model.Customer, error)
	Update(tx *sql.Tx, id int, in CustomerUpdateInput) (*model.Customer, error)
	DeleteByID(tx *sql.Tx, id int) (bool, error)
}

type CustomerCreateInput struct {
	FullName    string
	CompanyName string
	PhoneNumber string
	Email       string
}

// CustomerUpdateInput carries the partial update payload. Only fields with a
// non-nil value are written; the enumeration in columns() is the column
// allow-list.
type CustomerUpdateInput struct {
	FullName    *string
	CompanyName *string
	PhoneNumber *string
	Email       *string
}

func (in CustomerUpdateInput) columns() ([]string, []any) {
	cols := []string{}
	vals := []any{}
	if in.FullName != nil {
		cols = append(cols, "full_name")
		vals = append(vals, *in.FullName)
	}
	if in.CompanyName != nil {
		cols = append(cols, "company_name")
		vals = append(vals, *in.CompanyName)
	}
	if in.PhoneNumber != nil {
		cols = append(cols, "phone_number")
		vals = append(vals, *in.PhoneNumber)
	}
	if in.Email != nil {
		cols = append(cols, "email")
		vals = append(vals, *in.Email)
	}
	return cols, vals
}

// HasFields reports whether the payload contributes at least one column.
func (in CustomerUpdateInput) HasFields() bool {
	cols, _ := in.columns()
	return len(cols) > 0
}

// CustomerRepository is the concrete Postgres implementation.
type CustomerRepository struct {
	DB *sql.DB
}

func (r *CustomerRepository) querier(tx *sql.Tx) db.Querier {
	if tx != nil {
		return tx
	}
	return r.DB
}

func scanCustomer(row *sql.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.FullName, &c.CompanyName, &c.PhoneNumber, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetByID fetches a customer by ID. Returns nil, nil when not found. A non-nil
// tx makes the read part of that transaction, which in-transaction
// re-verification depends on.
func (r *CustomerRepository) GetByID(tx *sql.Tx, id int) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.querier(tx).QueryRow(query, id))
}

// GetByEmail fetches a customer by email, compared case-insensitively.
// Used for the duplicate-email pre-flight checks.
func (r *CustomerRepository) GetByEmail(email string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE LOWER(email) = LOWER($1)`
	return scanCustomer(r.DB.QueryRow(query, email))
}

// List returns one page of customers plus the total matching count. The search
// term matches full_name, email and company_name case-insensitively.
func (r *CustomerRepository) List(page, limit int, search string) ([]model.Customer, int, error) {
	offset := (page - 1) * limit

	query := `SELECT ` + customerColumns + ` FROM customers`
	countQuery := `SELECT COUNT(*) FROM customers`
	args := []any{}

	if search != "" {
		filter := ` WHERE full_name ILIKE $1 OR email ILIKE $1 OR company_name ILIKE $1`
		query += filter
		countQuery += filter
		args = append(args, "%"+search+"%")
	}

	query += fmt.Sprintf(" ORDER BY full_name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := r.DB.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FullName, &c.CompanyName, &c.PhoneNumber, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Create inserts a new customer row and returns the full created record.
// The unique constraint on email is the authoritative duplicate guard; a
// violation surfaces as a Conflict error even when the pre-flight check raced.
func (r *CustomerRepository) Create(tx *sql.Tx, in CustomerCreateInput) (*model.Customer, error) {
	query := `
        INSERT INTO customers (full_name, company_name, phone_number, email)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + customerColumns
	c, err := scanCustomer(r.querier(tx).QueryRow(query, in.FullName, in.CompanyName, in.PhoneNumber, in.Email))
	if err != nil {
		return nil, translateUniqueEmail(err, in.Email)
	}
	return c, nil
}

// Update writes only the allow-listed columns present in the payload and
// stamps updated_at. Returns nil, nil both when the payload contributes no
// columns (no-op) and when the row does not exist.
func (r *CustomerRepository) Update(tx *sql.Tx, id int, in CustomerUpdateInput) (*model.Customer, error) {
	cols, vals := in.columns()
	if len(cols) == 0 {
		return nil, nil
	}

	vals = append(vals, id)
	query := fmt.Sprintf(
		`UPDATE customers SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		setClause(cols, 1), len(vals), customerColumns,
	)

	c, err := scanCustomer(r.querier(tx).QueryRow(query, vals...))
	if err != nil {
		email := ""
		if in.Email != nil {
			email = *in.Email
		}
		return nil, translateUniqueEmail(err, email)
	}
	return c, nil
}

// DeleteByID hard-deletes a customer. The ON DELETE CASCADE on addresses
// removes the address rows in the same statement's transaction.
func (r *CustomerRepository) DeleteByID(tx *sql.Tx, id int) (bool, error) {
	res, err := r.querier(tx).Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// translateUniqueEmail maps a Postgres unique violation (23505) on the email
// constraint into the same Conflict error the pre-flight check raises.
func translateUniqueEmail(err error, email string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if email != "" {
			return appErrors.NewConflict("email '%s' is already registered", email)
		}
		return appErrors.NewConflict("email is already registered")
	}
	return err
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
