// internal/repository/user_repository.go
package repository

import (
	"database/sql"

	"github.com/unclebandit/cms-backend/internal/model"
)

// UserRepositoryInterface defines the admin-user lookups used by the login gate.
type UserRepositoryInterface interface {
	GetByEmail(email string) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

// GetByEmail fetches an admin user by email, case-insensitively.
// Returns nil, nil when not found.
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	query := `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE LOWER(email) = LOWER($1)
        LIMIT 1`
	var u model.User
	err := r.DB.QueryRow(query, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
