// internal/service/auth_service.go
package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/middleware"
	"github.com/unclebandit/cms-backend/internal/repository"
)

// dummyHash keeps the bcrypt comparison running even when the user does not
// exist, so response timing cannot be used to enumerate accounts.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService validates admin credentials and issues bearer tokens for the
// login gate. Everything beyond the token is out of the consistency core.
type AuthService struct {
	UserRepo  repository.UserRepositoryInterface
	JWTSecret []byte
	TokenTTL  time.Duration
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresIn int       `json:"expiresIn"`
	User      LoginUser `json:"user"`
}

type LoginUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Login checks email + password and returns a signed token. The error message
// is intentionally vague to prevent user enumeration.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	passwordMatch := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil

	if user == nil || !passwordMatch {
		return nil, appErrors.NewUnauthorized("invalid email or password")
	}

	token, err := middleware.GenerateToken(s.JWTSecret, user.ID, user.Email, s.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: int(s.TokenTTL.Seconds()),
		User:      LoginUser{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}
