// internal/controller/auth_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/service"
)

type AuthController struct {
	AuthService *service.AuthService
}

// Login validates credentials and returns a bearer token.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, appErrors.NewValidation("invalid request body"))
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeError(w, appErrors.NewValidation("email and password are required"))
		return
	}

	result, err := c.AuthService.Login(payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
