// internal/controller/address_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/unclebandit/cms-backend/internal/errors"
	"github.com/unclebandit/cms-backend/internal/service"
)

type AddressController struct {
	AddressService *service.AddressService
}

// Update applies a partial update to one address by id.
func (c *AddressController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload service.UpdateAddressInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, appErrors.NewValidation("invalid request body"))
		return
	}

	address, err := c.AddressService.UpdateAddress(id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, address)
}

// Delete hard-deletes one address by id.
func (c *AddressController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := c.AddressService.DeleteAddress(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
